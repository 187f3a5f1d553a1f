package repository

import (
	"testing"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMessageRepositoryAssignsMonotonicIds(t *testing.T) {
	repo := NewMemoryMessageRepository()

	first := &model.Message{Author: "alice", Text: "one"}
	second := &model.Message{Author: "alice", Text: "two"}
	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))

	assert.Equal(t, 1, first.Id)
	assert.Equal(t, 2, second.Id)
}

func TestMemoryMessageRepositoryProjections(t *testing.T) {
	repo := NewMemoryMessageRepository()

	require.NoError(t, repo.Save(&model.Message{Author: "a", Text: "clean"}))
	require.NoError(t, repo.Save(&model.Message{Author: "b", Text: "flagged", NeedsModeration: true}))
	require.NoError(t, repo.Save(&model.Message{Author: "c", Text: "gone", Deleted: true}))

	undeleted, err := repo.Undeleted()
	require.NoError(t, err)
	assert.Len(t, undeleted, 2)

	flagged, err := repo.Flagged()
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, "flagged", flagged[0].Text)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	pending, err := repo.CountFlagged()
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}

func TestMemoryMessageRepositoryUpdate(t *testing.T) {
	repo := NewMemoryMessageRepository()

	msg := &model.Message{Author: "a", Text: "hi"}
	require.NoError(t, repo.Save(msg))

	msg.Deleted = true
	require.NoError(t, repo.Update(msg))

	got, err := repo.Find(msg.Id)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	err = repo.Update(&model.Message{Id: 42})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryMessageRepositoryReplaceAllKeepsIds(t *testing.T) {
	repo := NewMemoryMessageRepository()

	msgs := []model.Message{
		{Id: 3, Author: "a", Text: "three"},
		{Id: 7, Author: "b", Text: "seven"},
	}
	require.NoError(t, repo.ReplaceAll(msgs))

	all, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, msgs, all)

	// New saves continue after the highest imported id.
	next := &model.Message{Author: "c", Text: "next"}
	require.NoError(t, repo.Save(next))
	assert.Equal(t, 8, next.Id)
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()

	user := &model.User{Username: "alice", Password: "pw"}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.Id)

	err := repo.Create(&model.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	got, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "pw", got.Password)

	_, err = repo.FindByUsername("bob")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := repo.Exists("alice")
	require.NoError(t, err)
	assert.True(t, exists)
}
