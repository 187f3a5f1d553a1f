package service

import (
	"errors"
	"os"
	"testing"

	"github.com/kokorindanilll2288-sys/rdss.github.io/caching"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	caching.Flush()
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestAppendAndFeed(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	msg, err := msgService.Append("alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.Author)
	assert.Equal(t, "hello", msg.Text)
	assert.False(t, msg.Deleted)
	assert.False(t, msg.NeedsModeration)
	assert.NotZero(t, msg.Id)

	feed, err := msgService.PublicFeed()
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "alice", feed[0].Author)
	assert.Equal(t, "hello", feed[0].Text)

	queue, err := msgService.ModerationQueue()
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestAppendTrimsAndRejectsEmpty(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	_, err := msgService.Append("alice", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	feed, err := msgService.PublicFeed()
	require.NoError(t, err)
	assert.Empty(t, feed)

	msg, err := msgService.Append("alice", "  padded  ")
	require.NoError(t, err)
	assert.Equal(t, "padded", msg.Text)
}

func TestAppendKeepsSendOrder(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		_, err := msgService.Append("bob", text)
		require.NoError(t, err)
	}

	feed, err := msgService.PublicFeed()
	require.NoError(t, err)
	require.Len(t, feed, 3)
	for i, text := range texts {
		assert.Equal(t, text, feed[i].Text)
	}
	assert.Less(t, feed[0].Id, feed[1].Id)
	assert.Less(t, feed[1].Id, feed[2].Id)
}

func TestModerationFlow(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	msg, err := msgService.Append("bob", "this is спам")
	require.NoError(t, err)
	assert.True(t, msg.NeedsModeration)

	queue, err := msgService.ModerationQueue()
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, msg.Id, queue[0].Id)

	mutated, err := msgService.SoftDelete(msg.Id)
	require.NoError(t, err)
	assert.True(t, mutated)

	queue, err = msgService.ModerationQueue()
	require.NoError(t, err)
	assert.Empty(t, queue)

	feed, err := msgService.PublicFeed()
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestNeedsModerationComputedOnce(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}
	settingService := SettingService{}

	msg, err := msgService.Append("bob", "честное сообщение")
	require.NoError(t, err)
	assert.False(t, msg.NeedsModeration)

	// Adding a matching term later must not reflag existing messages.
	require.NoError(t, settingService.SetDenylist([]string{"честное"}))

	queue, err := msgService.ModerationQueue()
	require.NoError(t, err)
	assert.Empty(t, queue)

	flagged, err := msgService.Append("bob", "еще одно честное сообщение")
	require.NoError(t, err)
	assert.True(t, flagged.NeedsModeration)
}

func TestSoftDeleteIdempotent(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	msg, err := msgService.Append("alice", "to be removed")
	require.NoError(t, err)

	mutated, err := msgService.SoftDelete(msg.Id)
	require.NoError(t, err)
	assert.True(t, mutated)

	// Second delete is a silent no-op.
	mutated, err = msgService.SoftDelete(msg.Id)
	require.NoError(t, err)
	assert.False(t, mutated)
}

func TestSoftDeleteUnknownIdLeavesLogUnchanged(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	_, err := msgService.Append("alice", "kept")
	require.NoError(t, err)

	before, err := msgService.PublicFeed()
	require.NoError(t, err)

	mutated, err := msgService.SoftDelete(99999)
	require.NoError(t, err)
	assert.False(t, mutated)

	after, err := msgService.PublicFeed()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAppendWithInjectedRepository(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{Repo: repository.NewMemoryMessageRepository()}

	msg, err := msgService.Append("alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, msg.Id)

	feed, err := msgService.PublicFeed()
	require.NoError(t, err)
	require.Len(t, feed, 1)

	// The sqlite log was not touched.
	var count int64
	require.NoError(t, database.GetDB().Table("messages").Count(&count).Error)
	assert.Zero(t, count)
}

// Flagged appends log through the package logger, which must work with
// its default backend, before InitLogger has ever run.
func TestAppendFlaggedWithoutInitLogger(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	assert.NotPanics(t, func() {
		msg, err := msgService.Append("bob", "this is спам")
		require.NoError(t, err)
		assert.True(t, msg.NeedsModeration)
	})
}

// failingMessageRepository delegates reads to the embedded repository and
// fails every write with failErr.
type failingMessageRepository struct {
	repository.MessageRepository
	failErr error
}

func (r *failingMessageRepository) Save(msg *model.Message) error   { return r.failErr }
func (r *failingMessageRepository) Update(msg *model.Message) error { return r.failErr }

func TestAppendSurfacesStorageError(t *testing.T) {
	setup()
	defer teardown()

	storageErr := errors.New("disk I/O error")
	msgService := MessageService{Repo: &failingMessageRepository{
		MessageRepository: repository.NewMemoryMessageRepository(),
		failErr:           storageErr,
	}}

	_, err := msgService.Append("alice", "hello")
	assert.ErrorIs(t, err, storageErr)
}

func TestSoftDeleteSurfacesStorageError(t *testing.T) {
	setup()
	defer teardown()

	memRepo := repository.NewMemoryMessageRepository()
	msgService := MessageService{Repo: memRepo}
	msg, err := msgService.Append("alice", "hello")
	require.NoError(t, err)

	storageErr := errors.New("disk I/O error")
	msgService.Repo = &failingMessageRepository{
		MessageRepository: memRepo,
		failErr:           storageErr,
	}

	_, err = msgService.SoftDelete(msg.Id)
	assert.ErrorIs(t, err, storageErr)
}

func TestExportImportRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	msgService := MessageService{}

	first, err := msgService.Append("alice", "hello")
	require.NoError(t, err)
	second, err := msgService.Append("bob", "this is спам")
	require.NoError(t, err)
	_, err = msgService.SoftDelete(second.Id)
	require.NoError(t, err)

	data, err := msgService.ExportMessages()
	require.NoError(t, err)

	exported, err := msgService.repo().All()
	require.NoError(t, err)

	require.NoError(t, msgService.ImportMessages(data))

	restored, err := msgService.repo().All()
	require.NoError(t, err)
	assert.Equal(t, exported, restored)

	require.Len(t, restored, 2)
	assert.Equal(t, first.Id, restored[0].Id)
	assert.Equal(t, second.Id, restored[1].Id)
	assert.True(t, restored[1].Deleted)
	assert.True(t, restored[1].NeedsModeration)
}
