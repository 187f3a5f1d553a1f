package repository

import (
	"sync"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
)

// memoryMessageRepository keeps the log in process memory. It mirrors the
// sqlite implementation closely enough to stand in for it in tests.
type memoryMessageRepository struct {
	mu     sync.Mutex
	msgs   []model.Message
	nextId int
}

func NewMemoryMessageRepository() MessageRepository {
	return &memoryMessageRepository{nextId: 1}
}

func (r *memoryMessageRepository) Save(msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.Id == 0 {
		msg.Id = r.nextId
		r.nextId++
	} else if msg.Id >= r.nextId {
		r.nextId = msg.Id + 1
	}
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *memoryMessageRepository) Update(msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].Id == msg.Id {
			r.msgs[i] = *msg
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryMessageRepository) Find(id int) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].Id == id {
			msg := r.msgs[i]
			return &msg, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryMessageRepository) All() ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Message, len(r.msgs))
	copy(out, r.msgs)
	return out, nil
}

func (r *memoryMessageRepository) Undeleted() ([]model.Message, error) {
	return r.filter(func(m *model.Message) bool {
		return !m.Deleted
	})
}

func (r *memoryMessageRepository) Flagged() ([]model.Message, error) {
	return r.filter(func(m *model.Message) bool {
		return m.NeedsModeration && !m.Deleted
	})
}

func (r *memoryMessageRepository) filter(keep func(*model.Message) bool) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Message, 0, len(r.msgs))
	for i := range r.msgs {
		if keep(&r.msgs[i]) {
			out = append(out, r.msgs[i])
		}
	}
	return out, nil
}

func (r *memoryMessageRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.msgs)), nil
}

func (r *memoryMessageRepository) CountFlagged() (int64, error) {
	flagged, err := r.Flagged()
	if err != nil {
		return 0, err
	}
	return int64(len(flagged)), nil
}

func (r *memoryMessageRepository) ReplaceAll(msgs []model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = make([]model.Message, len(msgs))
	copy(r.msgs, msgs)
	r.nextId = 1
	for i := range r.msgs {
		if r.msgs[i].Id >= r.nextId {
			r.nextId = r.msgs[i].Id + 1
		}
	}
	return nil
}

type memoryUserRepository struct {
	mu     sync.Mutex
	users  map[string]model.User
	nextId int
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]model.User), nextId: 1}
}

func (r *memoryUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return ErrDuplicateUser
	}
	user.Id = r.nextId
	r.nextId++
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) FindByUsername(username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) Exists(username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}
