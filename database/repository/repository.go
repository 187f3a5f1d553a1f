// Package repository provides typed access to the persisted users and
// messages documents. The services depend on these interfaces so tests can
// run against the in-memory implementations.
package repository

import (
	"errors"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateUser = errors.New("username already taken")
)

// MessageRepository stores the append-only message log. Save assigns the
// id; records are never removed, only updated in place.
type MessageRepository interface {
	Save(msg *model.Message) error
	Update(msg *model.Message) error
	Find(id int) (*model.Message, error)
	All() ([]model.Message, error)
	Undeleted() ([]model.Message, error)
	Flagged() ([]model.Message, error)
	Count() (int64, error)
	CountFlagged() (int64, error)
	ReplaceAll(msgs []model.Message) error
}

type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	Exists(username string) (bool, error)
}
