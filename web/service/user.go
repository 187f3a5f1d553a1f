package service

import (
	"errors"
	"strings"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/repository"
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"
)

var (
	ErrEmptyUsername = errors.New("username can not be empty")
	ErrUserExists    = errors.New("username already taken")
)

// adminUsername is the only account name that receives the admin role,
// assigned once at registration.
const adminUsername = "admin"

// UserService owns the credential records. The zero value works against
// the package database; tests inject a repository.
type UserService struct {
	Repo repository.UserRepository
}

func (s *UserService) repo() repository.UserRepository {
	if s.Repo != nil {
		return s.Repo
	}
	return repository.NewUserRepository(database.GetDB())
}

// CheckUser verifies the credentials and returns the matching user, or
// nil when the username is unknown or the password does not match.
func (s *UserService) CheckUser(username string, password string) *model.User {
	user, err := s.repo().FindByUsername(username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if user.Password != password {
		return nil
	}

	return user
}

// CreateUser registers a new account. Usernames are case-sensitive and
// unique; the admin flag is derived from the username once, here, and
// never changes afterwards.
func (s *UserService) CreateUser(username string, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	exists, err := s.repo().Exists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	user := &model.User{
		Username: username,
		Password: password,
		IsAdmin:  username == adminUsername,
	}
	err = s.repo().Create(user)
	if errors.Is(err, repository.ErrDuplicateUser) {
		return nil, ErrUserExists
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstUser resets the seeded admin credentials from the CLI.
func (s *UserService) UpdateFirstUser(username string, password string) error {
	if username == "" {
		return ErrEmptyUsername
	} else if password == "" {
		return errors.New("password can not be empty")
	}

	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		user.Username = username
		user.Password = password
		user.IsAdmin = username == adminUsername
		return db.Model(model.User{}).Create(user).Error
	} else if err != nil {
		return err
	}
	user.Username = username
	user.Password = password
	return db.Save(user).Error
}
