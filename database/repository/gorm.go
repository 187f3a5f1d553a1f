package repository

import (
	"errors"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"

	"gorm.io/gorm"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Save(msg *model.Message) error {
	return r.db.Create(msg).Error
}

func (r *gormMessageRepository) Update(msg *model.Message) error {
	return r.db.Save(msg).Error
}

func (r *gormMessageRepository) Find(id int) (*model.Message, error) {
	msg := &model.Message{}
	err := r.db.Model(model.Message{}).
		Where("id = ?", id).
		First(msg).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *gormMessageRepository) All() ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Model(model.Message{}).
		Order("id ASC").
		Find(&msgs).
		Error
	return msgs, err
}

func (r *gormMessageRepository) Undeleted() ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Model(model.Message{}).
		Where("deleted = ?", false).
		Order("id ASC").
		Find(&msgs).
		Error
	return msgs, err
}

func (r *gormMessageRepository) Flagged() ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Model(model.Message{}).
		Where("needs_moderation = ? AND deleted = ?", true, false).
		Order("id ASC").
		Find(&msgs).
		Error
	return msgs, err
}

func (r *gormMessageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(model.Message{}).Count(&count).Error
	return count, err
}

func (r *gormMessageRepository) CountFlagged() (int64, error) {
	var count int64
	err := r.db.Model(model.Message{}).
		Where("needs_moderation = ? AND deleted = ?", true, false).
		Count(&count).
		Error
	return count, err
}

// ReplaceAll swaps the whole log in one transaction, keeping the imported
// ids so an export/import round-trip reproduces the exact sequence.
func (r *gormMessageRepository) ReplaceAll(msgs []model.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Message{}).Error; err != nil {
			return err
		}
		for i := range msgs {
			if err := tx.Create(&msgs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(user *model.User) error {
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

func (r *gormUserRepository) FindByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *gormUserRepository) Exists(username string) (bool, error) {
	var count int64
	err := r.db.Model(model.User{}).
		Where("username = ?", username).
		Count(&count).
		Error
	return count > 0, err
}
