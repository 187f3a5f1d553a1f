package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/repository"
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("message text is empty")

// BackupDocument is the export envelope for the messages log. Messages
// round-trip exactly: ids, field values and order are preserved.
type BackupDocument struct {
	BackupId   string          `json:"backupId"`
	ExportedAt string          `json:"exportedAt"`
	Messages   []model.Message `json:"messages"`
}

// MessageService owns the append-only message log: append, soft delete
// and the two read projections. The zero value works against the package
// database; tests inject a repository.
type MessageService struct {
	Repo repository.MessageRepository

	settingService    SettingService
	moderationService ModerationService
}

func (s *MessageService) repo() repository.MessageRepository {
	if s.Repo != nil {
		return s.Repo
	}
	return repository.NewMessageRepository(database.GetDB())
}

// Append validates and stores a new message. The text is trimmed first;
// the moderation flag is computed here, once, and never again. The author
// is recorded as-is, without checking that the account still exists.
func (s *MessageService) Append(author string, rawText string) (*model.Message, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	denylist, err := s.settingService.GetDenylist()
	if err != nil {
		return nil, fmt.Errorf("load denylist: %w", err)
	}

	location, err := s.settingService.GetTimeLocation()
	if err != nil {
		return nil, fmt.Errorf("load time location: %w", err)
	}
	timeFormat, err := s.settingService.GetTimeFormat()
	if err != nil {
		return nil, fmt.Errorf("load time format: %w", err)
	}

	now := time.Now().In(location)
	msg := &model.Message{
		Author:          author,
		Text:            text,
		CreatedAt:       now.Format(timeFormat),
		PostedAt:        now.Unix(),
		Deleted:         false,
		NeedsModeration: s.moderationService.Classify(text, denylist),
	}

	if err := s.repo().Save(msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	if msg.NeedsModeration {
		logger.Infof("message %d from %s flagged for moderation", msg.Id, author)
	}
	return msg, nil
}

// SoftDelete marks the message as deleted and reports whether a mutation
// occurred. Unknown ids and already-deleted messages are silent no-ops.
func (s *MessageService) SoftDelete(id int) (bool, error) {
	msg, err := s.repo().Find(id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if msg.Deleted {
		return false, nil
	}

	msg.Deleted = true
	if err := s.repo().Update(msg); err != nil {
		return false, fmt.Errorf("save message: %w", err)
	}
	return true, nil
}

// PublicFeed returns undeleted messages in send order. An empty slice
// means the feed is empty; the UI substitutes the welcome entry.
func (s *MessageService) PublicFeed() ([]model.Message, error) {
	return s.repo().Undeleted()
}

// ModerationQueue returns flagged, undeleted messages in send order.
// Soft-deleted messages leave the queue permanently.
func (s *MessageService) ModerationQueue() ([]model.Message, error) {
	return s.repo().Flagged()
}

func (s *MessageService) CountMessages() (int64, error) {
	return s.repo().Count()
}

func (s *MessageService) CountPending() (int64, error) {
	return s.repo().CountFlagged()
}

// ExportMessages serializes the whole log, deleted entries included, so
// the backup can be audited.
func (s *MessageService) ExportMessages() ([]byte, error) {
	msgs, err := s.repo().All()
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	doc := BackupDocument{
		BackupId:   uuid.NewString(),
		ExportedAt: time.Now().Format(time.RFC3339),
		Messages:   msgs,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportMessages replaces the log with the backup content, preserving
// ids and order.
func (s *MessageService) ImportMessages(data []byte) error {
	doc := BackupDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}
	if err := s.repo().ReplaceAll(doc.Messages); err != nil {
		return fmt.Errorf("restore messages: %w", err)
	}
	logger.Infof("restored %d messages from backup %s", len(doc.Messages), doc.BackupId)
	return nil
}
