package repo

import (
	"context"
	"errors"

	"coffee-chat-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepo represents the repository for the chat model
type ChatRepo struct {
	db *gorm.DB
}

type ChatRepoInterface interface {
	CreateChat(ctx context.Context, chat *models.Chat) error
	GetChatByID(ctx context.Context, id uint) (*models.Chat, error)
	ListChats(ctx context.Context) ([]models.Chat, error)
	UpdateChat(ctx context.Context, id uint, changes models.ChatChanges) (*models.Chat, error)
	DeleteChat(ctx context.Context, id uint) error
}

func NewChatRepository(db *gorm.DB) ChatRepoInterface {
	return &ChatRepo{db: db}
}

// CreateChat inserts the chat; the store assigns chat.ID.
func (r *ChatRepo) CreateChat(ctx context.Context, chat *models.Chat) error {
	chat.ID = 0
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *ChatRepo) GetChatByID(ctx context.Context, id uint) (*models.Chat, error) {
	return findChat(r.db.WithContext(ctx), id)
}

// ListChats returns every chat in insertion order.
func (r *ChatRepo) ListChats(ctx context.Context) ([]models.Chat, error) {
	chats := []models.Chat{}
	err := r.db.WithContext(ctx).Order("id asc").Find(&chats).Error
	return chats, err
}

func (r *ChatRepo) UpdateChat(ctx context.Context, id uint, changes models.ChatChanges) (*models.Chat, error) {
	var updated *models.Chat
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chat, err := findChat(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		changes.Apply(chat)
		// Select writes zero values too, so an empty notes string is persisted.
		// Unlike Save it never falls back to an insert.
		result := tx.Model(chat).Select("guest", "chat_date", "notes").Updates(chat)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrChatNotFound
		}
		updated = chat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ChatRepo) DeleteChat(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Chat{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}

func findChat(db *gorm.DB, id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := db.First(&chat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}
