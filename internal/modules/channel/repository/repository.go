package repository

import (
	"context"

	"anoa.com/collegejournal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *entity.Channel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Channel, error)
	FindAll(ctx context.Context) ([]*entity.Channel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// LastMessages returns, per channel, the most recently created message
	// with its author loaded.
	LastMessages(ctx context.Context) (map[uuid.UUID]*entity.Message, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	FindByChannel(ctx context.Context, channelID uuid.UUID) ([]*entity.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(ctx context.Context, channel *entity.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

func (r *channelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Channel, error) {
	var channel entity.Channel
	err := r.db.WithContext(ctx).
		Preload("Article.Author").
		Preload("Article.Category").
		Preload("Article.Tags").
		First(&channel, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) FindAll(ctx context.Context) ([]*entity.Channel, error) {
	var channels []*entity.Channel
	err := r.db.WithContext(ctx).
		Preload("Article.Author").
		Preload("Article.Category").
		Preload("Article.Tags").
		Order("created_at ASC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *channelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Channel{}, "id = ?", id).Error
}

// LastMessages runs a raw self-join to pick the newest message per channel,
// then re-reads those rows through the ORM so authors come along.
func (r *channelRepository) LastMessages(ctx context.Context) (map[uuid.UUID]*entity.Message, error) {
	var rows []struct {
		ID uuid.UUID
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.id
		FROM messages m
		JOIN (
			SELECT channel_id, MAX(created_at) AS last_at
			FROM messages
			GROUP BY channel_id
		) latest ON m.channel_id = latest.channel_id AND m.created_at = latest.last_at
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[uuid.UUID]*entity.Message{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var messages []*entity.Message
	err = r.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Creation-time ties leave the later row in the map.
	latest := make(map[uuid.UUID]*entity.Message, len(messages))
	for _, m := range messages {
		latest[m.ChannelID] = m
	}
	return latest, nil
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	var message entity.Message
	if err := r.db.WithContext(ctx).Preload("Author").First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByChannel(ctx context.Context, channelID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Message{}, "id = ?", id).Error
}
