package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/channel/dto"
	channelRepo "anoa.com/collegejournal/internal/modules/channel/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"anoa.com/collegejournal/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChannelService interface {
	List(ctx context.Context) ([]pkgdto.ChannelResponse, error)
	Create(ctx context.Context, req dto.CreateChannelRequest) (*pkgdto.ChannelResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetMessages(ctx context.Context, channelID uuid.UUID) ([]pkgdto.MessageResponse, error)
	CreateMessage(ctx context.Context, author *entity.User, req dto.CreateMessageRequest) (*pkgdto.MessageResponse, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type channelService struct {
	channelRepo channelRepo.ChannelRepository
	messageRepo channelRepo.MessageRepository
	articleRepo articleRepo.ArticleRepository
}

func NewChannelService(
	channels channelRepo.ChannelRepository,
	messages channelRepo.MessageRepository,
	articles articleRepo.ArticleRepository,
) ChannelService {
	return &channelService{
		channelRepo: channels,
		messageRepo: messages,
		articleRepo: articles,
	}
}

// List returns every channel with its latest message as a preview. There is
// no read tracking, so unread_count is always zero.
func (s *channelService) List(ctx context.Context) ([]pkgdto.ChannelResponse, error) {
	channels, err := s.channelRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	latest, err := s.channelRepo.LastMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel previews: %w", err)
	}

	out := make([]pkgdto.ChannelResponse, 0, len(channels))
	for _, ch := range channels {
		out = append(out, toChannelResponse(ch, latest[ch.ID]))
	}
	return out, nil
}

func (s *channelService) Create(ctx context.Context, req dto.CreateChannelRequest) (*pkgdto.ChannelResponse, error) {
	channel := &entity.Channel{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	}

	if req.ArticleID != "" {
		articleID, err := uuid.Parse(req.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput)
		}
		if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("article %s does not exist: %w", articleID, apperror.ErrBadRequest)
			}
			return nil, fmt.Errorf("failed to load article: %w", err)
		}
		channel.ArticleID = &articleID
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	created, err := s.channelRepo.FindByID(ctx, channel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}

	resp := toChannelResponse(created, nil)
	return &resp, nil
}

func (s *channelService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findChannel(ctx, id); err != nil {
		return err
	}

	if err := s.channelRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	return nil
}

// GetMessages returns the channel's full history in creation order. No
// pagination; the feed renders as one flat scroll.
func (s *channelService) GetMessages(ctx context.Context, channelID uuid.UUID) ([]pkgdto.MessageResponse, error) {
	if _, err := s.findChannel(ctx, channelID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	out := make([]pkgdto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, pkgdto.NewMessageResponse(*m))
	}
	return out, nil
}

func (s *channelService) CreateMessage(ctx context.Context, author *entity.User, req dto.CreateMessageRequest) (*pkgdto.MessageResponse, error) {
	channelID, err := uuid.Parse(req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("invalid channel id: %w", apperror.ErrInvalidInput)
	}

	if _, err := s.findChannel(ctx, channelID); err != nil {
		return nil, err
	}

	content := sanitize.Text(req.Content)
	if content == "" {
		return nil, fmt.Errorf("message is empty: %w", apperror.ErrInvalidInput)
	}

	message := &entity.Message{
		ChannelID: channelID,
		AuthorID:  author.ID,
		Content:   content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	created, err := s.messageRepo.FindByID(ctx, message.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	resp := pkgdto.NewMessageResponse(*created)
	return &resp, nil
}

func (s *channelService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	if _, err := s.messageRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("message %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load message: %w", err)
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *channelService) findChannel(ctx context.Context, id uuid.UUID) (*entity.Channel, error) {
	channel, err := s.channelRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("channel %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}
	return channel, nil
}

func toChannelResponse(ch *entity.Channel, last *entity.Message) pkgdto.ChannelResponse {
	resp := pkgdto.ChannelResponse{
		ID:          ch.ID,
		Name:        ch.Name,
		Description: ch.Description,
		ArticleID:   ch.ArticleID,
		IsPrivate:   ch.IsPrivate,
		CreatedAt:   ch.CreatedAt,
		UnreadCount: 0,
	}

	if ch.Article != nil && ch.Article.ID != uuid.Nil {
		article := pkgdto.NewArticleResponse(*ch.Article)
		resp.Article = &article
	}
	if last != nil {
		preview := pkgdto.NewMessageResponse(*last)
		resp.LastMessage = &preview
	}

	return resp
}
