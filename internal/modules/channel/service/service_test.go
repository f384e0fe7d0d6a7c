package service

import (
	"context"
	"testing"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/channel/dto"
	channelRepo "anoa.com/collegejournal/internal/modules/channel/repository"
	"anoa.com/collegejournal/internal/testutil"
	"anoa.com/collegejournal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type channelFixture struct {
	db      *gorm.DB
	service ChannelService
	user    *entity.User
}

func newChannelFixture(t *testing.T, name string) *channelFixture {
	t.Helper()
	db := testutil.NewTestDB(t, name)

	user := &entity.User{Username: "staff", PasswordHash: "x", DisplayName: "Staff", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create(user).Error)

	svc := NewChannelService(
		channelRepo.NewChannelRepository(db),
		channelRepo.NewMessageRepository(db),
		articleRepo.NewArticleRepository(db),
	)

	return &channelFixture{db: db, service: svc, user: user}
}

func TestChannelListCarriesLastMessagePreview(t *testing.T) {
	f := newChannelFixture(t, "channel_preview")
	ctx := context.Background()

	general, err := f.service.Create(ctx, dto.CreateChannelRequest{Name: "général"})
	require.NoError(t, err)
	empty, err := f.service.Create(ctx, dto.CreateChannelRequest{Name: "sport"})
	require.NoError(t, err)

	_, err = f.service.CreateMessage(ctx, f.user, dto.CreateMessageRequest{
		ChannelID: general.ID.String(),
		Content:   "first",
	})
	require.NoError(t, err)
	_, err = f.service.CreateMessage(ctx, f.user, dto.CreateMessageRequest{
		ChannelID: general.ID.String(),
		Content:   "latest",
	})
	require.NoError(t, err)

	channels, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, channels, 2)

	byID := map[uuid.UUID]int{}
	for i, ch := range channels {
		byID[ch.ID] = i
	}

	withPreview := channels[byID[general.ID]]
	require.NotNil(t, withPreview.LastMessage)
	require.Equal(t, "latest", withPreview.LastMessage.Content)
	require.Equal(t, "Staff", withPreview.LastMessage.Author.DisplayName)
	require.Equal(t, 0, withPreview.UnreadCount)

	silent := channels[byID[empty.ID]]
	require.Nil(t, silent.LastMessage)
	require.Equal(t, 0, silent.UnreadCount)
}

func TestChannelCreateWithArticle(t *testing.T) {
	f := newChannelFixture(t, "channel_article")
	ctx := context.Background()

	article := &entity.Article{
		Title:    "Tied article",
		Slug:     "tied-article",
		Content:  "Body",
		AuthorID: f.user.ID,
		Status:   entity.StatusPublished,
	}
	require.NoError(t, f.db.Create(article).Error)

	created, err := f.service.Create(ctx, dto.CreateChannelRequest{
		Name:      "autour-d-un-article",
		ArticleID: article.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Article)
	require.Equal(t, article.ID, created.Article.ID)

	_, err = f.service.Create(ctx, dto.CreateChannelRequest{
		Name:      "broken",
		ArticleID: uuid.NewString(),
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestMessagesReturnedInCreationOrder(t *testing.T) {
	f := newChannelFixture(t, "channel_order")
	ctx := context.Background()

	channel, err := f.service.Create(ctx, dto.CreateChannelRequest{Name: "ordre"})
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := f.service.CreateMessage(ctx, f.user, dto.CreateMessageRequest{
			ChannelID: channel.ID.String(),
			Content:   content,
		})
		require.NoError(t, err)
	}

	messages, err := f.service.GetMessages(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "one", messages[0].Content)
	require.Equal(t, "three", messages[2].Content)
}

func TestMessagesUnknownChannel(t *testing.T) {
	f := newChannelFixture(t, "channel_unknown")

	_, err := f.service.GetMessages(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteMessage(t *testing.T) {
	f := newChannelFixture(t, "channel_delete_msg")
	ctx := context.Background()

	channel, err := f.service.Create(ctx, dto.CreateChannelRequest{Name: "menage"})
	require.NoError(t, err)

	msg, err := f.service.CreateMessage(ctx, f.user, dto.CreateMessageRequest{
		ChannelID: channel.ID.String(),
		Content:   "oops",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteMessage(ctx, msg.ID))
	require.ErrorIs(t, f.service.DeleteMessage(ctx, msg.ID), apperror.ErrNotFound)
}
