package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/comment/dto"
	commentRepo "anoa.com/collegejournal/internal/modules/comment/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"anoa.com/collegejournal/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService interface {
	// GetByArticle returns the approved comments as a one-level tree: roots
	// in creation order, each carrying the replies whose parent_id matches.
	GetByArticle(ctx context.Context, articleID uuid.UUID) ([]pkgdto.CommentResponse, error)
	Create(ctx context.Context, author *entity.User, req dto.CreateCommentRequest) (*pkgdto.CommentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentService struct {
	commentRepo commentRepo.CommentRepository
	articleRepo articleRepo.ArticleRepository
}

func NewCommentService(comments commentRepo.CommentRepository, articles articleRepo.ArticleRepository) CommentService {
	return &commentService{commentRepo: comments, articleRepo: articles}
}

func (s *commentService) GetByArticle(ctx context.Context, articleID uuid.UUID) ([]pkgdto.CommentResponse, error) {
	comments, err := s.commentRepo.FindApprovedByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return buildTree(comments), nil
}

func (s *commentService) Create(ctx context.Context, author *entity.User, req dto.CreateCommentRequest) (*pkgdto.CommentResponse, error) {
	articleID, err := uuid.Parse(req.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput)
	}

	if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article %s: %w", articleID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	content := sanitize.Text(req.Content)
	if content == "" {
		return nil, fmt.Errorf("comment is empty: %w", apperror.ErrInvalidInput)
	}

	comment := &entity.Comment{
		ArticleID:  articleID,
		AuthorID:   author.ID,
		Content:    content,
		IsApproved: true,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id: %w", apperror.ErrInvalidInput)
		}
		comment.ParentID = &parentID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}

	resp := pkgdto.NewCommentResponse(*created)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.commentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load comment: %w", err)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// buildTree materializes exactly one level of nesting. A reply whose parent
// is itself a reply does not appear; its parent_id matches no root.
func buildTree(comments []*entity.Comment) []pkgdto.CommentResponse {
	roots := make([]pkgdto.CommentResponse, 0)
	rootIndex := make(map[uuid.UUID]int)

	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, pkgdto.NewCommentResponse(*c))
			rootIndex[c.ID] = len(roots) - 1
		}
	}

	for _, c := range comments {
		if c.ParentID == nil {
			continue
		}
		if idx, ok := rootIndex[*c.ParentID]; ok {
			roots[idx].Replies = append(roots[idx].Replies, pkgdto.NewCommentResponse(*c))
		}
	}

	return roots
}
