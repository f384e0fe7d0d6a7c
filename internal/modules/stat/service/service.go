package service

import (
	"context"
	"fmt"

	"anoa.com/collegejournal/internal/entity"
	statRepo "anoa.com/collegejournal/internal/modules/stat/repository"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"github.com/google/uuid"
)

type StatService interface {
	DashboardStats(ctx context.Context, viewer *entity.User) (*pkgdto.DashboardStats, error)
}

type statService struct {
	statRepo statRepo.StatRepository
}

func NewStatService(stats statRepo.StatRepository) StatService {
	return &statService{statRepo: stats}
}

// DashboardStats keeps the historical asymmetry: total and published article
// counts are scoped to the caller unless admin, while pending reviews,
// comments and users are always global.
func (s *statService) DashboardStats(ctx context.Context, viewer *entity.User) (*pkgdto.DashboardStats, error) {
	var scope *uuid.UUID
	if !viewer.IsAdmin() {
		scope = &viewer.ID
	}

	total, err := s.statRepo.CountArticles(ctx, "", scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	published, err := s.statRepo.CountArticles(ctx, entity.StatusPublished, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count published articles: %w", err)
	}

	pending, err := s.statRepo.CountArticles(ctx, entity.StatusPending, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending articles: %w", err)
	}

	comments, err := s.statRepo.CountComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	users, err := s.statRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &pkgdto.DashboardStats{
		TotalArticles:     total,
		PendingReviews:    pending,
		PublishedArticles: published,
		TotalComments:     comments,
		TotalUsers:        users,
	}, nil
}
