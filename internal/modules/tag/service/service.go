package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/collegejournal/internal/entity"
	"anoa.com/collegejournal/internal/modules/tag/dto"
	tagRepo "anoa.com/collegejournal/internal/modules/tag/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagService interface {
	Create(ctx context.Context, req dto.CreateTagRequest) (*pkgdto.TagResponse, error)
	GetAll(ctx context.Context) ([]pkgdto.TagResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagService struct {
	tagRepo tagRepo.TagRepository
}

func NewTagService(tags tagRepo.TagRepository) TagService {
	return &tagService{tagRepo: tags}
}

func (s *tagService) Create(ctx context.Context, req dto.CreateTagRequest) (*pkgdto.TagResponse, error) {
	if _, err := s.tagRepo.FindBySlug(ctx, req.Slug); err == nil {
		return nil, fmt.Errorf("slug %q already in use: %w", req.Slug, apperror.ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	tag := &entity.Tag{Name: req.Name, Slug: req.Slug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	resp := pkgdto.NewTagResponse(*tag)
	return &resp, nil
}

func (s *tagService) GetAll(ctx context.Context) ([]pkgdto.TagResponse, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	out := make([]pkgdto.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, pkgdto.NewTagResponse(*t))
	}
	return out, nil
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tag %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load tag: %w", err)
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
