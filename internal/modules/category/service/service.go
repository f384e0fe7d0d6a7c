package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/category/dto"
	categoryRepo "anoa.com/collegejournal/internal/modules/category/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*pkgdto.CategoryResponse, error)
	GetAll(ctx context.Context) ([]pkgdto.CategoryResponse, error)
	GetAllWithCounts(ctx context.Context) ([]pkgdto.CategoryWithCountResponse, error)
	GetBySlug(ctx context.Context, slug string) (*pkgdto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*pkgdto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo categoryRepo.CategoryRepository
	articleRepo  articleRepo.ArticleRepository
}

func NewCategoryService(categories categoryRepo.CategoryRepository, articles articleRepo.ArticleRepository) CategoryService {
	return &categoryService{categoryRepo: categories, articleRepo: articles}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*pkgdto.CategoryResponse, error) {
	if err := s.ensureSlugFree(ctx, req.Slug); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
	}
	if category.Color == "" {
		category.Color = entity.DefaultCategoryColor
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	resp := pkgdto.NewCategoryResponse(*category)
	return &resp, nil
}

func (s *categoryService) GetAll(ctx context.Context) ([]pkgdto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := make([]pkgdto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, pkgdto.NewCategoryResponse(*c))
	}
	return out, nil
}

// GetAllWithCounts adds the published article count per category, for the
// public navigation.
func (s *categoryService) GetAllWithCounts(ctx context.Context) ([]pkgdto.CategoryWithCountResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	counts, err := s.articleRepo.CountPublishedByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	out := make([]pkgdto.CategoryWithCountResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, pkgdto.CategoryWithCountResponse{
			CategoryResponse: pkgdto.NewCategoryResponse(*c),
			ArticleCount:     counts[c.ID],
		})
	}
	return out, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*pkgdto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", slug, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	resp := pkgdto.NewCategoryResponse(*category)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*pkgdto.CategoryResponse, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug); err != nil {
			return nil, err
		}
		category.Slug = *req.Slug
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	resp := pkgdto.NewCategoryResponse(*category)
	return &resp, nil
}

// Delete removes the category; articles that pointed at it are left
// uncategorized by the FK constraint.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *categoryService) findCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ensureSlugFree(ctx context.Context, slug string) error {
	_, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err == nil {
		return fmt.Errorf("slug %q already in use: %w", slug, apperror.ErrBadRequest)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	return nil
}
