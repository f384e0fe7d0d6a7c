package repository

import (
	"context"

	"anoa.com/collegejournal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatRepository interface {
	// CountArticles counts articles, optionally narrowed by status and author.
	CountArticles(ctx context.Context, status string, authorID *uuid.UUID) (int64, error)
	CountComments(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) CountArticles(ctx context.Context, status string, authorID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Article{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if authorID != nil {
		query = query.Where("author_id = ?", authorID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *statRepository) CountComments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Comment{}).Count(&count).Error
	return count, err
}

func (r *statRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}
