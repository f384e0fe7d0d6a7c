package bootstrap

import (
	"context"
	"fmt"
	"time"

	"anoa.com/collegejournal/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates a fresh database with the demo newsroom: two accounts, the
// base categories and tags, two published articles and the staff channel.
// It is idempotent; an already-populated database is left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	var userCount int64
	if err := db.WithContext(ctx).Model(&entity.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if userCount > 0 {
		zap.L().Debug("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &entity.User{
		Username:     "admin",
		PasswordHash: string(hash),
		DisplayName:  "Administrateur",
		Role:         entity.RoleAdmin,
		Bio:          "Responsable de la rédaction du journal.",
	}
	redacteur := &entity.User{
		Username:     "redacteur",
		PasswordHash: string(hash),
		DisplayName:  "Marie Dupont",
		Role:         entity.RoleRedacteur,
		Bio:          "Rédactrice, couvre la vie du lycée.",
	}
	if err := db.WithContext(ctx).Create([]*entity.User{admin, redacteur}).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	categories := []*entity.Category{
		{Name: "Actualités", Slug: "actualites", Description: "Les nouvelles du lycée", Color: "#3b82f6"},
		{Name: "Sport", Slug: "sport", Description: "Résultats et compétitions", Color: "#22c55e"},
		{Name: "Culture", Slug: "culture", Description: "Sorties, lectures, expositions", Color: "#a855f7"},
		{Name: "Vie scolaire", Slug: "vie-scolaire", Description: "Clubs, projets et événements", Color: "#f59e0b"},
	}
	if err := db.WithContext(ctx).Create(categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	tags := []*entity.Tag{
		{Name: "Interview", Slug: "interview"},
		{Name: "Événement", Slug: "evenement"},
		{Name: "Projet", Slug: "projet"},
		{Name: "Concours", Slug: "concours"},
	}
	if err := db.WithContext(ctx).Create(tags).Error; err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}

	now := time.Now()
	articles := []*entity.Article{
		{
			Title:       "La rentrée en images",
			Slug:        "la-rentree-en-images",
			Excerpt:     "Retour sur la première semaine de cours.",
			Content:     "La rentrée s'est déroulée sous le soleil. Les nouveaux élèves ont été accueillis par les enseignants et les associations du lycée, qui présentaient leurs activités dans la cour principale.",
			AuthorID:    redacteur.ID,
			CategoryID:  &categories[0].ID,
			Status:      entity.StatusPublished,
			PublishedAt: &now,
			ReadTime:    1,
			Tags:        []entity.Tag{*tags[1]},
		},
		{
			Title:       "Le club théâtre prépare sa pièce de fin d'année",
			Slug:        "le-club-theatre-prepare-sa-piece",
			Excerpt:     "Les répétitions ont commencé au foyer.",
			Content:     "Chaque mardi soir, une quinzaine d'élèves se retrouvent pour répéter la pièce qui sera jouée en juin. Le texte, écrit par les élèves eux-mêmes, mêle comédie et satire de la vie lycéenne.",
			AuthorID:    redacteur.ID,
			CategoryID:  &categories[2].ID,
			Status:      entity.StatusPublished,
			PublishedAt: &now,
			ReadTime:    1,
			Tags:        []entity.Tag{*tags[2]},
		},
	}
	if err := db.WithContext(ctx).Create(articles).Error; err != nil {
		return fmt.Errorf("failed to seed articles: %w", err)
	}

	channel := &entity.Channel{
		Name:        "général",
		Description: "Discussions de la rédaction",
	}
	if err := db.WithContext(ctx).Create(channel).Error; err != nil {
		return fmt.Errorf("failed to seed channel: %w", err)
	}

	zap.L().Info("seeded database",
		zap.Int("users", 2),
		zap.Int("categories", len(categories)),
		zap.Int("tags", len(tags)),
		zap.Int("articles", len(articles)))
	return nil
}
