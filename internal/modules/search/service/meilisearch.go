package search

import (
	"encoding/json"

	"anoa.com/collegejournal/internal/entity"
	"anoa.com/collegejournal/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const articleIndex = "articles"

// SearchService maintains the Meilisearch article index. Only published
// articles are indexed; everything else is removed so drafts never leak
// through search.
type SearchService interface {
	IndexArticle(article *entity.Article) error
	DeleteArticle(id string) error
	SearchArticles(term string, limit int) ([]uuid.UUID, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	filterable := []any{"category_id", "author_id"}
	if _, err := s.client.Index(articleIndex).UpdateFilterableAttributes(&filterable); err != nil {
		zap.L().Warn("failed to update filterable attributes", zap.Error(err))
	}

	sortable := []string{"published_at"}
	if _, err := s.client.Index(articleIndex).UpdateSortableAttributes(&sortable); err != nil {
		zap.L().Warn("failed to update sortable attributes", zap.Error(err))
	}
}

type articleDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	AuthorID    string `json:"author_id"`
	Author      string `json:"author"`
	CategoryID  string `json:"category_id"`
	PublishedAt int64  `json:"published_at"`
}

func (s *meiliSearchService) IndexArticle(article *entity.Article) error {
	doc := articleDoc{
		ID:       article.ID.String(),
		Title:    article.Title,
		Slug:     article.Slug,
		Excerpt:  sanitize.Text(article.Excerpt),
		Content:  sanitize.Text(article.Content),
		AuthorID: article.AuthorID.String(),
		Author:   article.Author.DisplayName,
	}
	if article.CategoryID != nil {
		doc.CategoryID = article.CategoryID.String()
	}
	if article.PublishedAt != nil {
		doc.PublishedAt = article.PublishedAt.Unix()
	}

	primaryKey := "id"
	_, err := s.client.Index(articleIndex).AddDocuments([]articleDoc{doc}, &primaryKey)
	return err
}

func (s *meiliSearchService) DeleteArticle(id string) error {
	_, err := s.client.Index(articleIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchArticles(term string, limit int) ([]uuid.UUID, error) {
	res, err := s.client.Index(articleIndex).Search(term, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so we don't depend on the concrete hit type.
	raw, err := json.Marshal(res.Hits)
	if err != nil {
		return nil, err
	}
	var docs []articleDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
