package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
)

// Repository defines persistence operations for blog posts.
type Repository interface {
	Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
}

// CreateInput carries a new article.
type CreateInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage *string
	AuthorName string
	Publish    bool
}

// UpdateInput captures a partial article edit. Publish toggles visibility and
// stamps PublishedAt on first publication.
type UpdateInput struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Content    *string
	CoverImage *string
	AuthorName *string
	Publish    *bool
}

// Service exposes blog operations for the public site and back office.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.BlogPost, error)
	Get(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a blog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	query := r.db.WithContext(ctx).Model(&models.BlogPost{})
	if publishedOnly {
		query = query.Where("is_published = ?", true).Order("published_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}
	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogPost{})
	return res.RowsAffected, res.Error
}

func (r *repository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

type service struct {
	repo Repository
}

// NewService builds the blog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.BlogPost, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and slug required")
	}
	post := &models.BlogPost{
		Title:       strings.TrimSpace(input.Title),
		Slug:        slugify(input.Slug),
		Excerpt:     input.Excerpt,
		Content:     input.Content,
		CoverImage:  input.CoverImage,
		AuthorName:  strings.TrimSpace(input.AuthorName),
		IsPublished: input.Publish,
	}
	if input.Publish {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create blog post")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err)
	}
	return post, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, slugify(slug))
	if err != nil {
		return nil, notFoundOrDependency(err)
	}
	return post, nil
}

func (s *service) List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	posts, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blog posts")
	}
	return posts, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.BlogPost, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil {
		updates["slug"] = slugify(*input.Slug)
	}
	if input.Excerpt != nil {
		updates["excerpt"] = *input.Excerpt
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.CoverImage != nil {
		updates["cover_image"] = input.CoverImage
	}
	if input.AuthorName != nil {
		updates["author_name"] = strings.TrimSpace(*input.AuthorName)
	}
	if input.Publish != nil {
		updates["is_published"] = *input.Publish
		if *input.Publish && existing.PublishedAt == nil {
			updates["published_at"] = time.Now().UTC()
		}
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update blog post")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete blog post")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found")
	}
	return nil
}

func slugify(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

func notFoundOrDependency(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load blog post")
}
