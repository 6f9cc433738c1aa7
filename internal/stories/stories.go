package stories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
)

// Repository defines persistence operations for success stories.
type Repository interface {
	Create(ctx context.Context, story *models.SuccessStory) (*models.SuccessStory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SuccessStory, error)
	List(ctx context.Context, featuredOnly bool) ([]models.SuccessStory, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// CreateInput carries a new customer story.
type CreateInput struct {
	CustomerName string
	Location     string
	ProjectType  string
	Story        string
	ImageURL     *string
	IsFeatured   bool
}

// UpdateInput captures a partial story edit.
type UpdateInput struct {
	CustomerName *string
	Location     *string
	ProjectType  *string
	Story        *string
	ImageURL     *string
	IsFeatured   *bool
}

// Service exposes success story operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.SuccessStory, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SuccessStory, error)
	List(ctx context.Context, featuredOnly bool) ([]models.SuccessStory, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.SuccessStory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stories repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, story *models.SuccessStory) (*models.SuccessStory, error) {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SuccessStory, error) {
	var story models.SuccessStory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&story).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *repository) List(ctx context.Context, featuredOnly bool) ([]models.SuccessStory, error) {
	query := r.db.WithContext(ctx).Model(&models.SuccessStory{}).Order("created_at DESC")
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}
	var stories []models.SuccessStory
	if err := query.Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.SuccessStory{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SuccessStory{})
	return res.RowsAffected, res.Error
}

type service struct {
	repo Repository
}

// NewService builds the stories service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.SuccessStory, error) {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.Story) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name and story required")
	}
	story := &models.SuccessStory{
		CustomerName: strings.TrimSpace(input.CustomerName),
		Location:     strings.TrimSpace(input.Location),
		ProjectType:  strings.TrimSpace(input.ProjectType),
		Story:        input.Story,
		ImageURL:     input.ImageURL,
		IsFeatured:   input.IsFeatured,
	}
	created, err := s.repo.Create(ctx, story)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create success story")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SuccessStory, error) {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "success story not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load success story")
	}
	return story, nil
}

func (s *service) List(ctx context.Context, featuredOnly bool) ([]models.SuccessStory, error) {
	stories, err := s.repo.List(ctx, featuredOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list success stories")
	}
	return stories, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.SuccessStory, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.CustomerName != nil {
		updates["customer_name"] = strings.TrimSpace(*input.CustomerName)
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.ProjectType != nil {
		updates["project_type"] = strings.TrimSpace(*input.ProjectType)
	}
	if input.Story != nil {
		updates["story"] = *input.Story
	}
	if input.ImageURL != nil {
		updates["image_url"] = input.ImageURL
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update success story")
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete success story")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "success story not found")
	}
	return nil
}
