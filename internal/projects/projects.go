package projects

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

// Repository defines persistence operations for portfolio projects.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, projectType string) ([]models.Project, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// CreateInput carries a new showcased installation.
type CreateInput struct {
	Title       string
	Location    string
	ProjectType string
	Description string
	AreaSize    string
	ImageURL    *string
	CompletedAt *time.Time
}

// UpdateInput captures a partial project edit.
type UpdateInput struct {
	Title       *string
	Location    *string
	ProjectType *string
	Description *string
	AreaSize    *string
	ImageURL    *string
	CompletedAt *time.Time
}

// Service exposes portfolio project operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, projectType string) ([]models.Project, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a projects repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repository) List(ctx context.Context, projectType string) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).Order("completed_at DESC NULLS LAST, created_at DESC")
	if projectType != "" {
		query = query.Where("project_type = ?", projectType)
	}
	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	return res.RowsAffected, res.Error
}

type service struct {
	repo Repository
}

// NewService builds the projects service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("projects repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	project := &models.Project{
		Title:       strings.TrimSpace(input.Title),
		Location:    strings.TrimSpace(input.Location),
		ProjectType: strings.TrimSpace(input.ProjectType),
		Description: input.Description,
		AreaSize:    strings.TrimSpace(input.AreaSize),
		ImageURL:    input.ImageURL,
		CompletedAt: input.CompletedAt,
	}
	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	return project, nil
}

func (s *service) List(ctx context.Context, projectType string) ([]models.Project, error) {
	projects, err := s.repo.List(ctx, strings.TrimSpace(projectType))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
	}
	return projects, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Project, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.ProjectType != nil {
		updates["project_type"] = strings.TrimSpace(*input.ProjectType)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.AreaSize != nil {
		updates["area_size"] = strings.TrimSpace(*input.AreaSize)
	}
	if input.ImageURL != nil {
		updates["image_url"] = input.ImageURL
	}
	if input.CompletedAt != nil {
		updates["completed_at"] = input.CompletedAt
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update project")
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete project")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
	}
	return nil
}
