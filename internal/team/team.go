package team

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

// Repository defines persistence operations for team member profiles.
type Repository interface {
	Create(ctx context.Context, member *models.TeamMember) (*models.TeamMember, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	List(ctx context.Context) ([]models.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// CreateInput carries a new team member profile.
type CreateInput struct {
	Name         string
	RoleTitle    string
	Bio          string
	PhotoURL     *string
	DisplayOrder int
}

// UpdateInput captures a partial profile edit.
type UpdateInput struct {
	Name         *string
	RoleTitle    *string
	Bio          *string
	PhotoURL     *string
	DisplayOrder *int
}

// Service exposes team profile operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.TeamMember, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	List(ctx context.Context) ([]models.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a team repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, member *models.TeamMember) (*models.TeamMember, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) List(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).
		Order("display_order ASC, created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TeamMember{})
	return res.RowsAffected, res.Error
}

type service struct {
	repo Repository
}

// NewService builds the team service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("team repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.TeamMember, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.RoleTitle) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and role required")
	}
	member := &models.TeamMember{
		Name:         strings.TrimSpace(input.Name),
		RoleTitle:    strings.TrimSpace(input.RoleTitle),
		Bio:          input.Bio,
		PhotoURL:     input.PhotoURL,
		DisplayOrder: input.DisplayOrder,
	}
	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create team member")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team member")
	}
	return member, nil
}

func (s *service) List(ctx context.Context) ([]models.TeamMember, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list team members")
	}
	return members, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.TeamMember, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.RoleTitle != nil {
		updates["role_title"] = strings.TrimSpace(*input.RoleTitle)
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.PhotoURL != nil {
		updates["photo_url"] = input.PhotoURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update team member")
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete team member")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "team member not found")
	}
	return nil
}
