package contacts

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

// Repository defines persistence operations for contact enquiries.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, unresolvedOnly bool) ([]models.Contact, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountUnresolved(ctx context.Context) (int64, error)
}

// CreateInput carries an enquiry from the public contact form.
type CreateInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Message string
}

// Service exposes enquiry operations for the public form and back office.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Contact, error)
	List(ctx context.Context, unresolvedOnly bool) ([]models.Contact, error)
	Resolve(ctx context.Context, id uuid.UUID, resolved bool) (*models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contacts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *repository) List(ctx context.Context, unresolvedOnly bool) ([]models.Contact, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{}).Order("created_at DESC")
	if unresolvedOnly {
		query = query.Where("is_resolved = ?", false)
	}
	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Contact{})
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnresolved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contact{}).Where("is_resolved = ?", false).Count(&count).Error
	return count, err
}

type service struct {
	repo Repository
}

// NewService builds the contacts service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contacts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Contact, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and message required")
	}
	contact := &models.Contact{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   input.Phone,
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, unresolvedOnly bool) ([]models.Contact, error) {
	contacts, err := s.repo.List(ctx, unresolvedOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contacts")
	}
	return contacts, nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID, resolved bool) (*models.Contact, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"is_resolved": resolved,
		"updated_at":  time.Now().UTC(),
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact")
	}
	return s.get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}
	return nil
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}
	return contact, nil
}
