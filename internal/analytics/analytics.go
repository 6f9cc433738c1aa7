package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

const (
	pageViewWindow = 30 * 24 * time.Hour
	topPageLimit   = 10

	pointsCompleted  = 10
	pointsInProgress = 5
	pointsAssigned   = 2
)

// PageCount is a path with its hit count inside the reporting window.
type PageCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// StaffActivity is the per-staff quote workload used for the leaderboard.
type StaffActivity struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Completed  int64     `json:"completed"`
	InProgress int64     `json:"in_progress"`
	Assigned   int64     `json:"assigned"`
	Points     int64     `json:"points"`
}

// DashboardStats is the aggregate snapshot behind the admin dashboard.
type DashboardStats struct {
	QuotesByStatus     map[enums.QuoteStatus]int64 `json:"quotes_by_status"`
	PipelineValue      float64                     `json:"pipeline_value"`
	UnresolvedContacts int64                       `json:"unresolved_contacts"`
	PublishedPosts     int64                       `json:"published_posts"`
	Products           int64                       `json:"products"`
	PageViews30d       int64                       `json:"page_views_30d"`
	TopPages           []PageCount                 `json:"top_pages"`
	StaffLeaderboard   []StaffActivity             `json:"staff_leaderboard"`
}

// Repository defines the aggregate queries behind the dashboard plus the
// page view insert.
type Repository interface {
	InsertPageView(ctx context.Context, view *models.PageView) error
	QuoteCountsByStatus(ctx context.Context) (map[enums.QuoteStatus]int64, error)
	PipelineValue(ctx context.Context) (float64, error)
	UnresolvedContacts(ctx context.Context) (int64, error)
	PublishedPosts(ctx context.Context) (int64, error)
	ProductCount(ctx context.Context) (int64, error)
	PageViewsSince(ctx context.Context, since time.Time) (int64, error)
	TopPages(ctx context.Context, since time.Time, limit int) ([]PageCount, error)
	StaffQuoteCounts(ctx context.Context) ([]staffQuoteRow, error)
}

// Service exposes analytics recording and reporting.
type Service interface {
	RecordPageView(ctx context.Context, path string, referrer *string)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type staffQuoteRow struct {
	UserID     uuid.UUID
	FirstName  string
	LastName   string
	Status     enums.QuoteStatus
	QuoteCount int64
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an analytics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertPageView(ctx context.Context, view *models.PageView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *repository) QuoteCountsByStatus(ctx context.Context) (map[enums.QuoteStatus]int64, error) {
	var rows []struct {
		Status enums.QuoteStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.QuoteStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) PipelineValue(ctx context.Context) (float64, error) {
	var value float64
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status IN ?", []enums.QuoteStatus{enums.QuoteStatusPending, enums.QuoteStatusInProgress}).
		Scan(&value).Error
	return value, err
}

func (r *repository) UnresolvedContacts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contact{}).Where("is_resolved = ?", false).Count(&count).Error
	return count, err
}

func (r *repository) PublishedPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

func (r *repository) ProductCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *repository) PageViewsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PageView{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *repository) TopPages(ctx context.Context, since time.Time, limit int) ([]PageCount, error) {
	var pages []PageCount
	err := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Select("path, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("path").
		Order("count DESC").
		Limit(limit).
		Scan(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *repository) StaffQuoteCounts(ctx context.Context) ([]staffQuoteRow, error) {
	var rows []staffQuoteRow
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("users.id AS user_id, users.first_name, users.last_name, quotes.status, COUNT(*) AS quote_count").
		Joins("JOIN users ON users.id = quotes.assigned_to_id").
		Group("users.id, users.first_name, users.last_name, quotes.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the analytics service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// RecordPageView is fire-and-forget: a failed insert is logged, never
// surfaced to the public page that triggered it.
func (s *service) RecordPageView(ctx context.Context, path string, referrer *string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	view := &models.PageView{Path: path, Referrer: referrer}
	if err := s.repo.InsertPageView(ctx, view); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "path", path), "analytics.pageview.failed")
	}
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	since := time.Now().UTC().Add(-pageViewWindow)

	quoteCounts, err := s.repo.QuoteCountsByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count quotes")
	}
	pipeline, err := s.repo.PipelineValue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pipeline")
	}
	unresolved, err := s.repo.UnresolvedContacts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count contacts")
	}
	published, err := s.repo.PublishedPosts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count posts")
	}
	productCount, err := s.repo.ProductCount(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	views, err := s.repo.PageViewsSince(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count page views")
	}
	topPages, err := s.repo.TopPages(ctx, since, topPageLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank pages")
	}
	staffRows, err := s.repo.StaffQuoteCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count staff quotes")
	}

	stats := &DashboardStats{
		QuotesByStatus:     quoteCounts,
		PipelineValue:      pipeline,
		UnresolvedContacts: unresolved,
		PublishedPosts:     published,
		Products:           productCount,
		PageViews30d:       views,
		TopPages:           topPages,
		StaffLeaderboard:   buildLeaderboard(staffRows),
	}
	return stats, nil
}

// buildLeaderboard folds per-status counts into one row per staff member.
// Every assigned quote earns the base points; completed and in-progress
// quotes add their weight on top.
func buildLeaderboard(rows []staffQuoteRow) []StaffActivity {
	byUser := map[uuid.UUID]*StaffActivity{}
	for _, row := range rows {
		entry, ok := byUser[row.UserID]
		if !ok {
			entry = &StaffActivity{
				UserID: row.UserID,
				Name:   strings.TrimSpace(row.FirstName + " " + row.LastName),
			}
			byUser[row.UserID] = entry
		}
		entry.Assigned += row.QuoteCount
		switch row.Status {
		case enums.QuoteStatusCompleted:
			entry.Completed += row.QuoteCount
		case enums.QuoteStatusInProgress:
			entry.InProgress += row.QuoteCount
		}
	}

	board := make([]StaffActivity, 0, len(byUser))
	for _, entry := range byUser {
		entry.Points = entry.Completed*pointsCompleted +
			entry.InProgress*pointsInProgress +
			entry.Assigned*pointsAssigned
		board = append(board, *entry)
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Points != board[j].Points {
			return board[i].Points > board[j].Points
		}
		return board[i].Name < board[j].Name
	})
	return board
}
