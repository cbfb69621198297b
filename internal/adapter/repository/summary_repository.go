package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// likeEscaper escapes LIKE wildcards; Postgres uses backslash as the default escape
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// summaryRepository implements the SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) repositories.SummaryRepository {
	return &summaryRepository{db: db}
}

// Create stores a new summary record
func (r *summaryRepository) Create(ctx context.Context, record *entities.SummaryRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return &entities.StoreError{Op: "create", Err: err}
	}
	return nil
}

// FindByID retrieves a summary owned by userID
func (r *summaryRepository) FindByID(ctx context.Context, id uuid.UUID, userID string) (*entities.SummaryRecord, error) {
	var record entities.SummaryRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrSummaryNotFound
	}
	if err != nil {
		return nil, &entities.StoreError{Op: "find", Err: err}
	}
	return &record, nil
}

// List retrieves summaries with filters and pagination
func (r *summaryRepository) List(ctx context.Context, filters repositories.SummaryFilters) ([]*entities.SummaryRecord, int64, error) {
	var records []*entities.SummaryRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.SummaryRecord{}).
		Where("user_id = ?", filters.UserID)

	if filters.Search != "" {
		query = query.Where("title ILIKE ?", containsPattern(filters.Search))
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &entities.StoreError{Op: "count", Err: err}
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, 0, &entities.StoreError{Op: "list", Err: err}
	}

	return records, total, nil
}

// UpdateArchiveKey records where the summary was archived
func (r *summaryRepository) UpdateArchiveKey(ctx context.Context, id uuid.UUID, key string) error {
	err := r.db.WithContext(ctx).
		Model(&entities.SummaryRecord{}).
		Where("id = ?", id).
		Update("archive_key", key).Error
	if err != nil {
		return &entities.StoreError{Op: "update archive key", Err: err}
	}
	return nil
}

// Delete removes a summary owned by userID
func (r *summaryRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.SummaryRecord{})
	if res.Error != nil {
		return &entities.StoreError{Op: "delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return entities.ErrSummaryNotFound
	}
	return nil
}

// containsPattern matches term literally anywhere in a column
func containsPattern(term string) string {
	return fmt.Sprintf("%%%s%%", likeEscaper.Replace(term))
}
