package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// SummaryRepository defines the interface for meeting summary data access
type SummaryRepository interface {
	// Create stores a new summary record
	Create(ctx context.Context, record *entities.SummaryRecord) error

	// FindByID retrieves a summary owned by userID
	FindByID(ctx context.Context, id uuid.UUID, userID string) (*entities.SummaryRecord, error)

	// List retrieves summaries with filters and pagination, newest first
	List(ctx context.Context, filters SummaryFilters) ([]*entities.SummaryRecord, int64, error)

	// UpdateArchiveKey records where the summary was archived
	UpdateArchiveKey(ctx context.Context, id uuid.UUID, key string) error

	// Delete removes a summary owned by userID
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// SummaryFilters represents filter options for listing summaries
type SummaryFilters struct {
	UserID string
	Search string // Search in title
	Limit  int
	Offset int
}
