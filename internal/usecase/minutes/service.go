package minutes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

const (
	replyCachePrefix = "minutes:reply:"
	mockModelName    = "mock"

	defaultPageSize = 20
	maxPageSize     = 100
)

// Archive stores raw replies and rendered summaries outside the database
type Archive interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	RemovePrefix(ctx context.Context, prefix string) error
}

// ModelCatalog lists the models a local daemon can serve
type ModelCatalog interface {
	Tags(ctx context.Context) ([]string, error)
	Model() string
}

// Service defines meeting minutes operations
type Service interface {
	Summarize(ctx context.Context, in SummarizeInput) (*entities.SummaryRecord, error)
	Extract(text string) entities.MeetingSummary
	Get(ctx context.Context, id uuid.UUID, userID string) (*entities.SummaryRecord, error)
	List(ctx context.Context, in ListInput) ([]*entities.SummaryRecord, int64, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	ExportURL(ctx context.Context, id uuid.UUID, userID string) (*ExportLink, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
	Health(ctx context.Context) HealthStatus
}

// Dependencies wires the collaborators of the service. Generator, Catalog,
// Cache and Archive are optional.
type Dependencies struct {
	Repo        repositories.SummaryRepository
	Generator   ai.Generator // nil always serves the mock reply
	Catalog     ModelCatalog // set when the generator is a local Ollama daemon
	Transcriber ai.Transcriber
	Cache       cache.Store
	Archive     Archive
	Logger      *zap.Logger
}

// Options tunes the service
type Options struct {
	CacheTTL      time.Duration
	PresignExpiry time.Duration
	Now           func() time.Time
}

// SummarizeInput is a transcript submitted by a user
type SummarizeInput struct {
	UserID     string
	Transcript string
	Refresh    bool // drop any cached reply and ask the model again
}

// ExportLink is a time-limited download URL for an archived summary
type ExportLink struct {
	URL       string
	ExpiresAt time.Time
}

// ListInput selects a page of a user's summaries
type ListInput struct {
	UserID   string
	Search   string
	Page     int
	PageSize int
}

// Normalize clamps paging values into their allowed ranges
func (in *ListInput) Normalize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}
}

// HealthStatus reports whether the summary generator can be reached
type HealthStatus struct {
	Status      string    `json:"status"`
	Provider    string    `json:"provider"`
	Ollama      string    `json:"ollama,omitempty"`
	Model       string    `json:"model,omitempty"`
	ModelStatus string    `json:"model_status"`
	Models      []string  `json:"models,omitempty"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type service struct {
	repo        repositories.SummaryRepository
	generator   ai.Generator
	catalog     ModelCatalog
	transcriber ai.Transcriber
	cache       cache.Store
	archive     Archive
	logger      *zap.Logger
	opts        Options
}

// NewService constructs a new minutes service
func NewService(deps Dependencies, opts Options) Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = 15 * time.Minute
	}

	return &service{
		repo:        deps.Repo,
		generator:   deps.Generator,
		catalog:     deps.Catalog,
		transcriber: deps.Transcriber,
		cache:       deps.Cache,
		archive:     deps.Archive,
		logger:      deps.Logger,
		opts:        opts,
	}
}

// Summarize generates, extracts and stores a summary for a transcript
func (s *service) Summarize(ctx context.Context, in SummarizeInput) (*entities.SummaryRecord, error) {
	if strings.TrimSpace(in.Transcript) == "" {
		return nil, entities.ErrTranscriptRequired
	}

	started := time.Now()
	now := s.opts.Now()

	cleaned := CleanTranscript(in.Transcript)
	reply := s.generate(ctx, cleaned, now, in.Refresh)

	summary, skipped := ExtractWithDiagnostics(reply.text, now)
	if len(skipped) > 0 {
		s.logger.Debug("summary.extract.skipped",
			zap.String("source", string(reply.source)),
			zap.Int("count", len(skipped)),
			zap.Strings("lines", skippedText(skipped)),
		)
	}

	record := entities.NewSummaryRecord(in.UserID, summary)
	record.Transcript = in.Transcript
	record.RawResponse = reply.text
	record.Speakers = IdentifySpeakers(in.Transcript)
	record.Source = reply.source
	record.ModelUsed = reply.model
	record.ProcessingTimeMs = time.Since(started).Milliseconds()

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.archiveRecord(ctx, record)

	s.logger.Info("summary.created",
		zap.String("summary_id", record.ID.String()),
		zap.String("user_id", record.UserID),
		zap.String("source", string(record.Source)),
		zap.String("model", record.ModelUsed),
		zap.Int("action_items", len(summary.ActionItems)),
		zap.Int64("processing_time_ms", record.ProcessingTimeMs),
	)

	return record, nil
}

// Extract parses text in the summary template without calling a model
func (s *service) Extract(text string) entities.MeetingSummary {
	return Extract(text, s.opts.Now())
}

type generatedReply struct {
	text   string
	source entities.SummarySource
	model  string
}

// generate returns the model's reply, or the mock template when the model fails
func (s *service) generate(ctx context.Context, cleaned string, now time.Time, refresh bool) generatedReply {
	mock := generatedReply{text: MockResponse(now), source: entities.SummarySourceMock, model: mockModelName}
	if s.generator == nil {
		return mock
	}

	name := s.generator.Name()
	key := replyCacheKey(name, cleaned, now)

	if s.cache != nil && refresh {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("summary.cache.delete_failed", zap.Error(err))
		}
	} else if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("summary.cache.get_failed", zap.Error(err))
		} else if ok {
			return generatedReply{text: cached, source: entities.SummarySourceCache, model: name}
		}
	}

	text, err := s.generator.Generate(ctx, BuildPrompt(cleaned, now))
	if err != nil {
		s.logger.Warn("summary.generate.failed, falling back to mock reply",
			zap.String("generator", name),
			zap.Error(err),
		)
		return mock
	}

	if s.cache != nil && s.opts.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, text, s.opts.CacheTTL); err != nil {
			s.logger.Warn("summary.cache.set_failed", zap.Error(err))
		}
	}

	return generatedReply{text: text, source: entities.SummarySourceModel, model: name}
}

// archiveRecord uploads the raw reply and the summary JSON. Failures are logged only.
func (s *service) archiveRecord(ctx context.Context, record *entities.SummaryRecord) {
	if s.archive == nil {
		return
	}

	prefix := archivePrefix(record.UserID, record.ID)
	summaryJSON, err := json.MarshalIndent(record.Summary(), "", "  ")
	if err != nil {
		s.logger.Warn("summary.archive.marshal_failed", zap.Error(err))
		return
	}

	if err := s.archive.Put(ctx, prefix+"response.txt", []byte(record.RawResponse), "text/plain"); err != nil {
		s.logger.Warn("summary.archive.put_failed", zap.String("summary_id", record.ID.String()), zap.Error(err))
		return
	}
	key := prefix + "summary.json"
	if err := s.archive.Put(ctx, key, summaryJSON, "application/json"); err != nil {
		s.logger.Warn("summary.archive.put_failed", zap.String("summary_id", record.ID.String()), zap.Error(err))
		return
	}

	if err := s.repo.UpdateArchiveKey(ctx, record.ID, key); err != nil {
		s.logger.Warn("summary.archive.update_key_failed", zap.String("summary_id", record.ID.String()), zap.Error(err))
		return
	}
	record.ArchiveKey = key
}

// Get returns one of the user's summaries
func (s *service) Get(ctx context.Context, id uuid.UUID, userID string) (*entities.SummaryRecord, error) {
	return s.repo.FindByID(ctx, id, userID)
}

// List returns a page of the user's summaries, newest first
func (s *service) List(ctx context.Context, in ListInput) ([]*entities.SummaryRecord, int64, error) {
	in.Normalize()
	return s.repo.List(ctx, repositories.SummaryFilters{
		UserID: in.UserID,
		Search: in.Search,
		Limit:  in.PageSize,
		Offset: (in.Page - 1) * in.PageSize,
	})
}

// Delete removes a summary and its archived objects
func (s *service) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	if s.archive != nil {
		if err := s.archive.RemovePrefix(ctx, archivePrefix(userID, id)); err != nil {
			s.logger.Warn("summary.archive.remove_failed", zap.String("summary_id", id.String()), zap.Error(err))
		}
	}
	return nil
}

// ExportURL returns a presigned download URL for the archived summary JSON
func (s *service) ExportURL(ctx context.Context, id uuid.UUID, userID string) (*ExportLink, error) {
	if s.archive == nil {
		return nil, entities.ErrArchiveDisabled
	}

	record, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if record.ArchiveKey == "" {
		return nil, entities.ErrNotArchived
	}

	issued := s.opts.Now()
	url, err := s.archive.PresignedURL(ctx, record.ArchiveKey, s.opts.PresignExpiry)
	if err != nil {
		return nil, &entities.ArchiveError{Op: "presign", Err: err}
	}
	return &ExportLink{URL: url, ExpiresAt: issued.Add(s.opts.PresignExpiry).UTC()}, nil
}

// Transcribe converts recorded audio to text with the configured transcriber
func (s *service) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if s.transcriber == nil {
		return "", entities.ErrTranscriberDisabled
	}

	text, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.transcriber.Name(), err)
	}
	return text, nil
}

// Health reports generator reachability and model availability
func (s *service) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "API is running",
		Provider:  mockModelName,
		Timestamp: s.opts.Now().UTC(),
	}

	if s.generator == nil {
		status.ModelStatus = "mock"
		return status
	}
	status.Provider = s.generator.Name()

	if s.catalog == nil {
		status.ModelStatus = "ready"
		return status
	}

	status.Model = s.catalog.Model()
	models, err := s.catalog.Tags(ctx)
	if err != nil {
		status.Ollama = "disconnected"
		status.ModelStatus = "not available"
		status.Error = err.Error()
		return status
	}

	status.Ollama = "connected"
	status.Models = models
	if slices.Contains(models, status.Model) {
		status.ModelStatus = "ready"
	} else {
		status.ModelStatus = status.Model + " not installed"
	}
	return status
}

// replyCacheKey scopes cached replies to the generator and the prompt date
func replyCacheKey(generator, cleaned string, now time.Time) string {
	sum := sha256.Sum256([]byte(generator + "\x00" + now.Format(DateLayout) + "\x00" + cleaned))
	return replyCachePrefix + hex.EncodeToString(sum[:])
}

func archivePrefix(userID string, id uuid.UUID) string {
	owner := userID
	if owner == "" {
		owner = "anonymous"
	}
	return fmt.Sprintf("summaries/%s/%s/", owner, id)
}

func skippedText(lines []SkippedLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, fmt.Sprintf("%d: %s (%s)", l.Number, l.Text, l.Reason))
	}
	return out
}
