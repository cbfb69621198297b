package minutes

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

type fakeRepo struct {
	mu          sync.Mutex
	records     map[uuid.UUID]*entities.SummaryRecord
	lastFilters repositories.SummaryFilters
	createErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*entities.SummaryRecord)}
}

func (r *fakeRepo) Create(_ context.Context, record *entities.SummaryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID, userID string) (*entities.SummaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, entities.ErrSummaryNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filters repositories.SummaryFilters) ([]*entities.SummaryRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilters = filters

	var out []*entities.SummaryRecord
	for _, rec := range r.records {
		if rec.UserID != filters.UserID {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(rec.Title), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))

	if filters.Offset >= len(out) {
		return []*entities.SummaryRecord{}, total, nil
	}
	out = out[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(out) {
		out = out[:filters.Limit]
	}
	return out, total, nil
}

func (r *fakeRepo) UpdateArchiveKey(_ context.Context, id uuid.UUID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return entities.ErrSummaryNotFound
	}
	rec.ArchiveKey = key
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return entities.ErrSummaryNotFound
	}
	delete(r.records, id)
	return nil
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeGenerator) Name() string { return "fake:model" }

type fakeCatalog struct {
	model string
	tags  []string
	err   error
}

func (c *fakeCatalog) Tags(context.Context) ([]string, error) { return c.tags, c.err }
func (c *fakeCatalog) Model() string                          { return c.model }

type fakeTranscriber struct {
	text string
	err  error
	got  string
}

func (t *fakeTranscriber) Transcribe(_ context.Context, _ string, audio io.Reader) (string, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	t.got = string(data)
	return t.text, t.err
}

func (t *fakeTranscriber) Name() string { return "fake-stt" }

type fakeArchive struct {
	objects       map[string][]byte
	putErr        error
	removedPrefix string
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: make(map[string][]byte)}
}

func (a *fakeArchive) Put(_ context.Context, name string, data []byte, _ string) error {
	if a.putErr != nil {
		return a.putErr
	}
	a.objects[name] = data
	return nil
}

func (a *fakeArchive) PresignedURL(_ context.Context, name string, expiry time.Duration) (string, error) {
	if _, ok := a.objects[name]; !ok {
		return "", errors.New("no such object")
	}
	return "https://archive.test/" + name + "?expires=" + expiry.String(), nil
}

func (a *fakeArchive) RemovePrefix(_ context.Context, prefix string) error {
	a.removedPrefix = prefix
	for name := range a.objects {
		if strings.HasPrefix(name, prefix) {
			delete(a.objects, name)
		}
	}
	return nil
}
