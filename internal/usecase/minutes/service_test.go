package minutes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
)

const modelReply = `MEETING_TITLE: Launch Sync
DATE: 9/3/2024
DURATION: 20 minutes
PARTICIPANTS: Alice, Bob
KEY_POINTS:
- Launch is on track
DECISIONS:
- Ship on Friday
ACTION_ITEMS:
1. Write release notes | Alice | 2024-09-06 | high
NEXT_STEPS:
- Announce internally`

const transcript = "00:01 Alice: Welcome.Let's   start\n00:45 Bob: The launch is on track"

type testEnv struct {
	svc     Service
	repo    *fakeRepo
	gen     *fakeGenerator
	archive *fakeArchive
	store   *cache.MemoryStore
}

func newTestEnv(t *testing.T, gen *fakeGenerator, archive *fakeArchive) *testEnv {
	t.Helper()

	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	env := &testEnv{repo: newFakeRepo(), gen: gen, archive: archive, store: store}
	deps := Dependencies{Repo: env.repo, Cache: store}
	if gen != nil {
		deps.Generator = gen
	}
	if archive != nil {
		deps.Archive = archive
	}
	env.svc = NewService(deps, Options{
		CacheTTL:      time.Hour,
		PresignExpiry: 5 * time.Minute,
		Now:           func() time.Time { return fixedNow },
	})
	return env
}

func TestSummarize_RequiresTranscript(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{reply: modelReply}, nil)

	_, err := env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: "  \n\t"})

	assert.ErrorIs(t, err, entities.ErrTranscriptRequired)
	assert.Empty(t, env.gen.prompts)
}

func TestSummarize_UsesModelReply(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{reply: modelReply}, nil)

	rec, err := env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)

	assert.Equal(t, entities.SummarySourceModel, rec.Source)
	assert.Equal(t, "fake:model", rec.ModelUsed)
	assert.Equal(t, "Launch Sync", rec.Title)
	assert.Equal(t, []string{"Alice", "Bob"}, []string(rec.Participants))
	assert.Equal(t, []string{"Alice", "Bob"}, []string(rec.Speakers))
	assert.Equal(t, transcript, rec.Transcript)
	assert.Equal(t, modelReply, rec.RawResponse)
	require.Len(t, rec.ActionItems, 1)
	assert.Equal(t, entities.PriorityHigh, rec.ActionItems[0].Priority)

	require.Len(t, env.gen.prompts, 1)
	assert.Contains(t, env.gen.prompts[0], "Welcome. Let's start")
	assert.Contains(t, env.gen.prompts[0], "DATE: 9/3/2024")

	stored, err := env.repo.FindByID(context.Background(), rec.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Launch Sync", stored.Title)
}

func TestSummarize_FallsBackToMockOnGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	env := newTestEnv(t, gen, nil)

	rec, err := env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)

	assert.Equal(t, entities.SummarySourceMock, rec.Source)
	assert.Equal(t, "mock", rec.ModelUsed)
	assert.Equal(t, "Quarterly Review Meeting", rec.Title)
	assert.Len(t, rec.ActionItems, 4)

	// mock replies are never cached
	_, err = env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)
	assert.Len(t, gen.prompts, 2)
}

func TestSummarize_NilGeneratorServesMock(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec, err := env.svc.Summarize(context.Background(), SummarizeInput{Transcript: transcript})
	require.NoError(t, err)

	assert.Equal(t, entities.SummarySourceMock, rec.Source)
	assert.Equal(t, "9/3/2024", rec.Date)
}

func TestSummarize_CachesModelReplies(t *testing.T) {
	gen := &fakeGenerator{reply: modelReply}
	env := newTestEnv(t, gen, nil)
	ctx := context.Background()

	first, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)
	// whitespace differences clean to the same transcript
	second, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u2", Transcript: "  " + transcript + "  \n"})
	require.NoError(t, err)

	assert.Len(t, gen.prompts, 1)
	assert.Equal(t, entities.SummarySourceModel, first.Source)
	assert.Equal(t, entities.SummarySourceCache, second.Source)
	assert.Equal(t, first.Title, second.Title)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSummarize_CacheIsScopedToPromptDate(t *testing.T) {
	gen := &fakeGenerator{reply: "MEETING_TITLE: Sync"}
	now := fixedNow
	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	svc := NewService(Dependencies{Repo: newFakeRepo(), Generator: gen, Cache: store}, Options{
		CacheTTL: 48 * time.Hour,
		Now:      func() time.Time { return now },
	})
	ctx := context.Background()

	first, err := svc.Summarize(ctx, SummarizeInput{Transcript: transcript})
	require.NoError(t, err)
	now = now.AddDate(0, 0, 1)
	second, err := svc.Summarize(ctx, SummarizeInput{Transcript: transcript})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "DATE: 9/4/2024")
	assert.Equal(t, entities.SummarySourceModel, first.Source)
	assert.Equal(t, entities.SummarySourceModel, second.Source)
	assert.Equal(t, "9/4/2024", second.Date)
}

func TestSummarize_RefreshReplacesCachedReply(t *testing.T) {
	gen := &fakeGenerator{reply: "MEETING_TITLE: First"}
	env := newTestEnv(t, gen, nil)
	ctx := context.Background()
	key := replyCacheKey(gen.Name(), CleanTranscript(transcript), fixedNow)

	_, err := env.svc.Summarize(ctx, SummarizeInput{Transcript: transcript})
	require.NoError(t, err)

	gen.reply = "MEETING_TITLE: Second"
	rec, err := env.svc.Summarize(ctx, SummarizeInput{Transcript: transcript, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, entities.SummarySourceModel, rec.Source)
	assert.Equal(t, "Second", rec.Title)

	cached, ok, err := env.store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "MEETING_TITLE: Second", cached)

	// a failed refresh leaves no stale reply behind
	gen.err = errors.New("model unloaded")
	rec, err = env.svc.Summarize(ctx, SummarizeInput{Transcript: transcript, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, entities.SummarySourceMock, rec.Source)

	_, ok, err = env.store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, gen.prompts, 3)
}

func TestSummarize_StoresLongScalarFields(t *testing.T) {
	longDate := "Tuesday, the third of September, after the earlier standup " + strings.Repeat("that ran long ", 20)
	env := newTestEnv(t, &fakeGenerator{reply: "MEETING_TITLE: Sync\nDATE: " + longDate}, nil)

	rec, err := env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)

	stored, err := env.repo.FindByID(context.Background(), rec.ID, "u1")
	require.NoError(t, err)
	assert.Greater(t, len(stored.Date), 100)
	assert.Equal(t, strings.TrimSpace(longDate), stored.Date)
}

func TestSummarize_PropagatesRepositoryError(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{reply: modelReply}, nil)
	env.repo.createErr = errors.New("db down")

	_, err := env.svc.Summarize(context.Background(), SummarizeInput{Transcript: transcript})

	assert.ErrorContains(t, err, "db down")
}

func TestSummarize_ArchivesReplyAndSummary(t *testing.T) {
	archive := newFakeArchive()
	env := newTestEnv(t, &fakeGenerator{reply: modelReply}, archive)

	rec, err := env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)

	prefix := "summaries/u1/" + rec.ID.String() + "/"
	assert.Equal(t, prefix+"summary.json", rec.ArchiveKey)
	assert.Equal(t, modelReply, string(archive.objects[prefix+"response.txt"]))

	var archived entities.MeetingSummary
	require.NoError(t, json.Unmarshal(archive.objects[prefix+"summary.json"], &archived))
	assert.Equal(t, "Launch Sync", archived.Title)

	stored, err := env.repo.FindByID(context.Background(), rec.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, rec.ArchiveKey, stored.ArchiveKey)
}

func TestSummarize_ArchiveFailureIsNotFatal(t *testing.T) {
	archive := newFakeArchive()
	archive.putErr = errors.New("bucket missing")
	env := newTestEnv(t, &fakeGenerator{reply: modelReply}, archive)

	rec, err := env.svc.Summarize(context.Background(), SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)

	assert.Empty(t, rec.ArchiveKey)
}

func TestExportURL(t *testing.T) {
	ctx := context.Background()

	t.Run("archive disabled", func(t *testing.T) {
		env := newTestEnv(t, &fakeGenerator{reply: modelReply}, nil)
		rec, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)

		_, err = env.svc.ExportURL(ctx, rec.ID, "u1")
		assert.ErrorIs(t, err, entities.ErrArchiveDisabled)
	})

	t.Run("not archived", func(t *testing.T) {
		archive := newFakeArchive()
		archive.putErr = errors.New("offline")
		env := newTestEnv(t, &fakeGenerator{reply: modelReply}, archive)
		rec, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)

		_, err = env.svc.ExportURL(ctx, rec.ID, "u1")
		assert.ErrorIs(t, err, entities.ErrNotArchived)
	})

	t.Run("other user", func(t *testing.T) {
		env := newTestEnv(t, &fakeGenerator{reply: modelReply}, newFakeArchive())
		rec, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)

		_, err = env.svc.ExportURL(ctx, rec.ID, "u2")
		assert.ErrorIs(t, err, entities.ErrSummaryNotFound)
	})

	t.Run("archived", func(t *testing.T) {
		env := newTestEnv(t, &fakeGenerator{reply: modelReply}, newFakeArchive())
		rec, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)

		link, err := env.svc.ExportURL(ctx, rec.ID, "u1")
		require.NoError(t, err)
		assert.Contains(t, link.URL, rec.ArchiveKey)
		assert.Contains(t, link.URL, "expires=5m0s")
		assert.Equal(t, fixedNow.Add(5*time.Minute), link.ExpiresAt)
	})

	t.Run("expiry reports the default when unset", func(t *testing.T) {
		archive := newFakeArchive()
		svc := NewService(Dependencies{Repo: newFakeRepo(), Archive: archive}, Options{
			PresignExpiry: 0,
			Now:           func() time.Time { return fixedNow },
		})
		rec, err := svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)

		link, err := svc.ExportURL(ctx, rec.ID, "u1")
		require.NoError(t, err)
		assert.Contains(t, link.URL, "expires=15m0s")
		assert.Equal(t, fixedNow.Add(15*time.Minute), link.ExpiresAt)
	})

	t.Run("presign failure", func(t *testing.T) {
		archive := newFakeArchive()
		env := newTestEnv(t, &fakeGenerator{reply: modelReply}, archive)
		rec, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)
		delete(archive.objects, rec.ArchiveKey)

		_, err = env.svc.ExportURL(ctx, rec.ID, "u1")
		var archiveErr *entities.ArchiveError
		require.ErrorAs(t, err, &archiveErr)
		assert.Equal(t, "presign", archiveErr.Op)
	})
}

func TestDelete_RemovesRecordAndArchive(t *testing.T) {
	ctx := context.Background()
	archive := newFakeArchive()
	env := newTestEnv(t, &fakeGenerator{reply: modelReply}, archive)
	rec, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Delete(ctx, rec.ID, "someone-else"), entities.ErrSummaryNotFound)
	require.NoError(t, env.svc.Delete(ctx, rec.ID, "u1"))

	assert.Equal(t, "summaries/u1/"+rec.ID.String()+"/", archive.removedPrefix)
	assert.Empty(t, archive.objects)
	_, err = env.svc.Get(ctx, rec.ID, "u1")
	assert.ErrorIs(t, err, entities.ErrSummaryNotFound)
}

func TestList_NormalizesPaging(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.svc.Summarize(ctx, SummarizeInput{UserID: "u1", Transcript: transcript})
		require.NoError(t, err)
	}

	records, total, err := env.svc.List(ctx, ListInput{UserID: "u1", Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 3)
	assert.Equal(t, maxPageSize, env.repo.lastFilters.Limit)
	assert.Equal(t, 0, env.repo.lastFilters.Offset)

	_, _, err = env.svc.List(ctx, ListInput{UserID: "u1", Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, env.repo.lastFilters.Offset)

	records, total, err = env.svc.List(ctx, ListInput{UserID: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
	assert.Equal(t, defaultPageSize, env.repo.lastFilters.Limit)
}

func TestTranscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		tr := &fakeTranscriber{text: "hello world"}
		svc := NewService(Dependencies{Repo: newFakeRepo(), Transcriber: tr}, Options{})

		text, err := svc.Transcribe(ctx, "a.webm", strings.NewReader("audio-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "hello world", text)
		assert.Equal(t, "audio-bytes", tr.got)
	})

	t.Run("failure names the provider", func(t *testing.T) {
		tr := &fakeTranscriber{err: errors.New("timeout")}
		svc := NewService(Dependencies{Repo: newFakeRepo(), Transcriber: tr}, Options{})

		_, err := svc.Transcribe(ctx, "a.webm", strings.NewReader("x"))
		assert.ErrorContains(t, err, "fake-stt")
	})

	t.Run("no transcriber", func(t *testing.T) {
		svc := NewService(Dependencies{Repo: newFakeRepo()}, Options{})

		_, err := svc.Transcribe(ctx, "a.webm", strings.NewReader("x"))
		assert.ErrorIs(t, err, entities.ErrTranscriberDisabled)
	})
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return fixedNow }

	tests := []struct {
		name        string
		deps        Dependencies
		wantModel   string
		wantOllama  string
		wantErrText bool
	}{
		{
			name:      "mock provider",
			deps:      Dependencies{},
			wantModel: "mock",
		},
		{
			name:      "hosted provider",
			deps:      Dependencies{Generator: &fakeGenerator{}},
			wantModel: "ready",
		},
		{
			name: "ollama with model installed",
			deps: Dependencies{
				Generator: &fakeGenerator{},
				Catalog:   &fakeCatalog{model: "tinyllama:latest", tags: []string{"llama3:8b", "tinyllama:latest"}},
			},
			wantModel:  "ready",
			wantOllama: "connected",
		},
		{
			name: "ollama without model",
			deps: Dependencies{
				Generator: &fakeGenerator{},
				Catalog:   &fakeCatalog{model: "tinyllama:latest", tags: []string{"llama3:8b"}},
			},
			wantModel:  "tinyllama:latest not installed",
			wantOllama: "connected",
		},
		{
			name: "ollama unreachable",
			deps: Dependencies{
				Generator: &fakeGenerator{},
				Catalog:   &fakeCatalog{model: "tinyllama:latest", err: errors.New("dial tcp: refused")},
			},
			wantModel:   "not available",
			wantOllama:  "disconnected",
			wantErrText: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.deps.Repo = newFakeRepo()
			svc := NewService(tt.deps, Options{Now: now})

			status := svc.Health(ctx)

			assert.Equal(t, tt.wantModel, status.ModelStatus)
			assert.Equal(t, tt.wantOllama, status.Ollama)
			assert.Equal(t, tt.wantErrText, status.Error != "")
			assert.Equal(t, fixedNow, status.Timestamp)
		})
	}
}

func TestService_ExtractUsesClock(t *testing.T) {
	svc := NewService(Dependencies{Repo: newFakeRepo()}, Options{Now: func() time.Time { return fixedNow }})

	got := svc.Extract("MEETING_TITLE: Standup")

	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "9/3/2024", got.Date)
}

func TestReplyCacheKey(t *testing.T) {
	a := replyCacheKey("ollama:tinyllama:latest", "hello", fixedNow)

	assert.True(t, strings.HasPrefix(a, replyCachePrefix))
	assert.Equal(t, a, replyCacheKey("ollama:tinyllama:latest", "hello", fixedNow.Add(time.Hour)))
	assert.NotEqual(t, a, replyCacheKey("gemini:gemini-2.0-flash", "hello", fixedNow))
	assert.NotEqual(t, a, replyCacheKey("ollama:tinyllama:latest", "hello", fixedNow.AddDate(0, 0, 1)))
}
