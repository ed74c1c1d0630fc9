package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/alexanderramin/worklog/internal/testutil"
	"go.uber.org/zap"
)

var defaultBaseline = stats.Baseline{WorkHours: 8, DistanceKm: 15}

type testEnv struct {
	db      *sql.DB
	entries *repository.SQLiteEntryRepo
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{db: database, entries: repository.NewSQLiteEntryRepo(database)}
}

func (env testEnv) entryService(observers ...UseCaseObserver) EntryService {
	return NewEntryService(env.entries, testutil.NewTestUoW(env.db), defaultBaseline, zap.NewNop(), observers...)
}

// seed stores entries directly, bypassing service validation.
func (env testEnv) seed(t *testing.T, entries ...*domain.LogbookEntry) {
	t.Helper()
	for _, e := range entries {
		if err := env.entries.Create(context.Background(), e); err != nil {
			t.Fatalf("seeding entry %s: %v", e.ID, err)
		}
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}
