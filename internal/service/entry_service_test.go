package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEntryService_Create(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()

	e := testutil.NewTestEntry(testutil.Day(2024, time.March, 4), testutil.WithEntryID(""))
	e.Date = e.Date.Add(15 * time.Hour)
	require.NoError(t, svc.Create(ctx, e))

	assert.NotEmpty(t, e.ID)
	assert.True(t, e.Date.Equal(testutil.Day(2024, time.March, 4)), "date is truncated to the civil day")

	got, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.DistanceKm, got.DistanceKm)
}

func TestEntryService_Create_RejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()
	day := testutil.Day(2024, time.March, 4)

	tests := []struct {
		name  string
		opts  []testutil.EntryOption
		field string
	}{
		{"end equals start", []testutil.EntryOption{testutil.WithShift("08:00", "08:00")}, "end_time"},
		{"end before start", []testutil.EntryOption{testutil.WithShift("16:00", "08:00")}, "end_time"},
		{"negative distance", []testutil.EntryOption{testutil.WithDistance(-1)}, "distance_km"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, testutil.NewTestEntry(day, tt.opts...))
			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	list, err := env.entries.ListRange(ctx, "", day, day)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryService_Create_DuplicateDay(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()
	day := testutil.Day(2024, time.March, 4)

	require.NoError(t, svc.Create(ctx, testutil.NewTestEntry(day)))
	err := svc.Create(ctx, testutil.NewTestEntry(day, testutil.WithShift("18:00", "19:00")))
	require.ErrorIs(t, err, repository.ErrDuplicateDay)
	assert.Contains(t, err.Error(), "04.03.2024")

	require.NoError(t, svc.Create(ctx, testutil.NewTestEntry(day, testutil.WithOwner("colleague"))))
}

func TestEntryService_Create_RollbackOnInsertFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day := testutil.Day(2024, time.March, 4)

	// The duplicate check is a read, so ExecContext #1 is the insert.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 1,
		Err:    fmt.Errorf("injected insert failure"),
	}
	svc := NewEntryService(env.entries, failUoW, defaultBaseline, nil)

	err := svc.Create(ctx, testutil.NewTestEntry(day))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")

	list, err := env.entries.ListRange(ctx, "", day, day)
	require.NoError(t, err)
	assert.Empty(t, list, "no entry should exist after rollback")
}

func TestEntryService_Update(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()

	e := testutil.NewTestEntry(testutil.Day(2024, time.March, 5))
	require.NoError(t, svc.Create(ctx, e))

	edit := domain.NewDraft(*e)
	edit.Update(func(v *domain.LogbookEntry) {
		v.DistanceKm = 33
		v.CreatedBy = "hijacker"
	})
	require.NoError(t, edit.Commit(func(v domain.LogbookEntry) error {
		return svc.Update(ctx, &v)
	}))
	assert.False(t, edit.IsDirty())

	got, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.0, got.DistanceKm)
	assert.Equal(t, testutil.DefaultOwner, got.CreatedBy, "owner is fixed at capture")
}

func TestEntryService_Update_InvalidKeepsDraftDirty(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()

	e := testutil.NewTestEntry(testutil.Day(2024, time.March, 5))
	require.NoError(t, svc.Create(ctx, e))

	edit := domain.NewDraft(*e)
	edit.Update(func(v *domain.LogbookEntry) { v.EndTime = v.StartTime.Add(-time.Hour) })
	err := edit.Commit(func(v domain.LogbookEntry) error { return svc.Update(ctx, &v) })
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, edit.IsDirty())

	got, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.EndTime.Equal(e.EndTime))
}

func TestEntryService_Update_Missing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()

	err := svc.Update(context.Background(), testutil.NewTestEntry(testutil.Day(2024, time.March, 5)))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryService_List_IncludesMetrics(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()

	e := testutil.NewTestEntry(testutil.Day(2024, time.March, 1),
		testutil.WithShift("08:00", "16:30"), testutil.WithDistance(20))
	require.NoError(t, svc.Create(ctx, e))

	views, err := svc.List(ctx, app.ListEntriesRequest{
		Owner: testutil.DefaultOwner,
		From:  testutil.Day(2024, time.March, 1),
		To:    testutil.Day(2024, time.March, 31),
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.InDelta(t, 8.5, views[0].Metrics.TotalWorkTime, 1e-9)
	assert.InDelta(t, 0.5, views[0].Metrics.TimeDifference, 1e-9)
	assert.InDelta(t, 5.0, views[0].Metrics.KmDifference, 1e-9)
}

func TestEntryService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := env.entryService()
	ctx := context.Background()

	e := testutil.NewTestEntry(testutil.Day(2024, time.March, 6))
	require.NoError(t, svc.Create(ctx, e))

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err := svc.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryService_Delete_MissingIDIsNoop(t *testing.T) {
	env := newTestEnv(t)
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &recordingObserver{}
	svc := NewEntryService(env.entries, testutil.NewTestUoW(env.db), defaultBaseline, zap.New(core), rec)

	require.NoError(t, svc.Delete(context.Background(), "missing-id"))
	require.NoError(t, svc.Delete(context.Background(), "missing-id"))

	assert.Equal(t, 2, logs.FilterMessage("delete of unknown entry ignored").Len())
	assert.True(t, rec.last().Success)
	assert.Equal(t, "delete-entry", rec.last().Name)
}
