package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_CommitAndDiscard(t *testing.T) {
	d := NewDraft(LogbookEntry{ID: "e1", DistanceKm: 10})
	assert.False(t, d.IsDirty())

	d.Update(func(e *LogbookEntry) { e.DistanceKm = 25 })
	assert.True(t, d.IsDirty())
	assert.Equal(t, 25.0, d.Value().DistanceKm)

	d.Discard()
	assert.False(t, d.IsDirty())
	assert.Equal(t, 10.0, d.Value().DistanceKm)

	var saved LogbookEntry
	d.Update(func(e *LogbookEntry) { e.Note = "site visit" })
	require.NoError(t, d.Commit(func(e LogbookEntry) error {
		saved = e
		return nil
	}))
	assert.False(t, d.IsDirty())
	assert.Equal(t, "site visit", saved.Note)

	// the committed value is the new baseline
	d.Update(func(e *LogbookEntry) { e.Note = "" })
	d.Discard()
	assert.Equal(t, "site visit", d.Value().Note)
}

func TestDraft_FailedCommitStaysDirty(t *testing.T) {
	d := NewDraft(LogbookEntry{ID: "e1"})
	d.Update(func(e *LogbookEntry) { e.Note = "x" })

	boom := errors.New("boom")
	err := d.Commit(func(LogbookEntry) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, d.IsDirty())
	assert.Equal(t, "x", d.Value().Note)
}

func TestDraft_CommitCleanIsNoop(t *testing.T) {
	d := NewDraft(LogbookEntry{ID: "e1"})
	called := false
	require.NoError(t, d.Commit(func(LogbookEntry) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}
