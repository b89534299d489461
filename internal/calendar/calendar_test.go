package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefboard/briefboard/internal/kvstore"
)

func newTestBook(t *testing.T) (*Book, *kvstore.Memory) {
	t.Helper()

	store := kvstore.NewMemory()
	b := New(store)
	b.now = func() time.Time { return time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC) }

	return b, store
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	b, store := newTestBook(t)

	inputs := []Input{
		{Title: "Investor call", Date: "2026-02-06", Time: "14:00"},
		{Title: "Team standup", Date: "2026-02-05", Time: "9:30"},
		{Title: "Networking lunch", Date: "2026-02-05", Time: "12:00", Description: "  downtown  "},
	}

	for _, in := range inputs {
		_, err := b.Create(ctx, "42", in)
		require.NoError(t, err)
	}

	events, err := b.List(ctx, "42", "")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "Team standup", events[0].Title)
	assert.Equal(t, "09:30", events[0].Time)
	assert.Equal(t, "Networking lunch", events[1].Title)
	assert.Equal(t, "downtown", events[1].Description)
	assert.Equal(t, "Investor call", events[2].Title)

	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}

	day, err := b.List(ctx, "42", "2026-02-05")
	require.NoError(t, err)
	assert.Len(t, day, 2)

	// other scopes see nothing
	other, err := b.List(ctx, "43", "")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, ok, err := store.Get(ctx, "calendar_events_42")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateValidation(t *testing.T) {
	b, _ := newTestBook(t)

	tests := []struct {
		name string
		in   Input
	}{
		{"missing title", Input{Date: "2026-02-05"}},
		{"blank title", Input{Title: "   ", Date: "2026-02-05"}},
		{"missing date", Input{Title: "x"}},
		{"bad date", Input{Title: "x", Date: "Feb 5"}},
		{"bad time", Input{Title: "x", Date: "2026-02-05", Time: "noon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Create(context.Background(), "", tt.in)
			require.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)

	created, err := b.Create(ctx, "", Input{Title: "Pitch", Date: "2026-02-10"})
	require.NoError(t, err)

	got, err := b.Get(ctx, "", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := b.Update(ctx, "", created.ID, Input{Title: "Pitch v2", Date: "2026-02-11", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Pitch v2", updated.Title)

	_, err = b.Update(ctx, "", created.ID, Input{Title: "", Date: "2026-02-11"})
	require.ErrorIs(t, err, ErrInvalidEvent)

	require.NoError(t, b.Delete(ctx, "", created.ID))

	_, err = b.Get(ctx, "", created.ID)
	require.ErrorIs(t, err, ErrEventNotFound)
	require.ErrorIs(t, b.Delete(ctx, "", created.ID), ErrEventNotFound)

	_, err = b.Update(ctx, "", "missing", Input{Title: "x", Date: "2026-02-11"})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestDates(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)

	for _, d := range []string{"2026-03-01", "2026-02-05", "2026-03-01"} {
		_, err := b.Create(ctx, "7", Input{Title: "e", Date: d})
		require.NoError(t, err)
	}

	dates, err := b.Dates(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-05", "2026-03-01"}, dates)
}

func TestMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	b, store := newTestBook(t)

	require.NoError(t, store.Set(ctx, "calendar_events", "[{"))

	events, err := b.List(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNilStore(t *testing.T) {
	b := New(nil)

	_, err := b.Create(context.Background(), "", Input{Title: "x", Date: "2026-02-05"})
	require.NoError(t, err)

	events, err := b.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, events)
}
