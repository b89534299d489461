// Package calendar keeps the calendar events of the dashboard. The events of
// a scope are stored as one JSON snapshot in a kvstore.Store.
package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/briefboard/briefboard/internal/kvstore"
)

const (
	// EventsKeyPrefix prefixes the persisted event snapshot of a scope.
	EventsKeyPrefix = "calendar_events"

	clockLayout = "15:04"
)

var (
	// ErrEventNotFound is returned when no event has the requested id.
	ErrEventNotFound = errors.New("calendar event not found")

	// ErrInvalidEvent is returned when an event fails validation.
	ErrInvalidEvent = errors.New("invalid calendar event")

	validate = validator.New() //nolint:gochecknoglobals
)

// Event is a single calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"                 validate:"required,max=200"`
	Date        string    `json:"date"                  validate:"required,datetime=2006-01-02"`
	Time        string    `json:"time,omitempty"        validate:"omitempty,datetime=15:04"`
	Description string    `json:"description,omitempty" validate:"max=2000"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input holds the user editable fields of an Event.
type Input struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Book manages the events of all scopes.
type Book struct {
	// mu serializes read-modify-write cycles of the snapshots
	mu    sync.Mutex
	store kvstore.Store
	now   func() time.Time
}

// New creates a Book on top of store. A nil store keeps nothing.
func New(store kvstore.Store) *Book {
	if store == nil {
		store = kvstore.Nop{}
	}

	return &Book{store: store, now: time.Now}
}

// List returns the events of a scope ordered by date and time.
// A non-empty date restricts the result to that day.
func (b *Book) List(ctx context.Context, userID, date string) ([]Event, error) {
	events, err := b.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if date != "" {
		events = slices.DeleteFunc(events, func(e Event) bool { return e.Date != date })
	}

	sortEvents(events)

	return events, nil
}

// Get returns a single event.
func (b *Book) Get(ctx context.Context, userID, id string) (Event, error) {
	events, err := b.load(ctx, userID)
	if err != nil {
		return Event{}, err
	}

	i := slices.IndexFunc(events, func(e Event) bool { return e.ID == id })
	if i < 0 {
		return Event{}, ErrEventNotFound
	}

	return events[i], nil
}

// Create validates and stores a new event.
func (b *Book) Create(ctx context.Context, userID string, in Input) (Event, error) {
	now := b.now().UTC()

	e := in.apply(Event{
		ID:        uuid.NewString(),
		CreatedAt: now,
	})
	e.UpdatedAt = now

	if err := validate.Struct(e); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	events, err := b.load(ctx, userID)
	if err != nil {
		return Event{}, err
	}

	if err := b.save(ctx, userID, append(events, e)); err != nil {
		return Event{}, err
	}

	log.Debug().Str("user", userID).Str("id", e.ID).Str("date", e.Date).Msg("calendar event created")

	return e, nil
}

// Update replaces the editable fields of an event.
func (b *Book) Update(ctx context.Context, userID, id string, in Input) (Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	events, err := b.load(ctx, userID)
	if err != nil {
		return Event{}, err
	}

	i := slices.IndexFunc(events, func(e Event) bool { return e.ID == id })
	if i < 0 {
		return Event{}, ErrEventNotFound
	}

	e := in.apply(events[i])
	e.UpdatedAt = b.now().UTC()

	if err := validate.Struct(e); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	events[i] = e

	if err := b.save(ctx, userID, events); err != nil {
		return Event{}, err
	}

	return e, nil
}

// Delete removes an event.
func (b *Book) Delete(ctx context.Context, userID, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	events, err := b.load(ctx, userID)
	if err != nil {
		return err
	}

	n := len(events)

	events = slices.DeleteFunc(events, func(e Event) bool { return e.ID == id })
	if len(events) == n {
		return ErrEventNotFound
	}

	return b.save(ctx, userID, events)
}

// Dates returns the distinct days that have at least one event, in order.
func (b *Book) Dates(ctx context.Context, userID string) ([]string, error) {
	events, err := b.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(events))
	for _, e := range events {
		dates = append(dates, e.Date)
	}

	slices.Sort(dates)

	return slices.Compact(dates), nil
}

func (b *Book) load(ctx context.Context, userID string) ([]Event, error) {
	key := kvstore.Key(EventsKeyPrefix, userID)

	raw, ok, err := b.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	if !ok {
		return []Event{}, nil
	}

	var events []Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed calendar snapshot, starting empty")
		return []Event{}, nil
	}

	return events, nil
}

func (b *Book) save(ctx context.Context, userID string, events []Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}

	if err := b.store.Set(ctx, kvstore.Key(EventsKeyPrefix, userID), string(data)); err != nil {
		return fmt.Errorf("save calendar: %w", err)
	}

	return nil
}

func (in Input) apply(e Event) Event {
	e.Title = strings.TrimSpace(in.Title)
	e.Date = strings.TrimSpace(in.Date)
	e.Time = strings.TrimSpace(in.Time)
	e.Description = strings.TrimSpace(in.Description)

	// zero pad, so times sort lexically
	if t, err := time.Parse(clockLayout, e.Time); err == nil {
		e.Time = t.Format(clockLayout)
	}

	return e
}

func sortEvents(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}

		return strings.Compare(a.Time, b.Time)
	})
}
