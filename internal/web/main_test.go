package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefboard/briefboard/internal/briefboard"
	"github.com/briefboard/briefboard/internal/calendar"
	"github.com/briefboard/briefboard/internal/config"
	"github.com/briefboard/briefboard/internal/kvstore"
	"github.com/briefboard/briefboard/internal/web"
	"github.com/briefboard/briefboard/internal/web/handler"
	briefboardhandler "github.com/briefboard/briefboard/internal/web/handler/briefboard"
)

// Thursday 2026-02-05 09:00 UTC
var thursday = time.Date(2026, time.February, 5, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

type failingStore struct{}

func (failingStore) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

func (failingStore) Set(_ context.Context, _, _ string) error {
	return errors.New("disk full")
}

type testServer struct {
	web   *web.Service
	store kvstore.Store
	now   time.Time
}

func newTestServer(t *testing.T, store kvstore.Store) *testServer {
	t.Helper()

	ts := &testServer{store: store, now: thursday}

	cfg := &config.Config{
		Title: "briefboard test",
		Webserver: config.Webserver{
			Port:          8080,
			URL:           "http://localhost:8080",
			CheckAliveURI: "/checkalive",
		},
	}

	svc := briefboard.New(store, briefboard.Config{
		Defaults: briefboard.DefaultSettings(),
		Location: time.UTC,
		Clock:    briefboard.ClockFunc(func() time.Time { return ts.now }),
	})

	ts.web = web.New(cfg, svc, calendar.New(store))

	return ts
}

func (ts *testServer) do(t *testing.T, method, target, userID, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := ts.web.App.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

func TestCheckAlive(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	code, body := ts.do(t, fiber.MethodGet, "/checkalive", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(body))

	ts.web.SetAlive(false)
	assert.False(t, ts.web.Alive())

	code, _ = ts.do(t, fiber.MethodGet, "/checkalive", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	code, _ := ts.do(t, fiber.MethodGet, "/api/briefboard/visibility", "", "")
	require.Equal(t, http.StatusOK, code)

	code, body := ts.do(t, fiber.MethodGet, web.MetricsPath, "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "briefboard_decisions_total")
}

func TestSettings(t *testing.T) {
	store := kvstore.NewMemory()
	ts := newTestServer(t, store)

	code, body := ts.do(t, fiber.MethodGet, "/api/briefboard/settings", "42", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t,
		`{"frequency":"daily","allowedDays":[],"allowedTimes":[],"specificDates":[],"briefingNotifications":true}`,
		string(body))

	_, ok, err := store.Get(context.Background(), "briefboard_settings_42")
	require.NoError(t, err)
	assert.True(t, ok, "defaults are stored on first load")

	code, body = ts.do(t, fiber.MethodPut, "/api/briefboard/settings", "42",
		`{"frequency":"weekly","allowedDays":["Mon","Thu"],"allowedTimes":["09:00"],"briefingNotifications":false}`)
	require.Equal(t, http.StatusOK, code, string(body))

	var saved briefboard.Settings
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.Equal(t, briefboard.FrequencyWeekly, saved.Frequency)
	assert.Equal(t, []string{"Mon", "Thu"}, saved.AllowedDays)
	assert.Equal(t, []string{}, saved.SpecificDates)
	assert.False(t, saved.BriefingNotifications)

	// the global scope is untouched
	code, body = ts.do(t, fiber.MethodGet, "/api/briefboard/settings", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"frequency":"daily"`)
}

func TestPutSettingsPartialBody(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	code, body := ts.do(t, fiber.MethodPut, "/api/briefboard/settings", "42", `{"frequency":"weekly"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.JSONEq(t,
		`{"frequency":"weekly","allowedDays":[],"allowedTimes":[],"specificDates":[],"briefingNotifications":true}`,
		string(body))

	code, body = ts.do(t, fiber.MethodGet, "/api/briefboard/settings", "42", "")
	require.Equal(t, http.StatusOK, code)

	var saved briefboard.Settings
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.Equal(t, briefboard.FrequencyWeekly, saved.Frequency)
	assert.True(t, saved.BriefingNotifications)
}

func TestPutSettingsValidation(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	tests := []struct {
		name string
		body string
		tag  string
	}{
		{name: "unknown frequency", body: `{"frequency":"yearly"}`, tag: "oneof"},
		{name: "bad weekday", body: `{"allowedDays":["Monday"]}`, tag: "oneof"},
		{name: "bad time", body: `{"allowedTimes":["9am"]}`, tag: "datetime"},
		{name: "bad date", body: `{"specificDates":["05.02.2026"]}`, tag: "datetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ts.do(t, fiber.MethodPut, "/api/briefboard/settings", "", tt.body)
			require.Equal(t, http.StatusBadRequest, code)

			var errs []handler.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errs))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.tag, errs[0].Tag)
		})
	}

	code, body := ts.do(t, fiber.MethodPut, "/api/briefboard/settings", "", `{"frequency":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), `"success":false`)
}

func TestVisibilityAndVisit(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	var vis briefboardhandler.Visibility

	code, body := ts.do(t, fiber.MethodGet, "/api/briefboard/visibility", "7", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &vis))
	assert.True(t, vis.Show)
	assert.Equal(t, briefboard.GateFirstVisit, vis.Gate)
	assert.Nil(t, vis.LastSeen)

	var visit briefboardhandler.Visit

	code, body = ts.do(t, fiber.MethodPost, "/api/briefboard/visit", "7", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &visit))
	assert.True(t, visit.Persisted)
	assert.Empty(t, visit.Warning)
	assert.True(t, thursday.Equal(visit.LastSeen))

	code, body = ts.do(t, fiber.MethodGet, "/api/briefboard/visibility", "7", "")
	require.Equal(t, http.StatusOK, code)

	vis = briefboardhandler.Visibility{}
	require.NoError(t, json.Unmarshal(body, &vis))
	assert.False(t, vis.Show)
	assert.Equal(t, briefboard.GateIntervalPending, vis.Gate)
	assert.InDelta(t, 1440, vis.RequiredMinutes, 0.001)
	require.NotNil(t, vis.LastSeen)
	assert.True(t, thursday.Equal(*vis.LastSeen))

	// a day later the prompt is due again
	ts.now = thursday.Add(24 * time.Hour)

	vis = briefboardhandler.Visibility{}
	_, body = ts.do(t, fiber.MethodGet, "/api/briefboard/visibility", "7", "")
	require.NoError(t, json.Unmarshal(body, &vis))
	assert.True(t, vis.Show)
	assert.Equal(t, briefboard.GateInterval, vis.Gate)
}

func TestVisitNotPersisted(t *testing.T) {
	ts := newTestServer(t, failingStore{})

	var visit briefboardhandler.Visit

	code, body := ts.do(t, fiber.MethodPost, "/api/briefboard/visit", "", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &visit))
	assert.False(t, visit.Persisted)
	assert.Contains(t, visit.Warning, "disk full")
}

func TestInvalidUserID(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	code, body := ts.do(t, fiber.MethodGet, "/api/briefboard/settings", "../../etc", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"success":false,"message":"invalid user id"}`, string(body))

	// the query parameter is used without header
	code, _ = ts.do(t, fiber.MethodGet, "/api/briefboard/settings?user=alice@example.com", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestCalendarEvents(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	var created calendar.Event

	code, body := ts.do(t, fiber.MethodPost, "/api/calendar/events", "7",
		`{"title":"Standup","date":"2026-02-06","time":"9:30"}`)
	require.Equal(t, http.StatusCreated, code, string(body))
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "09:30", created.Time)

	code, _ = ts.do(t, fiber.MethodPost, "/api/calendar/events", "7",
		`{"title":"Review","date":"2026-02-05"}`)
	require.Equal(t, http.StatusCreated, code)

	var events []calendar.Event

	code, body = ts.do(t, fiber.MethodGet, "/api/calendar/events", "7", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 2)
	assert.Equal(t, "Review", events[0].Title)

	code, body = ts.do(t, fiber.MethodGet, "/api/calendar/events?date=2026-02-06", "7", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)

	// other scopes see nothing
	code, body = ts.do(t, fiber.MethodGet, "/api/calendar/events", "8", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))

	var updated calendar.Event

	code, body = ts.do(t, fiber.MethodPut, "/api/calendar/events/"+created.ID, "7",
		`{"title":"Standup moved","date":"2026-02-07","time":"10:00"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Standup moved", updated.Title)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	code, body = ts.do(t, fiber.MethodGet, "/api/calendar/events/"+created.ID, "7", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "2026-02-07")

	code, _ = ts.do(t, fiber.MethodDelete, "/api/calendar/events/"+created.ID, "7", "")
	assert.Equal(t, http.StatusNoContent, code)

	code, body = ts.do(t, fiber.MethodGet, "/api/calendar/events/"+created.ID, "7", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), `"success":false`)

	code, _ = ts.do(t, fiber.MethodDelete, "/api/calendar/events/"+created.ID, "7", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCalendarValidation(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	code, body := ts.do(t, fiber.MethodPost, "/api/calendar/events", "", `{"date":"2026-02-31"}`)
	require.Equal(t, http.StatusBadRequest, code)

	var errs []handler.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errs))

	tags := make([]string, 0, len(errs))
	for _, e := range errs {
		tags = append(tags, e.Tag)
	}

	assert.ElementsMatch(t, []string{"required", "datetime"}, tags)

	code, _ = ts.do(t, fiber.MethodPut, "/api/calendar/events/missing", "", `{"title":"x","date":"2026-02-05"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSyncDates(t *testing.T) {
	ts := newTestServer(t, kvstore.NewMemory())

	for _, date := range []string{"2026-02-10", "2026-02-05", "2026-02-10"} {
		code, _ := ts.do(t, fiber.MethodPost, "/api/calendar/events", "7",
			`{"title":"Meeting","date":"`+date+`"}`)
		require.Equal(t, http.StatusCreated, code)
	}

	var settings briefboard.Settings

	code, body := ts.do(t, fiber.MethodPost, "/api/briefboard/settings/sync-dates", "7", "")
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &settings))
	assert.Equal(t, []string{"2026-02-05", "2026-02-10"}, settings.SpecificDates)

	// today (2026-02-05) is a calendar day, so the prompt may show
	var vis briefboardhandler.Visibility

	_, body = ts.do(t, fiber.MethodGet, "/api/briefboard/visibility", "7", "")
	require.NoError(t, json.Unmarshal(body, &vis))
	assert.True(t, vis.Show)

	ts.now = thursday.Add(24 * time.Hour)

	vis = briefboardhandler.Visibility{}
	_, body = ts.do(t, fiber.MethodGet, "/api/briefboard/visibility", "7", "")
	require.NoError(t, json.Unmarshal(body, &vis))
	assert.False(t, vis.Show)
	assert.Equal(t, briefboard.GateSpecificDate, vis.Gate)
}
