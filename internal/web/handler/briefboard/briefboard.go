// Package briefboard provides the JSON handlers of the briefboard prompt:
// settings, visibility decision and visit recording of the requesting scope.
//
// Routes:
//
//	GET  /api/briefboard/settings             - settings, defaults are stored on first load
//	PUT  /api/briefboard/settings             - validate and save settings
//	POST /api/briefboard/settings/sync-dates  - copy calendar days into specificDates
//	GET  /api/briefboard/visibility           - should the prompt be shown now
//	POST /api/briefboard/visit                - record that the prompt was seen
package briefboard

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	domain "github.com/briefboard/briefboard/internal/briefboard"
	"github.com/briefboard/briefboard/internal/calendar"
	"github.com/briefboard/briefboard/internal/web/handler"
	"github.com/briefboard/briefboard/internal/web/middleware/scope"
)

const (
	// Path is the route prefix of the briefboard handlers, relative to the API group.
	Path = "/briefboard"

	// SettingsPath serves the settings of the scope.
	SettingsPath = Path + "/settings"

	// SyncDatesPath copies the calendar days into the settings.
	SyncDatesPath = SettingsPath + "/sync-dates"

	// VisibilityPath serves the visibility decision.
	VisibilityPath = Path + "/visibility"

	// VisitPath records a visit.
	VisitPath = Path + "/visit"
)

// Visibility is the response of VisibilityPath.
type Visibility struct {
	domain.Decision
	LastSeen *time.Time `json:"lastSeen"`
}

// Visit is the response of VisitPath.
type Visit struct {
	LastSeen  time.Time `json:"lastSeen"`
	Persisted bool      `json:"persisted"`
	Warning   string    `json:"warning,omitempty"`
}

// Service is the briefboard handler service.
type Service struct {
	briefboard *domain.Service
	book       *calendar.Book
}

// Init registers the briefboard routes on router.
func (s *Service) Init(router fiber.Router, svc *domain.Service, book *calendar.Book) {
	if router == nil || svc == nil || book == nil {
		log.Fatal().Msg(handler.ErrNilServiceFatalLogMsg)
		return
	}

	s.briefboard = svc
	s.book = book

	router.Get(SettingsPath, s.GetSettings)
	router.Put(SettingsPath, s.PutSettings)
	router.Post(SyncDatesPath, s.SyncDates)
	router.Get(VisibilityPath, s.GetVisibility)
	router.Post(VisitPath, s.PostVisit)
}

// GetSettings returns the settings of the scope.
func (s *Service) GetSettings(c fiber.Ctx) error {
	return c.JSON(s.briefboard.LoadSettings(c.Context(), scope.UserID(c)))
}

// PutSettings validates and stores the settings of the scope. Fields missing
// in the body take the default value.
func (s *Service) PutSettings(c fiber.Ctx) error {
	var (
		userID = scope.UserID(c)
		update domain.SettingsUpdate
	)

	if err := c.Bind().Body(&update); err != nil {
		log.Debug().Err(err).Str("user", userID).Msg("failed to parse briefboard settings")

		return fiber.NewError(fiber.StatusBadRequest, "invalid briefboard settings body")
	}

	settings, err := s.briefboard.UpdateSettings(c.Context(), userID, update)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSettings) {
			return handler.BadRequest(c, err)
		}

		return err
	}

	return c.JSON(settings)
}

// SyncDates replaces the specific dates of the scope with the days of its
// calendar events.
func (s *Service) SyncDates(c fiber.Ctx) error {
	userID := scope.UserID(c)

	dates, err := s.book.Dates(c.Context(), userID)
	if err != nil {
		return err
	}

	settings := s.briefboard.LoadSettings(c.Context(), userID)
	settings.SpecificDates = dates

	if err := s.briefboard.SaveSettings(c.Context(), userID, settings); err != nil {
		return err
	}

	log.Info().Str("user", userID).Int("dates", len(dates)).Msg("briefboard dates synced from calendar")

	return c.JSON(settings)
}

// GetVisibility evaluates whether the prompt should be shown now.
func (s *Service) GetVisibility(c fiber.Ctx) error {
	userID := scope.UserID(c)

	return c.JSON(Visibility{
		Decision: s.briefboard.ShouldShow(c.Context(), userID),
		LastSeen: s.briefboard.LastSeen(c.Context(), userID),
	})
}

// PostVisit records that the prompt was seen now. A storage failure is not an
// error for the client, it is reported as a warning.
func (s *Service) PostVisit(c fiber.Ctx) error {
	at, err := s.briefboard.RecordVisit(c.Context(), scope.UserID(c))

	resp := Visit{LastSeen: at, Persisted: err == nil}
	if err != nil {
		resp.Warning = err.Error()
	}

	return c.JSON(resp)
}
