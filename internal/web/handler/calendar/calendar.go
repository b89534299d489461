// Package calendar provides the JSON handlers of the calendar event book.
package calendar

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	domain "github.com/briefboard/briefboard/internal/calendar"
	"github.com/briefboard/briefboard/internal/web/handler"
	"github.com/briefboard/briefboard/internal/web/middleware/scope"
)

const (
	// Path is the collection route, relative to the API group.
	Path = "/calendar/events"

	// EventPath is the route of a single event.
	EventPath = Path + "/:id"
)

// Service is the calendar handler service.
type Service struct {
	book *domain.Book
}

// Init registers the calendar routes on router.
func (s *Service) Init(router fiber.Router, book *domain.Book) {
	if router == nil || book == nil {
		log.Fatal().Msg(handler.ErrNilServiceFatalLogMsg)
		return
	}

	s.book = book

	router.Get(Path, s.List)
	router.Post(Path, s.Create)
	router.Get(EventPath, s.Get)
	router.Put(EventPath, s.Update)
	router.Delete(EventPath, s.Delete)
}

// List returns the events of the scope, optionally of a single day (?date=YYYY-MM-DD).
func (s *Service) List(c fiber.Ctx) error {
	events, err := s.book.List(c.Context(), scope.UserID(c), c.Query("date"))
	if err != nil {
		return err
	}

	return c.JSON(events)
}

// Get returns a single event.
func (s *Service) Get(c fiber.Ctx) error {
	event, err := s.book.Get(c.Context(), scope.UserID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(event)
}

// Create stores a new event.
func (s *Service) Create(c fiber.Ctx) error {
	var in domain.Input
	if err := c.Bind().Body(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid calendar event body")
	}

	event, err := s.book.Create(c.Context(), scope.UserID(c), in)
	if err != nil {
		return mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// Update replaces the editable fields of an event.
func (s *Service) Update(c fiber.Ctx) error {
	var in domain.Input
	if err := c.Bind().Body(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid calendar event body")
	}

	event, err := s.book.Update(c.Context(), scope.UserID(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(event)
}

// Delete removes an event.
func (s *Service) Delete(c fiber.Ctx) error {
	if err := s.book.Delete(c.Context(), scope.UserID(c), c.Params("id")); err != nil {
		return mapError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func mapError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidEvent):
		return handler.BadRequest(c, err)
	default:
		return err
	}
}
