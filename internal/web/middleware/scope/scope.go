// Package scope resolves the user scope of an API request.
//
// The scope is read from the X-User-ID header, falling back to the "user"
// query parameter. An empty scope selects the global default scope. The
// caller is trusted; the id only selects which stored settings apply.
//
// Usage:
//
//	api := app.Group("/api", scope.Middleware)
//	userID := scope.UserID(c)
package scope

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"

	accesslog "github.com/briefboard/briefboard/internal/logger/adapter/fiber"
)

const (
	// HeaderUserID is the request header carrying the user id.
	HeaderUserID = accesslog.HeaderUserID

	// QueryUser is the query parameter used when the header is missing.
	QueryUser = "user"

	localsKey = "briefboardUserID"
)

var validUserID = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,128}$`) //nolint:gochecknoglobals

// Middleware stores the user id of the request in fiber.Locals.
// Ids outside [A-Za-z0-9._@-]{1,128} are rejected with 400.
func Middleware(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Get(HeaderUserID))
	if id == "" {
		id = strings.TrimSpace(c.Query(QueryUser))
	}

	if id != "" && !validUserID.MatchString(id) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	c.Locals(localsKey, id)

	return c.Next()
}

// UserID returns the scope resolved by Middleware, empty for the global scope.
func UserID(c fiber.Ctx) string {
	id, _ := c.Locals(localsKey).(string)

	return id
}
