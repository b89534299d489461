// Package handler holds what the JSON handlers share: route constants, the
// error handler and the rendering of validation errors.
package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type (
	// ErrorResponse represents a validation error response.
	ErrorResponse struct {
		FailedField string `json:"failedField"`
		Tag         string `json:"tag"`
		Value       any    `json:"value"`
	}

	// GlobalErrorHandlerResp represents a global error response structure.
	GlobalErrorHandlerResp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

// ValidationErrors flattens the validator errors wrapped in err. It returns nil
// when err carries none.
func ValidationErrors(err error) []ErrorResponse {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	validationErrors := make([]ErrorResponse, 0, len(errs))

	for _, fe := range errs {
		var elem ErrorResponse

		elem.FailedField = fe.Namespace() // Export struct field path
		elem.Tag = fe.Tag()               // Export struct tag
		elem.Value = fe.Value()           // Export field value

		validationErrors = append(validationErrors, elem)
	}

	return validationErrors
}

// BadRequest answers 400 with the validation errors of err, or with err's message
// if it carries none.
func BadRequest(c fiber.Ctx, err error) error {
	if errs := ValidationErrors(err); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// ErrorHandler renders errors as GlobalErrorHandlerResp. Errors that are not a
// *fiber.Error are logged and answered with a generic 500.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(GlobalErrorHandlerResp{
		Success: false,
		Message: message,
	})
}
