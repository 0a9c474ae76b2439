package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/history"
	"github.com/cloud-ru/fincalc-go/internal/identity"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/internal/rates"
	"github.com/cloud-ru/fincalc-go/internal/tools"
	"github.com/cloud-ru/fincalc-go/internal/validators"
)

// ProblemDetails ответ об ошибке в формате RFC 7807
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Типы ошибок
const (
	ErrorTypeValidation   = "https://fincalc.app/errors/validation"
	ErrorTypeNotFound     = "https://fincalc.app/errors/not-found"
	ErrorTypeUnauthorized = "https://fincalc.app/errors/unauthorized"
	ErrorTypeRateLimit    = "https://fincalc.app/errors/rate-limit"
	ErrorTypeUnavailable  = "https://fincalc.app/errors/unavailable"
	ErrorTypeInternal     = "https://fincalc.app/errors/internal"
)

func problem(c echo.Context, status int, typ, title, detail string) error {
	return c.JSON(status, ProblemDetails{
		Type:     typ,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewValidationError ответ 400 об ошибке валидации
func NewValidationError(c echo.Context, detail string) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail)
}

// NewNotFoundError ответ 404
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail)
}

// NewUnauthorizedError ответ 401
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail)
}

// NewUnavailableError ответ 503, хранилище недоступно
func NewUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Service Unavailable", detail)
}

// NewInternalError ответ 500
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail)
}

// respondError сопоставляет доменные ошибки HTTP-статусам
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, identity.ErrUnauthenticated):
		return NewUnauthorizedError(c, "Please log in to save calculations")
	case errors.Is(err, history.ErrPersistenceUnavailable):
		return NewUnavailableError(c, "calculation history is temporarily unavailable")
	case errors.Is(err, tools.ErrUnknownTool),
		errors.Is(err, history.ErrUnknownFamily):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, rates.ErrNoRateData):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, validators.ErrInvalidInput),
		errors.Is(err, presets.ErrUnknownCategory),
		errors.Is(err, calculations.ErrUnknownCompounding),
		errors.Is(err, calculations.ErrNotComputed),
		errors.Is(err, history.ErrInvalidRecord):
		return NewValidationError(c, err.Error())
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
	return NewInternalError(c, "internal error")
}

// httpErrorHandler отдаёт ошибки echo (неизвестный маршрут, метод, тело запроса) в формате RFC 7807
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok {
			detail = msg
		}
		typ := ErrorTypeInternal
		switch he.Code {
		case http.StatusBadRequest:
			typ = ErrorTypeValidation
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			typ = ErrorTypeNotFound
		case http.StatusUnauthorized:
			typ = ErrorTypeUnauthorized
		case http.StatusTooManyRequests:
			typ = ErrorTypeRateLimit
		}
		_ = problem(c, he.Code, typ, http.StatusText(he.Code), detail)
		return
	}

	_ = respondError(c, err)
}
