// Package handler contains the HTTP handlers of the query front end.
package handler

import (
	"log/slog"
	"net/http"

	"booktrader/internal/delivery/http/response"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// queryRequest is one batch of named operations.
type queryRequest struct {
	Operations []usecase.Operation `json:"operations" validate:"required,min=1,dive"`
}

// operationOutcome is the per-operation slot of a batch response. Data is
// present on success (and may be null, e.g. a signed-out localUser); Error
// is present on failure.
type operationOutcome struct {
	Data  any                     `json:"data"`
	Error *domainerrors.ErrorInfo `json:"error,omitempty"`
}

// QueryHandler dispatches operation batches to the query router.
type QueryHandler struct {
	uc     usecase.QueryUsecase
	logger *slog.Logger
}

// NewQueryHandler is the constructor for QueryHandler, injected by Fx.
func NewQueryHandler(uc usecase.QueryUsecase, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		uc:     uc,
		logger: logger,
	}
}

// Execute handles one POST /query batch. The HTTP status is 200 whenever
// the batch itself is well formed; operation failures live in their own
// response slots.
func (h *QueryHandler) Execute(c echo.Context) error {
	var input queryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, domainerrors.ErrValidationFailed.ErrorCode(), "Invalid query batch")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, domainerrors.ErrValidationFailed.ErrorCode(), "Invalid query batch")
	}

	results := h.uc.Execute(c.Request().Context(), input.Operations)

	outcomes := make(map[string]operationOutcome, len(results))
	for name, result := range results {
		if result.Err != nil {
			outcomes[name] = operationOutcome{Error: errorInfo(result.Err)}

			continue
		}
		outcomes[name] = operationOutcome{Data: result.Data}
	}

	return response.Success(c, http.StatusOK, outcomes, "Query executed")
}

// errorInfo shapes an operation error into its response form. Unrecognized
// errors are reported as internal without leaking their text.
func errorInfo(err error) *domainerrors.ErrorInfo {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return &domainerrors.ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
			Details: err.Error(),
		}
	}

	return &domainerrors.ErrorInfo{
		Code:    domainerrors.ErrInternalError.ErrorCode(),
		Message: domainerrors.ErrInternalError.Message(),
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
