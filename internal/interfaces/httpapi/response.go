package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "prediction-league"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, scoring.ErrInvalidConfiguration):
		return invalidArgument("invalidConfiguration")
	case errors.Is(err, scoring.ErrInvalidBonus):
		return invalidArgument("invalidBonus")
	case errors.Is(err, scoring.ErrUnknownTemplate):
		return invalidArgument("unknownTemplate")
	case errors.Is(err, fixture.ErrInvalidResult):
		return invalidArgument("invalidResult")
	case errors.Is(err, chip.ErrInvalidAssignment),
		errors.Is(err, chip.ErrInvalidAllowance):
		return invalidArgument("invalidChip")
	case errors.Is(err, gameweek.ErrInvalidRound):
		return invalidArgument("invalidGameWeek")
	case errors.Is(err, scoring.ErrIncompleteData):
		return failedPrecondition("incompleteData")
	case errors.Is(err, chip.ErrAllowanceExceeded):
		return failedPrecondition("allowanceExceeded")
	case errors.Is(err, chip.ErrAlreadyActive):
		return failedPrecondition("chipAlreadyActive")
	case errors.Is(err, chip.ErrLocked):
		return failedPrecondition("chipLocked")
	case errors.Is(err, gameweek.ErrNotPredictable):
		return failedPrecondition("notPredictable")
	case errors.Is(err, gameweek.ErrNotCorrectable):
		return failedPrecondition("notCorrectable")
	case errors.Is(err, usecase.ErrInvalidInput):
		return invalidArgument("invalidInput")
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, league.ErrVersionConflict),
		errors.Is(err, league.ErrAlreadyExists):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "ABORTED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}

func invalidArgument(reason string) mappedError {
	return mappedError{
		HTTPStatus: http.StatusBadRequest,
		Reason:     reason,
		Status:     "INVALID_ARGUMENT",
	}
}

// failedPrecondition covers requests that are well formed but arrive at the
// wrong point of the league lifecycle.
func failedPrecondition(reason string) mappedError {
	return mappedError{
		HTTPStatus: http.StatusConflict,
		Reason:     reason,
		Status:     "FAILED_PRECONDITION",
	}
}
