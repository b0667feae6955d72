package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/pkg/utils"
)

// writeDomainError maps domain failures to HTTP status codes; anything
// unrecognized is logged and reported as a 500.
func writeDomainError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error) {
	var transitionErr entities.InvalidTransitionError

	switch {
	case errors.Is(err, entities.ErrEntityNotFound),
		errors.Is(err, entities.ErrOrderNotFound),
		errors.Is(err, entities.ErrProductNotFound),
		errors.Is(err, entities.ErrLineItemNotFound):
		utils.WriteError(w, err.Error(), http.StatusNotFound)

	case errors.As(err, &transitionErr):
		utils.WriteError(w, transitionErr.Error(), http.StatusBadRequest)

	case errors.Is(err, entities.ErrOrderNotEditable),
		errors.Is(err, entities.ErrInvalidQuantity):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, entities.ErrStatusConflict),
		errors.Is(err, entities.ErrEmailTaken):
		utils.WriteError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, entities.ErrInvalidCredentials):
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)

	default:
		logger.ErrorContext(ctx, "request failed", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
