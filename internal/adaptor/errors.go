package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"salon-booking/internal/data/repository"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// SlotTakenMessage is the public-facing conflict text shown on the
// booking page when the requested interval is no longer free.
const SlotTakenMessage = "Horario no disponible"

// handleServiceError maps usecase errors to the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.ResponseNotFound(w, "Resource not found")
	case errors.Is(err, repository.ErrSlotTaken):
		utils.ResponseConflict(w, SlotTakenMessage, nil)
	case errors.Is(err, repository.ErrForbidden):
		utils.ResponseForbidden(w, "Insufficient permissions")
	case isClientError(err):
		utils.ResponseBadRequest(w, err.Error(), nil)
	default:
		log.Error("Service error", zap.String("operation", operation), zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// isClientError covers validation and parse failures wrapped by the
// usecase layer.
func isClientError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "validation failed") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "cannot transition") ||
		strings.Contains(msg, "cannot edit")
}
