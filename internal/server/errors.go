package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tippy-tappy/internal/tipping"
)

func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, tipping.ErrUnknownGame), errors.Is(err, tipping.ErrUnknownGlobalBet):
		return http.StatusNotFound
	case errors.Is(err, tipping.ErrUnknownTeam):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tipping.ErrDuplicateKey), errors.Is(err, tipping.ErrBettingClosed):
		return http.StatusConflict
	case errors.Is(err, tipping.ErrInvalidTimestamp), errors.Is(err, tipping.ErrInvalidScore), errors.Is(err, tipping.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeStoreError(c *gin.Context, err error) {
	status := storeErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
		if errors.Is(err, tipping.ErrPersistence) {
			message = "change applied but the snapshot could not be saved"
		}
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("store operation failed")
	}
	if tipping.IsValidation(err) {
		s.log.Debug().Err(err).Str("path", c.FullPath()).Msg("request rejected")
	}
	c.JSON(status, gin.H{"error": message})
}
