package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gracepath/gracepath-api/internal/domain"
	"github.com/gracepath/gracepath-api/internal/logger"
	"github.com/gracepath/gracepath-api/internal/metrics"
	"github.com/gracepath/gracepath-api/internal/progression"
)

// AwardRequest represents a request to award XP for a user action
type AwardRequest struct {
	UserID     string                 `json:"user_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	ActionType string                 `json:"action_type" validate:"required,max=64,actiontype"`
	Amount     *int                   `json:"amount,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// StreakBonusRequest represents a request to award a streak bonus
type StreakBonusRequest struct {
	UserID     string `json:"user_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	StreakDays int    `json:"streak_days" validate:"gte=0"`
}

// HandleAward handles POST requests to award XP
func HandleAward(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AwardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode award request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid award request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		log.Debug("Award request", "user_id", req.UserID, "action_type", req.ActionType)

		result, err := svc.Award(r.Context(), req.UserID, domain.ActionType(req.ActionType), req.Amount, req.Metadata)
		if err != nil {
			metrics.AwardFailures.WithLabelValues(failureReason(err)).Inc()
			respondServiceError(w, log, err, ErrMsgAwardFailed)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleStreakBonus handles POST requests to award a weekly streak bonus
func HandleStreakBonus(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StreakBonusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode streak bonus request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid streak bonus request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		result, err := svc.AwardStreakBonus(r.Context(), req.UserID, req.StreakDays)
		if err != nil {
			metrics.AwardFailures.WithLabelValues(failureReason(err)).Inc()
			respondServiceError(w, log, err, ErrMsgAwardFailed)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// failureReason buckets award errors for the failure counter
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownActionType):
		return "unknown_action_type"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrPersistenceConflict):
		return "persistence_conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}
