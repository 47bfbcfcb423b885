package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gracepath/gracepath-api/internal/logger"
	"github.com/gracepath/gracepath-api/internal/reward"
)

// ActivateRewardRequest represents a request to equip an owned reward
type ActivateRewardRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	RewardID string `json:"reward_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
}

// HandleListRewardsForUser handles GET requests for a user's rewards
func HandleListRewardsForUser(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		infos, err := svc.ListRewardsForUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, log, err, ErrMsgListRewardsFailed)
			return
		}

		// An empty list is a valid response, not an error.
		respondJSON(w, http.StatusOK, map[string]interface{}{"rewards": infos})
	}
}

// HandleActivateReward handles POST requests to equip a reward
func HandleActivateReward(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ActivateRewardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode activate reward request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid activate reward request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		if err := svc.ActivateReward(r.Context(), req.UserID, req.RewardID); err != nil {
			respondServiceError(w, log, err, ErrMsgActivateRewardFailed)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRewardActivatedSuccess})
	}
}
