package handler

import (
	"fmt"
	"net/http"

	"github.com/gracepath/gracepath-api/internal/logger"
	"github.com/gracepath/gracepath-api/internal/progression"
)

// HandleGetUserProgress handles GET requests for a user's progression record
func HandleGetUserProgress(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		progress, err := svc.GetUserProgress(r.Context(), userID)
		if err != nil {
			respondServiceError(w, log, err, ErrMsgGetProgressFailed)
			return
		}

		respondJSON(w, http.StatusOK, progress)
	}
}

// HandleGetLevelProgress handles GET requests for a user's position within
// their current level
func HandleGetLevelProgress(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		lp, err := svc.GetLevelProgress(r.Context(), userID)
		if err != nil {
			respondServiceError(w, log, err, ErrMsgGetProgressFailed)
			return
		}

		respondJSON(w, http.StatusOK, lp)
	}
}
