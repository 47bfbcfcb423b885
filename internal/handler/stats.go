package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gracepath/gracepath-api/internal/logger"
	"github.com/gracepath/gracepath-api/internal/stats"
)

// HandleGetUserStats handles GET requests for a user's trailing activity stats
func HandleGetUserStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		windowDays := 0
		if raw := r.URL.Query().Get("window_days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, "Invalid window_days parameter")
				return
			}
			windowDays = parsed
		}

		summary, err := svc.UserStats(r.Context(), userID, windowDays)
		if err != nil {
			respondServiceError(w, log, err, ErrMsgGetStatsFailed)
			return
		}

		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleGetLeaderboard handles GET requests for the XP leaderboard
func HandleGetLeaderboard(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			limit = parsed
		}

		entries, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, log, err, ErrMsgGetLeaderboardFailed)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
	}
}
