package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest    = "Invalid request body"
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// User-facing messages for domain errors
	ErrMsgUnknownActionTypeHTTP  = "Unknown action type"
	ErrMsgInvalidAmountHTTP      = "Amount must be zero or positive"
	ErrMsgInvalidInputHTTP       = "Invalid request. Please check your inputs."
	ErrMsgUserNotFoundHTTP       = "User not found"
	ErrMsgRewardNotFoundHTTP     = "Reward not found"
	ErrMsgRewardNotOwnedHTTP     = "You have not unlocked that reward yet"
	ErrMsgConflictHTTP           = "Conflicting update, please retry"
	ErrMsgUnavailableHTTP        = "Server is temporarily unavailable. Please try again later."
	ErrMsgGenericServerErrorHTTP = "Something went wrong"

	// Operation failure messages
	ErrMsgAwardFailed          = "Failed to award XP"
	ErrMsgGetProgressFailed    = "Failed to retrieve user progress"
	ErrMsgGetStatsFailed       = "Failed to retrieve user stats"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"
	ErrMsgListRewardsFailed    = "Failed to retrieve rewards"
	ErrMsgActivateRewardFailed = "Failed to activate reward"
)

// Success messages for API responses
const (
	MsgRewardActivatedSuccess = "Reward activated successfully"
)

// respondServiceError maps domain errors onto HTTP status codes with
// user-facing messages. Internal detail stays in the logs.
func respondServiceError(w http.ResponseWriter, log *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUnknownActionType):
		respondError(w, http.StatusBadRequest, ErrMsgUnknownActionTypeHTTP)
	case errors.Is(err, domain.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAmountHTTP)
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, ErrMsgInvalidInputHTTP)
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, ErrMsgUserNotFoundHTTP)
	case errors.Is(err, domain.ErrRewardNotFound):
		respondError(w, http.StatusNotFound, ErrMsgRewardNotFoundHTTP)
	case errors.Is(err, domain.ErrRewardNotOwned):
		respondError(w, http.StatusConflict, ErrMsgRewardNotOwnedHTTP)
	case errors.Is(err, domain.ErrPersistenceConflict):
		respondError(w, http.StatusConflict, ErrMsgConflictHTTP)
	case errors.Is(err, domain.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, ErrMsgUnavailableHTTP)
	default:
		log.Error(fallback, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerErrorHTTP)
	}
}
