package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AccelByte/extend-word-puzzle/pkg/mission"
	"github.com/AccelByte/extend-word-puzzle/pkg/progression"
	"github.com/AccelByte/extend-word-puzzle/pkg/session"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeControllerError maps game errors onto HTTP statuses.
func writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, progression.ErrNoSession):
		writeError(w, http.StatusNotFound, "no_session", err.Error())
	case errors.Is(err, progression.ErrInvalidPlayer),
		errors.Is(err, progression.ErrInvalidWallet),
		errors.Is(err, session.ErrUnknownTile):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, progression.ErrPuzzleFinished):
		writeError(w, http.StatusConflict, "puzzle_finished", err.Error())
	case errors.Is(err, session.ErrNoHintsLeft),
		errors.Is(err, session.ErrNothingToHint):
		writeError(w, http.StatusConflict, "no_hint", err.Error())
	case errors.Is(err, mission.ErrUnknownMission):
		writeError(w, http.StatusNotFound, "unknown_mission", err.Error())
	case errors.Is(err, mission.ErrNotCompleted):
		writeError(w, http.StatusConflict, "mission_not_completed", err.Error())
	case errors.Is(err, mission.ErrAlreadyClaimed):
		writeError(w, http.StatusConflict, "mission_already_claimed", err.Error())
	default:
		logrus.Errorf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
