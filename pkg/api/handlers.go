package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type puzzleResponse struct {
	ID            string         `json:"id"`
	ReleaseTime   time.Time      `json:"releaseTime"`
	ExpiryTime    time.Time      `json:"expiryTime"`
	Category      string         `json:"category"`
	Difficulty    string         `json:"difficulty"`
	Level         int            `json:"level"`
	Letters       []letters.Tile `json:"letters"`
	Anchor        string         `json:"anchor"`
	TotalWords    int            `json:"totalWords"`
	WordsByLength map[int]int    `json:"wordsByLength"`
	XPReward      int            `json:"xpReward"`
	IsRare        bool           `json:"isRare"`
	IsActive      bool           `json:"isActive"`
	NextPuzzleIn  int64          `json:"nextPuzzleInSeconds"`
}

type tileRequest struct {
	TileID string `json:"tileId"`
}

type walletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type settingsRequest struct {
	SoundEnabled *bool `json:"soundEnabled"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

func newPuzzleResponse(p *puzzle.Puzzle, untilNext time.Duration) puzzleResponse {
	byLength := lo.CountValuesBy(p.AvailableWords, func(w dictionary.CandidateWord) int {
		return len(w.Word)
	})

	return puzzleResponse{
		ID:            p.ID,
		ReleaseTime:   p.ReleaseTime,
		ExpiryTime:    p.ExpiryTime,
		Category:      string(p.Category),
		Difficulty:    string(p.Difficulty),
		Level:         p.Level,
		Letters:       p.Letters.Tiles,
		Anchor:        p.Letters.Anchor,
		TotalWords:    len(p.AvailableWords),
		WordsByLength: byLength,
		XPReward:      p.XPReward,
		IsRare:        p.IsRare,
		IsActive:      p.IsActive,
		NextPuzzleIn:  int64(untilNext.Seconds()),
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Check(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "unhealthy", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	p := h.puzzles.Current(r.Context())
	writeJSON(w, http.StatusOK, newPuzzleResponse(p, h.puzzles.TimeUntilNext()))
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.StartSession(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.Session(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req tileRequest
	if !decode(w, r, &req) {
		return
	}
	sel, err := h.controller.Select(r.Context(), playerID(r), req.TileID)
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (h *Handler) handleDeselect(w http.ResponseWriter, r *http.Request) {
	var req tileRequest
	if !decode(w, r, &req) {
		return
	}
	sel, err := h.controller.Deselect(r.Context(), playerID(r), req.TileID)
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.Submit(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	sel, err := h.controller.Clear(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	hint, err := h.controller.Hint(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hintResponse{Hint: hint})
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	attempt, err := h.controller.Finish(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.controller.Profile(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.controller.Progress(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleLinkWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if !decode(w, r, &req) {
		return
	}
	profile, err := h.controller.LinkWallet(r.Context(), playerID(r), req.WalletAddress)
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decode(w, r, &req) {
		return
	}
	if req.SoundEnabled == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "soundEnabled is required")
		return
	}
	progress, err := h.controller.SetSound(r.Context(), playerID(r), *req.SoundEnabled)
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleGetMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.controller.Missions(r.Context(), playerID(r))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, missions)
}

func (h *Handler) handleClaimMission(w http.ResponseWriter, r *http.Request) {
	claimed, err := h.controller.Claim(r.Context(), playerID(r), chi.URLParam(r, "missionID"))
	if err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claimed)
}

func playerID(r *http.Request) string {
	return chi.URLParam(r, PlayerIDParam)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}
