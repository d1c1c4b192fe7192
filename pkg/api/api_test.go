package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/progression"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/AccelByte/extend-word-puzzle/pkg/store"
	"github.com/golang-jwt/jwt/v5"
)

var testRelease = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

type fakePuzzles struct {
	now     time.Time
	current *puzzle.Puzzle
}

func (f *fakePuzzles) Current(ctx context.Context) *puzzle.Puzzle { return f.current }
func (f *fakePuzzles) Now() time.Time                             { return f.now }
func (f *fakePuzzles) TimeUntilNext() time.Duration               { return f.current.ExpiryTime.Sub(f.now) }

type fakeHealth struct {
	err error
}

func (f *fakeHealth) Check(ctx context.Context) error { return f.err }

// newTestPuzzle builds a puzzle over CATS whose words are act, cat and cats.
func newTestPuzzle() *puzzle.Puzzle {
	bag := letters.Bag{Anchor: "C"}
	for i, r := range "CATS" {
		bag.Tiles = append(bag.Tiles, letters.Tile{ID: "t" + string(rune('0'+i)), Char: string(r), Position: i})
	}

	return &puzzle.Puzzle{
		ID:             puzzle.MakeID(testRelease),
		ReleaseTime:    testRelease,
		ExpiryTime:     testRelease.Add(puzzle.RotationWindow),
		Category:       puzzle.CategoryStandard,
		Difficulty:     puzzle.DifficultyMedium,
		Level:          1,
		Letters:        bag,
		AvailableWords: dictionary.New([]string{"cat", "act", "cats"}).ComputeAvailable(bag, 1),
		XPReward:       200,
		IsActive:       true,
	}
}

func setupRouter(t *testing.T, opts Options, health HealthChecker) http.Handler {
	t.Helper()

	puzzles := &fakePuzzles{now: testRelease.Add(20 * time.Minute), current: newTestPuzzle()}
	ctrl := progression.NewController(puzzles, store.New(store.NewMemoryKV()), nil, nil, nil)
	return NewHandler(ctrl, puzzles, health, opts).Routes()
}

func do(t *testing.T, router http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestGetPuzzle(t *testing.T) {
	router := setupRouter(t, Options{}, nil)

	rec := do(t, router, http.MethodGet, "/v1/puzzle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body puzzleResponse
	decodeBody(t, rec, &body)
	if body.TotalWords != 3 {
		t.Errorf("Expected 3 words, got %d", body.TotalWords)
	}
	if body.WordsByLength[3] != 2 || body.WordsByLength[4] != 1 {
		t.Errorf("Unexpected length breakdown: %v", body.WordsByLength)
	}
	if body.NextPuzzleIn != 40*60 {
		t.Errorf("Expected 2400s until next puzzle, got %d", body.NextPuzzleIn)
	}
	if strings.Contains(rec.Body.String(), "availableWords") {
		t.Error("Expected the word list to stay hidden")
	}
}

func TestSessionFlow(t *testing.T) {
	router := setupRouter(t, Options{}, nil)

	if rec := do(t, router, http.MethodPost, "/v1/players/p1/session", ""); rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on start, got %d: %s", rec.Code, rec.Body.String())
	}

	var sel struct {
		Word          string `json:"word"`
		PendingSubmit bool   `json:"pendingSubmit"`
	}
	for _, tile := range []string{"t0", "t1", "t2"} {
		rec := do(t, router, http.MethodPost, "/v1/players/p1/session/select", `{"tileId":"`+tile+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200 on select, got %d: %s", rec.Code, rec.Body.String())
		}
		decodeBody(t, rec, &sel)
	}
	if sel.Word != "CAT" || !sel.PendingSubmit {
		t.Errorf("Expected pending CAT, got %+v", sel)
	}

	rec := do(t, router, http.MethodPost, "/v1/players/p1/session/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on submit, got %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Outcome string `json:"outcome"`
		XP      int    `json:"xp"`
		TotalXP int    `json:"totalXP"`
	}
	decodeBody(t, rec, &result)
	if result.Outcome != "accepted" || result.XP != 30 || result.TotalXP != 30 {
		t.Errorf("Unexpected submit result: %+v", result)
	}

	rec = do(t, router, http.MethodGet, "/v1/players/p1/session", "")
	var view progression.SessionView
	decodeBody(t, rec, &view)
	if len(view.Discovered) != 1 || view.Score != 30 {
		t.Errorf("Unexpected session view: %+v", view)
	}

	rec = do(t, router, http.MethodPost, "/v1/players/p1/session/hint", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 on hint, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/v1/players/p1/session/finish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on finish, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/v1/players/p1/session", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 when replaying a finished puzzle, got %d", rec.Code)
	}
}

func TestSessionErrors(t *testing.T) {
	router := setupRouter(t, Options{}, nil)

	rec := do(t, router, http.MethodPost, "/v1/players/p1/session/select", `{"tileId":"t0"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a session, got %d", rec.Code)
	}

	do(t, router, http.MethodPost, "/v1/players/p1/session", "")

	rec = do(t, router, http.MethodPost, "/v1/players/p1/session/select", `{"tileId":"nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown tile, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/v1/players/p1/session/select", `{bad json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad json, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/v1/players/p1/missions/unknown/claim", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown mission, got %d", rec.Code)
	}
}

func TestProfileSettingsAndWallet(t *testing.T) {
	router := setupRouter(t, Options{}, nil)

	rec := do(t, router, http.MethodPut, "/v1/players/p1/settings", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without soundEnabled, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPut, "/v1/players/p1/settings", `{"soundEnabled":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodGet, "/v1/players/p1/progress", "")
	var progress struct {
		SoundEnabled bool `json:"soundEnabled"`
		Level        int  `json:"level"`
	}
	decodeBody(t, rec, &progress)
	if progress.SoundEnabled || progress.Level != 1 {
		t.Errorf("Unexpected progress: %+v", progress)
	}

	rec = do(t, router, http.MethodPut, "/v1/players/p1/wallet", `{"walletAddress":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty wallet, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPut, "/v1/players/p1/wallet", `{"walletAddress":"0xabc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/v1/players/p1/profile", "")
	var profile struct {
		WalletAddress string `json:"walletAddress"`
	}
	decodeBody(t, rec, &profile)
	if profile.WalletAddress != "0xabc" {
		t.Errorf("Expected linked wallet, got %q", profile.WalletAddress)
	}

	rec = do(t, router, http.MethodGet, "/v1/players/p1/missions", "")
	var missions []map[string]interface{}
	decodeBody(t, rec, &missions)
	if len(missions) != 2 {
		t.Errorf("Expected 2 missions, got %d", len(missions))
	}
}

func TestPlayerTokenAuth(t *testing.T) {
	secret := "test-secret"
	router := setupRouter(t, Options{JWTSecret: secret}, nil)

	sign := func(subject string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		return signed
	}

	tests := []struct {
		name   string
		header []string
		expect int
	}{
		{name: "missing token", expect: http.StatusUnauthorized},
		{name: "garbage token", header: []string{"Authorization", "Bearer nope"}, expect: http.StatusUnauthorized},
		{name: "other player", header: []string{"Authorization", "Bearer " + sign("p2")}, expect: http.StatusForbidden},
		{name: "own player", header: []string{"Authorization", "Bearer " + sign("p1")}, expect: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, "/v1/players/p1/profile", "", tt.header...)
			if rec.Code != tt.expect {
				t.Errorf("Expected %d, got %d: %s", tt.expect, rec.Code, rec.Body.String())
			}
		})
	}

	// the puzzle summary stays public
	if rec := do(t, router, http.MethodGet, "/v1/puzzle", ""); rec.Code != http.StatusOK {
		t.Errorf("Expected public puzzle route, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	router := setupRouter(t, Options{RateLimit: 1, RateBurst: 2}, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, router, http.MethodGet, "/v1/puzzle", "").Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 200 429], got %v", codes)
	}

	// health checks are not limited
	if rec := do(t, router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("Expected healthz to bypass the limiter, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, Options{}, &fakeHealth{err: errors.New("redis down")})

	rec := do(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}

	router = setupRouter(t, Options{}, &fakeHealth{})
	if rec := do(t, router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	l := newClientLimiter(1, 1)
	now := testRelease
	l.now = func() time.Time { return now }

	l.get("a")
	now = now.Add(limiterIdleTTL + time.Minute)
	l.get("b")

	if _, ok := l.limiters["a"]; ok {
		t.Error("Expected idle client to be evicted")
	}
	if _, ok := l.limiters["b"]; !ok {
		t.Error("Expected active client to be kept")
	}
}
