package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/sirupsen/logrus"
)

const (
	// RewardsAPINotifierID is the type identifier for the rewards REST notifier
	RewardsAPINotifierID = "rewards_api"

	// DefaultRewardsTimeout is the per-request HTTP timeout
	DefaultRewardsTimeout = 5 * time.Second
)

// RewardsAPINotifier reports missions, completions and traits to the rewards REST service.
type RewardsAPINotifier struct {
	config  notifier.Config
	baseURL string
	apiKey  string
	verify  bool
	client  *http.Client
	now     func() time.Time
}

// NewRewardsAPINotifier creates a new rewards REST notifier.
// base_url and api_key parameters fall back to the given defaults.
func NewRewardsAPINotifier(config notifier.Config, defaultBaseURL, defaultAPIKey string, client *http.Client) (*RewardsAPINotifier, error) {
	baseURL := strings.TrimRight(config.GetParameterString("base_url", defaultBaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base_url is required", notifier.ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: base_url: %v", notifier.ErrInvalidConfig, err)
	}

	if client == nil {
		client = &http.Client{Timeout: config.GetParameterDuration("timeout", DefaultRewardsTimeout)}
	}

	logrus.Infof("creating rewards api notifier: baseURL=%s", baseURL)

	return &RewardsAPINotifier{
		config:  config,
		baseURL: baseURL,
		apiKey:  config.GetParameterString("api_key", defaultAPIKey),
		verify:  config.GetParameterBool("verify_completion", true),
		client:  client,
		now:     time.Now,
	}, nil
}

// ID returns the notifier identifier.
func (n *RewardsAPINotifier) ID() string {
	return n.config.ID
}

// Name returns the notifier name.
func (n *RewardsAPINotifier) Name() string {
	return "Rewards API"
}

// Config returns the notifier configuration.
func (n *RewardsAPINotifier) Config() notifier.Config {
	return n.config
}

type missionRequest struct {
	ID       string          `json:"id"`
	Metadata missionMetadata `json:"metadata"`
}

type missionMetadata struct {
	PuzzleID    string `json:"puzzle_id"`
	ReleaseTime string `json:"release_time"`
	ExpiryTime  string `json:"expiry_time"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	XPReward    int    `json:"xp_reward"`
	IsRare      bool   `json:"is_rare"`
}

// CreateMission registers the puzzle as a mission.
func (n *RewardsAPINotifier) CreateMission(ctx context.Context, mission notifier.MissionMetadata) error {
	body := missionRequest{
		ID: mission.PuzzleID,
		Metadata: missionMetadata{
			PuzzleID:    mission.PuzzleID,
			ReleaseTime: mission.ReleaseTime.UTC().Format(time.RFC3339),
			ExpiryTime:  mission.ExpiryTime.UTC().Format(time.RFC3339),
			Category:    mission.Category,
			Difficulty:  mission.Difficulty,
			XPReward:    mission.XPReward,
			IsRare:      mission.IsRare,
		},
	}
	return n.do(ctx, http.MethodPost, "/missions", body)
}

type completeRequest struct {
	WalletAddress  string   `json:"wallet_address"`
	CompletionTime int      `json:"completion_time"`
	Accuracy       int      `json:"accuracy"`
	WordsFound     []string `json:"words_found"`
	XPEarned       int      `json:"xp_earned"`
	CompletedAt    string   `json:"completed_at"`
}

type verifyRequest struct {
	PuzzleID      string      `json:"puzzle_id"`
	WalletAddress string      `json:"wallet_address"`
	Proof         puzzleProof `json:"proof"`
	VerifiedAt    string      `json:"verified_at"`
}

type puzzleProof struct {
	TimeTaken  int      `json:"timeTaken"`
	WordsFound []string `json:"wordsFound"`
	Hash       string   `json:"hash"`
}

// CompleteMission posts the completion proof and then completes the mission.
func (n *RewardsAPINotifier) CompleteMission(ctx context.Context, recipient notifier.Recipient, puzzleID string, results notifier.MissionResults) error {
	now := n.now().UTC().Format(time.RFC3339)

	if n.verify {
		proof := verifyRequest{
			PuzzleID:      puzzleID,
			WalletAddress: recipient.WalletAddress,
			Proof: puzzleProof{
				TimeTaken:  results.CompletionTime,
				WordsFound: results.WordsFound,
				Hash:       notifier.ProofHash(puzzleID, results.WordsFound),
			},
			VerifiedAt: now,
		}
		if err := n.do(ctx, http.MethodPost, "/verify/puzzle", proof); err != nil {
			return fmt.Errorf("failed to verify completion: %w", err)
		}
	}

	body := completeRequest{
		WalletAddress:  recipient.WalletAddress,
		CompletionTime: results.CompletionTime,
		Accuracy:       results.Accuracy,
		WordsFound:     results.WordsFound,
		XPEarned:       results.XPEarned,
		CompletedAt:    now,
	}
	return n.do(ctx, http.MethodPost, "/missions/"+url.PathEscape(puzzleID)+"/complete", body)
}

type traitsRequest struct {
	Traits    []traitPayload `json:"traits"`
	UpdatedAt string         `json:"updated_at"`
}

type traitPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// UpdateTraits replaces the player's trait record with traits.
func (n *RewardsAPINotifier) UpdateTraits(ctx context.Context, recipient notifier.Recipient, traits []player.Trait) error {
	body := traitsRequest{UpdatedAt: n.now().UTC().Format(time.RFC3339)}
	for _, t := range traits {
		body.Traits = append(body.Traits, traitPayload{ID: t.ID, Name: t.Name, Level: 1})
	}
	return n.do(ctx, http.MethodPut, "/players/"+url.PathEscape(recipient.WalletAddress)+"/traits", body)
}

type claimRequest struct {
	WalletAddress string `json:"wallet_address"`
	ClaimedAt     string `json:"claimed_at"`
}

// ClaimMission reports a claimed mission reward.
func (n *RewardsAPINotifier) ClaimMission(ctx context.Context, recipient notifier.Recipient, missionID string) error {
	body := claimRequest{
		WalletAddress: recipient.WalletAddress,
		ClaimedAt:     n.now().UTC().Format(time.RFC3339),
	}
	return n.do(ctx, http.MethodPost, "/missions/"+url.PathEscape(missionID)+"/claim", body)
}

func (n *RewardsAPINotifier) do(ctx context.Context, method, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, n.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	logrus.Debugf("rewards api %s %s returned %d", method, path, resp.StatusCode)
	return nil
}
