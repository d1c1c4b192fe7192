package notifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
)

// Notifier reports game events to an external rewards service.
// Notifiers are registered in a Registry and driven by the Dispatcher.
// A notifier that has no use for a call returns ErrCallNotSupported.
type Notifier interface {
	// ID returns unique notifier identifier.
	ID() string

	// Name returns human-readable notifier name.
	Name() string

	// CreateMission announces a newly released puzzle.
	CreateMission(ctx context.Context, mission MissionMetadata) error

	// CompleteMission reports a player's completed puzzle.
	CompleteMission(ctx context.Context, recipient Recipient, puzzleID string, results MissionResults) error

	// UpdateTraits pushes the full set of traits a player holds.
	UpdateTraits(ctx context.Context, recipient Recipient, traits []player.Trait) error

	// ClaimMission reports a claimed mission reward.
	ClaimMission(ctx context.Context, recipient Recipient, missionID string) error

	// Config returns the notifier's configuration.
	Config() Config
}

// Recipient identifies the player an event is about.
type Recipient struct {
	PlayerID      string
	WalletAddress string
}

// HasWallet reports whether the recipient linked a wallet.
func (r Recipient) HasWallet() bool {
	return r.WalletAddress != ""
}

// MissionMetadata describes a released puzzle.
type MissionMetadata struct {
	PuzzleID    string    `json:"puzzleId"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	XPReward    int       `json:"xpReward"`
	IsRare      bool      `json:"isRare"`
	ReleaseTime time.Time `json:"releaseTime"`
	ExpiryTime  time.Time `json:"expiryTime"`
}

// MissionResults describes a completed attempt.
type MissionResults struct {
	CompletionTime int      `json:"completionTime"`
	Accuracy       int      `json:"accuracy"`
	WordsFound     []string `json:"wordsFound"`
	XPEarned       int      `json:"xpEarned"`
}

// ProofHash returns the hex SHA-256 of the puzzle id and the sorted found words.
func ProofHash(puzzleID string, wordsFound []string) string {
	words := append([]string(nil), wordsFound...)
	sort.Strings(words)

	sum := sha256.Sum256([]byte(puzzleID + ":" + strings.Join(words, ",")))
	return hex.EncodeToString(sum[:])
}
