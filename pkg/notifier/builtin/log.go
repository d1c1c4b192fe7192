package builtin

import (
	"context"
	"strings"

	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// LogNotifierID is the type identifier for the log notifier
	LogNotifierID = "log"
)

// LogNotifier writes every event to the application log.
// Useful in development when no rewards service is configured.
type LogNotifier struct {
	config notifier.Config
}

// NewLogNotifier creates a new log notifier.
func NewLogNotifier(config notifier.Config) *LogNotifier {
	return &LogNotifier{config: config}
}

// ID returns the notifier identifier.
func (n *LogNotifier) ID() string {
	return n.config.ID
}

// Name returns the notifier name.
func (n *LogNotifier) Name() string {
	return "Log"
}

// Config returns the notifier configuration.
func (n *LogNotifier) Config() notifier.Config {
	return n.config
}

func (n *LogNotifier) CreateMission(ctx context.Context, mission notifier.MissionMetadata) error {
	logrus.WithFields(logrus.Fields{
		"puzzle_id":  mission.PuzzleID,
		"difficulty": mission.Difficulty,
		"xp_reward":  mission.XPReward,
		"rare":       mission.IsRare,
	}).Info("mission created")
	return nil
}

func (n *LogNotifier) CompleteMission(ctx context.Context, recipient notifier.Recipient, puzzleID string, results notifier.MissionResults) error {
	logrus.WithFields(logrus.Fields{
		"puzzle_id": puzzleID,
		"player_id": recipient.PlayerID,
		"wallet":    recipient.WalletAddress,
		"accuracy":  results.Accuracy,
		"seconds":   results.CompletionTime,
		"xp":        results.XPEarned,
	}).Info("mission completed")
	return nil
}

func (n *LogNotifier) UpdateTraits(ctx context.Context, recipient notifier.Recipient, traits []player.Trait) error {
	ids := lo.Map(traits, func(t player.Trait, _ int) string { return t.ID })
	logrus.WithFields(logrus.Fields{
		"player_id": recipient.PlayerID,
		"traits":    strings.Join(ids, ","),
	}).Info("traits updated")
	return nil
}

func (n *LogNotifier) ClaimMission(ctx context.Context, recipient notifier.Recipient, missionID string) error {
	logrus.WithFields(logrus.Fields{
		"player_id":  recipient.PlayerID,
		"mission_id": missionID,
	}).Info("mission claimed")
	return nil
}
