package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclient/fulfillment"
	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclientmodels"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclient/user_statistic"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclientmodels"
	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/sirupsen/logrus"
)

const (
	// AccelBytePlatformNotifierID is the type identifier for the AccelByte platform notifier
	AccelBytePlatformNotifierID = "accelbyte_platform"

	DefaultCompletionStatCode = "word-puzzle-completions"
	DefaultXPStatCode         = "word-puzzle-xp"
	DefaultClaimStatCode      = "word-puzzle-missions-claimed"
)

// StatIncrementer increments a player statistic.
type StatIncrementer interface {
	IncStat(ctx context.Context, userID, statCode string, inc float64) error
}

// ItemGranter grants an item to a player.
type ItemGranter interface {
	GrantItem(ctx context.Context, userID, itemID string, quantity int32) error
}

// AccelBytePlatformNotifier mirrors game progress into AccelByte statistics
// and grants a platform item for each unlocked trait that has one configured.
type AccelBytePlatformNotifier struct {
	config         notifier.Config
	stats          StatIncrementer
	granter        ItemGranter
	completionStat string
	xpStat         string
	claimStat      string
	traitItems     map[string]string
}

// NewAccelBytePlatformNotifier creates a new AccelByte platform notifier.
// The trait_items parameter maps trait ids to platform item ids.
func NewAccelBytePlatformNotifier(config notifier.Config, stats StatIncrementer, granter ItemGranter) *AccelBytePlatformNotifier {
	traitItems := make(map[string]string)
	if raw, ok := config.Parameters["trait_items"].(map[string]interface{}); ok {
		for traitID, v := range raw {
			if itemID, ok := v.(string); ok && itemID != "" {
				traitItems[traitID] = itemID
			}
		}
	}

	n := &AccelBytePlatformNotifier{
		config:         config,
		stats:          stats,
		granter:        granter,
		completionStat: config.GetParameterString("completion_stat_code", DefaultCompletionStatCode),
		xpStat:         config.GetParameterString("xp_stat_code", DefaultXPStatCode),
		claimStat:      config.GetParameterString("claim_stat_code", DefaultClaimStatCode),
		traitItems:     traitItems,
	}

	logrus.Infof("creating accelbyte platform notifier: completionStat=%s, xpStat=%s, traitItems=%d",
		n.completionStat, n.xpStat, len(traitItems))

	return n
}

// ID returns the notifier identifier.
func (n *AccelBytePlatformNotifier) ID() string {
	return n.config.ID
}

// Name returns the notifier name.
func (n *AccelBytePlatformNotifier) Name() string {
	return "AccelByte Platform"
}

// Config returns the notifier configuration.
func (n *AccelBytePlatformNotifier) Config() notifier.Config {
	return n.config
}

// CreateMission is not tracked on the platform.
func (n *AccelBytePlatformNotifier) CreateMission(ctx context.Context, mission notifier.MissionMetadata) error {
	return notifier.ErrCallNotSupported
}

// CompleteMission increments the completion and XP statistics.
func (n *AccelBytePlatformNotifier) CompleteMission(ctx context.Context, recipient notifier.Recipient, puzzleID string, results notifier.MissionResults) error {
	if n.stats == nil {
		logrus.Warnf("[TEST MODE] would record completion of %s for user %s", puzzleID, recipient.PlayerID)
		return nil
	}

	if err := n.stats.IncStat(ctx, recipient.PlayerID, n.completionStat, 1); err != nil {
		return err
	}
	if results.XPEarned > 0 {
		if err := n.stats.IncStat(ctx, recipient.PlayerID, n.xpStat, float64(results.XPEarned)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTraits grants the configured item for each new trait.
func (n *AccelBytePlatformNotifier) UpdateTraits(ctx context.Context, recipient notifier.Recipient, traits []player.Trait) error {
	for _, t := range traits {
		itemID, ok := n.traitItems[t.ID]
		if !ok {
			logrus.Debugf("no platform item configured for trait %s", t.ID)
			continue
		}

		if n.granter == nil {
			logrus.Warnf("[TEST MODE] would grant item %s for trait %s to user %s", itemID, t.ID, recipient.PlayerID)
			continue
		}

		if err := n.granter.GrantItem(ctx, recipient.PlayerID, itemID, 1); err != nil {
			return fmt.Errorf("failed to grant trait item %s: %w", itemID, err)
		}
		logrus.Infof("granted trait item %s to user %s", itemID, recipient.PlayerID)
	}
	return nil
}

// ClaimMission increments the claimed missions statistic.
func (n *AccelBytePlatformNotifier) ClaimMission(ctx context.Context, recipient notifier.Recipient, missionID string) error {
	if n.stats == nil {
		logrus.Warnf("[TEST MODE] would record claim of %s for user %s", missionID, recipient.PlayerID)
		return nil
	}
	return n.stats.IncStat(ctx, recipient.PlayerID, n.claimStat, 1)
}

// SDKStatIncrementer implements StatIncrementer with the AccelByte social service.
type SDKStatIncrementer struct {
	statisticService *social.UserStatisticService
	namespace        string
}

// NewSDKStatIncrementer creates a statistic incrementer for a namespace.
func NewSDKStatIncrementer(statisticService *social.UserStatisticService, namespace string) *SDKStatIncrementer {
	return &SDKStatIncrementer{
		statisticService: statisticService,
		namespace:        namespace,
	}
}

// IncStat increments a user statistic.
func (s *SDKStatIncrementer) IncStat(ctx context.Context, userID, statCode string, inc float64) error {
	input := &user_statistic.IncUserStatItemValueParams{
		Namespace: s.namespace,
		UserID:    userID,
		StatCode:  statCode,
		Body: &socialclientmodels.StatItemInc{
			Inc: inc,
		},
	}

	if _, err := s.statisticService.IncUserStatItemValueShort(input); err != nil {
		return fmt.Errorf("failed to increment user %s statistic %s: %w", userID, statCode, err)
	}
	return nil
}

// SDKItemGranter implements ItemGranter with the AccelByte fulfillment service.
type SDKItemGranter struct {
	fulfillmentService *platform.FulfillmentService
	namespace          string
}

// NewSDKItemGranter creates an item granter for a namespace.
func NewSDKItemGranter(fulfillmentService *platform.FulfillmentService, namespace string) *SDKItemGranter {
	return &SDKItemGranter{
		fulfillmentService: fulfillmentService,
		namespace:          namespace,
	}
}

// GrantItem fulfills an item for a user as a reward.
func (g *SDKItemGranter) GrantItem(ctx context.Context, userID, itemID string, quantity int32) error {
	input := &fulfillment.FulfillItemParams{
		Namespace: g.namespace,
		UserID:    userID,
		Body: &platformclientmodels.FulfillmentRequest{
			ItemID:   itemID,
			Quantity: &quantity,
			Source:   platformclientmodels.FulfillmentRequestSourceREWARD,
		},
	}

	resp, err := g.fulfillmentService.FulfillItemShort(input)
	if err != nil {
		return fmt.Errorf("failed to fulfill item: %w", err)
	}
	if resp == nil {
		return fmt.Errorf("could not grant item to user: empty response")
	}
	return nil
}
