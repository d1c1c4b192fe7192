package builtin

import (
	"net/http"

	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
)

// Dependencies holds dependencies needed by built-in notifiers.
type Dependencies struct {
	StatIncrementer StatIncrementer
	ItemGranter     ItemGranter
	HTTPClient      *http.Client

	// Defaults for the rewards API when the notifier config omits them.
	RewardsBaseURL string
	RewardsAPIKey  string
}

// RegisterNotifiers registers built-in notifier factories with dependencies.
func RegisterNotifiers(deps *Dependencies) {
	if deps == nil {
		deps = &Dependencies{}
	}

	notifier.RegisterNotifierType(RewardsAPINotifierID, func(config notifier.Config) (notifier.Notifier, error) {
		return NewRewardsAPINotifier(config, deps.RewardsBaseURL, deps.RewardsAPIKey, deps.HTTPClient)
	})

	notifier.RegisterNotifierType(AccelBytePlatformNotifierID, func(config notifier.Config) (notifier.Notifier, error) {
		return NewAccelBytePlatformNotifier(config, deps.StatIncrementer, deps.ItemGranter), nil
	})

	notifier.RegisterNotifierType(LogNotifierID, func(config notifier.Config) (notifier.Notifier, error) {
		return NewLogNotifier(config), nil
	})
}
