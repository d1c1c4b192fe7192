// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "word_puzzle"

var (
	// SubmissionsTotal counts word submissions by outcome.
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of word submissions by outcome",
		},
		[]string{"outcome"},
	)

	// PuzzlesGeneratedTotal counts generated puzzles.
	PuzzlesGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzles_generated_total",
			Help:      "Total number of generated puzzles",
		},
		[]string{"difficulty", "rare"},
	)

	// CompletionsTotal counts fully solved puzzles.
	CompletionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Total number of completed puzzles",
		},
	)

	// TraitsUnlockedTotal counts trait unlocks by trait id.
	TraitsUnlockedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traits_unlocked_total",
			Help:      "Total number of unlocked traits",
		},
		[]string{"trait"},
	)

	// NotifierCallsTotal counts rewards notifier calls by result.
	NotifierCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifier_calls_total",
			Help:      "Total number of rewards notifier calls",
		},
		[]string{"notifier", "call", "result"},
	)

	// HintsUsedTotal counts revealed hints.
	HintsUsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hints_used_total",
			Help:      "Total number of hints used",
		},
	)
)

// Collectors returns every game collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		SubmissionsTotal,
		PuzzlesGeneratedTotal,
		CompletionsTotal,
		TraitsUnlockedTotal,
		NotifierCallsTotal,
		HintsUsedTotal,
	}
}
