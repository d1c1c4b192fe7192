// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package player

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp       int
		expected int
	}{
		{xp: 0, expected: 1},
		{xp: 999, expected: 1},
		{xp: 1000, expected: 2},
		{xp: 2500, expected: 3},
		{xp: -10, expected: 1},
	}

	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.expected {
			t.Errorf("LevelForXP(%d) = %d, expected %d", tt.xp, got, tt.expected)
		}
	}
}

func TestNewProfile(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := NewProfile("player-1", now)

	if p.TotalXP != 0 || p.Level != 1 || p.StreakCount != 0 {
		t.Errorf("NewProfile() = %+v, expected zero XP, level 1, no streak", p)
	}
	if p.Traits == nil || p.PuzzleHistory == nil {
		t.Error("NewProfile() should initialize empty slices")
	}
	if !p.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, expected %v", p.CreatedAt, now)
	}
}

func TestProfile_AddXP(t *testing.T) {
	p := NewProfile("player-1", time.Now())
	p.AddXP(1500)

	if p.TotalXP != 1500 {
		t.Errorf("TotalXP = %d, expected 1500", p.TotalXP)
	}
	if p.Level != 2 {
		t.Errorf("Level = %d, expected 2", p.Level)
	}
}

func TestProfile_AddTrait(t *testing.T) {
	p := NewProfile("player-1", time.Now())
	trait := Trait{ID: "speed_demon", Name: "Speed Demon"}

	if !p.AddTrait(trait) {
		t.Fatal("AddTrait() should add a new trait")
	}
	if p.AddTrait(trait) {
		t.Error("AddTrait() should refuse a duplicate trait")
	}
	if len(p.Traits) != 1 {
		t.Errorf("len(Traits) = %d, expected 1", len(p.Traits))
	}
}

func TestTrait_JSONRoundTripKeepsBenefitVariants(t *testing.T) {
	trait := Trait{
		ID:   "early_bird",
		Name: "Early Bird",
		Benefits: Benefits{
			XPBoost{Factor: 1.2, Desc: "20% XP"},
			EarlyAccess{Minutes: 5, Desc: "5 minutes early"},
			SpecialContent{Content: "night_pack", Desc: "night pack"},
			DoubleXP{Factor: 2, Desc: "double on streak"},
		},
	}

	data, err := json.Marshal(trait)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Trait
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(decoded.Benefits) != 4 {
		t.Fatalf("len(Benefits) = %d, expected 4", len(decoded.Benefits))
	}
	boost, ok := decoded.Benefits[0].(XPBoost)
	if !ok || boost.Factor != 1.2 {
		t.Errorf("Benefits[0] = %#v, expected XPBoost{1.2}", decoded.Benefits[0])
	}
	early, ok := decoded.Benefits[1].(EarlyAccess)
	if !ok || early.Minutes != 5 {
		t.Errorf("Benefits[1] = %#v, expected EarlyAccess{5}", decoded.Benefits[1])
	}
	if _, ok := decoded.Benefits[2].(SpecialContent); !ok {
		t.Errorf("Benefits[2] = %#v, expected SpecialContent", decoded.Benefits[2])
	}
}

func TestBenefits_UnmarshalUnknownKind(t *testing.T) {
	var bs Benefits
	err := json.Unmarshal([]byte(`[{"kind":"free_lunch","description":"x"}]`), &bs)
	if err == nil {
		t.Error("expected error for unknown benefit kind")
	}
}
