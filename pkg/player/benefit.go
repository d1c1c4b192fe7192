// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package player

import (
	"encoding/json"
	"fmt"
)

// BenefitKind discriminates the benefit variants.
type BenefitKind string

const (
	BenefitXPBoost        BenefitKind = "xp_boost"
	BenefitDoubleXP       BenefitKind = "double_xp"
	BenefitEarlyAccess    BenefitKind = "early_access"
	BenefitSpecialContent BenefitKind = "special_content"
)

// Trait is a persistent profile modifier unlocked by play.
type Trait struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Benefits Benefits `json:"benefits"`
}

// Benefit is one of XPBoost, DoubleXP, EarlyAccess or SpecialContent.
type Benefit interface {
	Kind() BenefitKind
	Description() string
	benefit()
}

// XPBoost multiplies every XP award.
type XPBoost struct {
	Factor float64
	Desc   string
}

// DoubleXP multiplies XP awards while the player is on a streak.
type DoubleXP struct {
	Factor float64
	Desc   string
}

// EarlyAccess opens the next puzzle some minutes before release.
type EarlyAccess struct {
	Minutes int
	Desc    string
}

// SpecialContent unlocks a named content pack.
type SpecialContent struct {
	Content string
	Desc    string
}

func (XPBoost) Kind() BenefitKind        { return BenefitXPBoost }
func (DoubleXP) Kind() BenefitKind       { return BenefitDoubleXP }
func (EarlyAccess) Kind() BenefitKind    { return BenefitEarlyAccess }
func (SpecialContent) Kind() BenefitKind { return BenefitSpecialContent }

func (b XPBoost) Description() string        { return b.Desc }
func (b DoubleXP) Description() string       { return b.Desc }
func (b EarlyAccess) Description() string    { return b.Desc }
func (b SpecialContent) Description() string { return b.Desc }

func (XPBoost) benefit()        {}
func (DoubleXP) benefit()       {}
func (EarlyAccess) benefit()    {}
func (SpecialContent) benefit() {}

// Benefits is a benefit list with a kind-tagged JSON encoding.
type Benefits []Benefit

type benefitJSON struct {
	Kind        BenefitKind `json:"kind"`
	Factor      float64     `json:"factor,omitempty"`
	Minutes     int         `json:"minutes,omitempty"`
	Content     string      `json:"content,omitempty"`
	Description string      `json:"description"`
}

// MarshalJSON encodes each benefit with its kind tag.
func (bs Benefits) MarshalJSON() ([]byte, error) {
	out := make([]benefitJSON, 0, len(bs))
	for _, b := range bs {
		enc := benefitJSON{Kind: b.Kind(), Description: b.Description()}
		switch v := b.(type) {
		case XPBoost:
			enc.Factor = v.Factor
		case DoubleXP:
			enc.Factor = v.Factor
		case EarlyAccess:
			enc.Minutes = v.Minutes
		case SpecialContent:
			enc.Content = v.Content
		default:
			return nil, fmt.Errorf("unknown benefit type %T", b)
		}
		out = append(out, enc)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes kind-tagged benefits.
func (bs *Benefits) UnmarshalJSON(data []byte) error {
	var raw []benefitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Benefits, 0, len(raw))
	for _, r := range raw {
		switch r.Kind {
		case BenefitXPBoost:
			out = append(out, XPBoost{Factor: r.Factor, Desc: r.Description})
		case BenefitDoubleXP:
			out = append(out, DoubleXP{Factor: r.Factor, Desc: r.Description})
		case BenefitEarlyAccess:
			out = append(out, EarlyAccess{Minutes: r.Minutes, Desc: r.Description})
		case BenefitSpecialContent:
			out = append(out, SpecialContent{Content: r.Content, Desc: r.Description})
		default:
			return fmt.Errorf("unknown benefit kind: %q", r.Kind)
		}
	}
	*bs = out
	return nil
}
