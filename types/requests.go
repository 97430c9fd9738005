package types

import (
	"errors"
	"fmt"
)

// MaxScore is the top of the fixed-point compliance score scale (1.0000).
const MaxScore = 10000

// ErrClaimInvalid marks a proof request whose statement is false or outside
// the supported numeric domain. It is always raised before any proving work
// happens; a proof is never attempted for an unsatisfiable claim.
var ErrClaimInvalid = errors.New("claim invalid")

// tierBounds maps a compliance tier to its inclusive score band. Bands abut
// exactly: each tier's minimum is one above the next tier's maximum.
var tierBounds = map[int][2]int{
	1: {9500, 10000},
	2: {8500, 9499},
	3: {7000, 8499},
	4: {5000, 6999},
	5: {0, 4999},
}

// TierBounds returns the inclusive score band for a tier, with ok=false for
// tiers outside 1..5.
func TierBounds(tier int) (minScore, maxScore int, ok bool) {
	b, ok := tierBounds[tier]
	return b[0], b[1], ok
}

// ThresholdProofRequest asks for a proof that score >= threshold without
// revealing the score.
type ThresholdProofRequest struct {
	EntityID  string `json:"entity_id"`
	Score     int    `json:"score"`
	Threshold int    `json:"threshold"`
	Salt      string `json:"salt,omitempty"`
}

func (r ThresholdProofRequest) Validate() error {
	if r.EntityID == "" {
		return fmt.Errorf("%w: entity_id is required", ErrClaimInvalid)
	}
	if err := checkScore("score", r.Score); err != nil {
		return err
	}
	if err := checkScore("threshold", r.Threshold); err != nil {
		return err
	}
	if r.Score < r.Threshold {
		return fmt.Errorf("%w: score %d does not meet threshold %d", ErrClaimInvalid, r.Score, r.Threshold)
	}
	return nil
}

// RangeProofRequest asks for a proof that min_score <= score <= max_score.
type RangeProofRequest struct {
	EntityID string `json:"entity_id"`
	Score    int    `json:"score"`
	MinScore int    `json:"min_score"`
	MaxScore int    `json:"max_score"`
	Salt     string `json:"salt,omitempty"`
}

func (r RangeProofRequest) Validate() error {
	if r.EntityID == "" {
		return fmt.Errorf("%w: entity_id is required", ErrClaimInvalid)
	}
	if err := checkScore("score", r.Score); err != nil {
		return err
	}
	if err := checkScore("min_score", r.MinScore); err != nil {
		return err
	}
	if err := checkScore("max_score", r.MaxScore); err != nil {
		return err
	}
	if r.MaxScore < r.MinScore {
		return fmt.Errorf("%w: max_score %d must be >= min_score %d", ErrClaimInvalid, r.MaxScore, r.MinScore)
	}
	if r.Score < r.MinScore || r.Score > r.MaxScore {
		return fmt.Errorf("%w: score %d not in range [%d, %d]", ErrClaimInvalid, r.Score, r.MinScore, r.MaxScore)
	}
	return nil
}

// TierProofRequest asks for a proof that the score falls inside the claimed
// tier's band.
type TierProofRequest struct {
	EntityID string `json:"entity_id"`
	Score    int    `json:"score"`
	Tier     int    `json:"tier"`
	Salt     string `json:"salt,omitempty"`
}

func (r TierProofRequest) Validate() error {
	if r.EntityID == "" {
		return fmt.Errorf("%w: entity_id is required", ErrClaimInvalid)
	}
	if err := checkScore("score", r.Score); err != nil {
		return err
	}
	minScore, maxScore, ok := TierBounds(r.Tier)
	if !ok {
		return fmt.Errorf("%w: invalid tier %d, must be 1-5", ErrClaimInvalid, r.Tier)
	}
	if r.Score < minScore || r.Score > maxScore {
		return fmt.Errorf("%w: score %d not in tier %d range [%d, %d]", ErrClaimInvalid, r.Score, r.Tier, minScore, maxScore)
	}
	return nil
}

func checkScore(name string, v int) error {
	if v < 0 || v > MaxScore {
		return fmt.Errorf("%w: %s %d outside [0, %d]", ErrClaimInvalid, name, v, MaxScore)
	}
	return nil
}
