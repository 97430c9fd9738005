package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProofType identifies which compliance statement a proof attests to.
type ProofType string

const (
	ProofTypeThreshold ProofType = "threshold"
	ProofTypeRange     ProofType = "range"
	ProofTypeTier      ProofType = "tier"
)

// ProofParams is the kind-specific public parameter set of a proof. Exactly
// one variant exists per proof type, so invalid parameter combinations are
// unrepresentable.
type ProofParams interface {
	Type() ProofType
}

// ThresholdParams are the public parameters of a score >= threshold proof.
type ThresholdParams struct {
	Threshold int
}

func (ThresholdParams) Type() ProofType { return ProofTypeThreshold }

// RangeParams are the public parameters of a min <= score <= max proof.
type RangeParams struct {
	MinScore int
	MaxScore int
}

func (RangeParams) Type() ProofType { return ProofTypeRange }

// TierParams are the public parameters of a tier membership proof.
type TierParams struct {
	Tier int
}

func (TierParams) Type() ProofType { return ProofTypeTier }

// ProofMetadata records how a proof was produced: the circuit used, when,
// how long proving took, the field-encoded entity hash and the kind-specific
// public parameters.
type ProofMetadata struct {
	CircuitName   string
	GeneratedAt   time.Time
	ProvingTimeMS int64
	EntityHash    string
	Params        ProofParams
}

// ProofType returns the proof kind, or "" when no parameters are set.
func (m ProofMetadata) ProofType() ProofType {
	if m.Params == nil {
		return ""
	}
	return m.Params.Type()
}

// metadataWire is the flat JSON layout shared with the other Civium
// services: a proof_type discriminator plus optional kind-specific fields.
type metadataWire struct {
	ProofType     ProofType `json:"proof_type"`
	CircuitName   string    `json:"circuit_name"`
	GeneratedAt   time.Time `json:"generated_at"`
	ProvingTimeMS int64     `json:"proving_time_ms"`
	EntityHash    string    `json:"entity_hash"`
	Threshold     *int      `json:"threshold,omitempty"`
	MinScore      *int      `json:"min_score,omitempty"`
	MaxScore      *int      `json:"max_score,omitempty"`
	Tier          *int      `json:"tier,omitempty"`
}

func (m ProofMetadata) MarshalJSON() ([]byte, error) {
	w := metadataWire{
		CircuitName:   m.CircuitName,
		GeneratedAt:   m.GeneratedAt,
		ProvingTimeMS: m.ProvingTimeMS,
		EntityHash:    m.EntityHash,
	}
	switch p := m.Params.(type) {
	case ThresholdParams:
		w.ProofType = ProofTypeThreshold
		w.Threshold = &p.Threshold
	case RangeParams:
		w.ProofType = ProofTypeRange
		w.MinScore = &p.MinScore
		w.MaxScore = &p.MaxScore
	case TierParams:
		w.ProofType = ProofTypeTier
		w.Tier = &p.Tier
	case nil:
		return nil, fmt.Errorf("proof metadata has no parameters")
	default:
		return nil, fmt.Errorf("unknown proof parameter type %T", p)
	}
	return json.Marshal(w)
}

func (m *ProofMetadata) UnmarshalJSON(data []byte) error {
	var w metadataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.CircuitName = w.CircuitName
	m.GeneratedAt = w.GeneratedAt
	m.ProvingTimeMS = w.ProvingTimeMS
	m.EntityHash = w.EntityHash
	switch w.ProofType {
	case ProofTypeThreshold:
		if w.Threshold == nil {
			return fmt.Errorf("threshold proof metadata missing threshold")
		}
		m.Params = ThresholdParams{Threshold: *w.Threshold}
	case ProofTypeRange:
		if w.MinScore == nil || w.MaxScore == nil {
			return fmt.Errorf("range proof metadata missing min_score or max_score")
		}
		m.Params = RangeParams{MinScore: *w.MinScore, MaxScore: *w.MaxScore}
	case ProofTypeTier:
		if w.Tier == nil {
			return fmt.Errorf("tier proof metadata missing tier")
		}
		m.Params = TierParams{Tier: *w.Tier}
	default:
		return fmt.Errorf("unknown proof type %q", w.ProofType)
	}
	return nil
}

// ProofWithMetadata is the unit exchanged between prover and verifier and
// the unit a caller persists or transmits.
type ProofWithMetadata struct {
	Proof         ZKProof       `json:"proof"`
	PublicSignals PublicSignals `json:"public_signals"`
	Metadata      ProofMetadata `json:"metadata"`
}

// Commitment returns the score commitment from the public signals.
func (p ProofWithMetadata) Commitment() string {
	return p.PublicSignals.Commitment()
}

// VerificationResult reports the outcome of a verification attempt. An
// unavailable verification path is reported here as valid=false with an
// error string, never as a thrown error, so callers checking untrusted
// proofs can branch on "invalid" versus "could not check".
type VerificationResult struct {
	Valid              bool      `json:"valid"`
	Commitment         string    `json:"commitment,omitempty"`
	VerifiedAt         time.Time `json:"verified_at"`
	VerificationTimeMS int64     `json:"verification_time_ms"`

	// Populated only by the on-chain path.
	TxHash      string `json:"tx_hash,omitempty"`
	BlockNumber uint64 `json:"block_number,omitempty"`

	Error string `json:"error,omitempty"`
}
