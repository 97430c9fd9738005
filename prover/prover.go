// Package prover orchestrates compliance proof generation: it validates the
// claimed statement, encodes the entity identity into the scalar field and
// delegates witness proving to the external Groth16 toolchain.
package prover

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civium-platform/zk-compliance/field"
	"github.com/civium-platform/zk-compliance/toolchain"
	"github.com/civium-platform/zk-compliance/types"
)

// Toolchain produces a Groth16 proof for a named circuit from a witness
// input object. Implementations must be safe for concurrent use.
type Toolchain interface {
	Prove(ctx context.Context, circuit string, input any) (types.ZKProof, types.PublicSignals, error)
}

// Prover generates compliance proofs. It holds no mutable state; concurrent
// calls are independent.
type Prover struct {
	tc  Toolchain
	log zerolog.Logger
}

// New returns a prover backed by the snarkjs toolchain described by cfg.
func New(cfg toolchain.Config, log zerolog.Logger) *Prover {
	return NewWithToolchain(toolchain.NewSnarkJS(cfg, log), log)
}

// NewWithToolchain lets tests and alternative proving backends supply the
// engine directly.
func NewWithToolchain(tc Toolchain, log zerolog.Logger) *Prover {
	return &Prover{tc: tc, log: log.With().Str("component", "prover").Logger()}
}

// ProveThreshold generates a proof that the entity's score meets the
// threshold. The claim is validated before any toolchain work: a proof is
// never attempted for a false statement.
func (p *Prover) ProveThreshold(ctx context.Context, req types.ThresholdProofRequest) (types.ProofWithMetadata, error) {
	var empty types.ProofWithMetadata
	if err := req.Validate(); err != nil {
		return empty, err
	}
	entityHash := field.HashEntityID(req.EntityID)
	salt, err := resolveSalt(req.Salt)
	if err != nil {
		return empty, err
	}

	input := ThresholdInput{
		Threshold:  req.Threshold,
		EntityHash: entityHash,
		Score:      req.Score,
		Salt:       salt,
	}
	proof, signals, elapsed, err := p.run(ctx, CircuitThreshold, input)
	if err != nil {
		return empty, err
	}

	return types.ProofWithMetadata{
		Proof:         proof,
		PublicSignals: signals,
		Metadata: types.ProofMetadata{
			CircuitName:   CircuitThreshold,
			GeneratedAt:   time.Now().UTC(),
			ProvingTimeMS: elapsed.Milliseconds(),
			EntityHash:    entityHash,
			Params:        types.ThresholdParams{Threshold: req.Threshold},
		},
	}, nil
}

// ProveRange generates a proof that the score lies inside an inclusive
// range.
func (p *Prover) ProveRange(ctx context.Context, req types.RangeProofRequest) (types.ProofWithMetadata, error) {
	var empty types.ProofWithMetadata
	if err := req.Validate(); err != nil {
		return empty, err
	}
	entityHash := field.HashEntityID(req.EntityID)
	salt, err := resolveSalt(req.Salt)
	if err != nil {
		return empty, err
	}

	input := RangeInput{
		MinScore:   req.MinScore,
		MaxScore:   req.MaxScore,
		EntityHash: entityHash,
		Score:      req.Score,
		Salt:       salt,
	}
	proof, signals, elapsed, err := p.run(ctx, CircuitRange, input)
	if err != nil {
		return empty, err
	}

	return types.ProofWithMetadata{
		Proof:         proof,
		PublicSignals: signals,
		Metadata: types.ProofMetadata{
			CircuitName:   CircuitRange,
			GeneratedAt:   time.Now().UTC(),
			ProvingTimeMS: elapsed.Milliseconds(),
			EntityHash:    entityHash,
			Params:        types.RangeParams{MinScore: req.MinScore, MaxScore: req.MaxScore},
		},
	}, nil
}

// ProveTier generates a proof that the score falls inside the claimed
// tier's band.
func (p *Prover) ProveTier(ctx context.Context, req types.TierProofRequest) (types.ProofWithMetadata, error) {
	var empty types.ProofWithMetadata
	if err := req.Validate(); err != nil {
		return empty, err
	}
	entityHash := field.HashEntityID(req.EntityID)
	salt, err := resolveSalt(req.Salt)
	if err != nil {
		return empty, err
	}

	input := TierInput{
		TargetTier: req.Tier,
		EntityHash: entityHash,
		Score:      req.Score,
		Salt:       salt,
	}
	proof, signals, elapsed, err := p.run(ctx, CircuitTier, input)
	if err != nil {
		return empty, err
	}

	return types.ProofWithMetadata{
		Proof:         proof,
		PublicSignals: signals,
		Metadata: types.ProofMetadata{
			CircuitName:   CircuitTier,
			GeneratedAt:   time.Now().UTC(),
			ProvingTimeMS: elapsed.Milliseconds(),
			EntityHash:    entityHash,
			Params:        types.TierParams{Tier: req.Tier},
		},
	}, nil
}

func (p *Prover) run(ctx context.Context, circuit string, input any) (types.ZKProof, types.PublicSignals, time.Duration, error) {
	start := time.Now()
	proof, signals, err := p.tc.Prove(ctx, circuit, input)
	elapsed := time.Since(start)
	if err != nil {
		return proof, signals, elapsed, err
	}
	p.log.Debug().Str("circuit", circuit).Int64("proving_time_ms", elapsed.Milliseconds()).Msg("proof wrapped")
	return proof, signals, elapsed, nil
}

// resolveSalt generates a fresh salt, or validates a caller-supplied one
// (used for idempotent or reproducible proofs).
func resolveSalt(salt string) (string, error) {
	if salt == "" {
		return field.GenerateSalt()
	}
	if !field.IsElement(salt) {
		return "", fmt.Errorf("%w: salt is not a field element", types.ErrClaimInvalid)
	}
	return salt, nil
}
