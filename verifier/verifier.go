// Package verifier checks previously produced compliance proofs against the
// circuit verification keys, without ever learning the private score or
// salt. Verification outcomes are data, not control flow: a proof that
// cannot be checked is reported as invalid-with-error, never as a panic.
package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/civium-platform/zk-compliance/toolchain"
	"github.com/civium-platform/zk-compliance/types"
)

// Toolchain checks a proof for a named circuit. The diagnostics string
// carries the toolchain's stderr when the proof is rejected.
type Toolchain interface {
	Verify(ctx context.Context, circuit string, proof types.ZKProof, signals types.PublicSignals) (valid bool, diagnostics string, err error)
}

// Verifier checks compliance proofs off-chain via the external toolchain.
// The on-chain path is exposed but unavailable; see VerifyOnChain.
type Verifier struct {
	tc  Toolchain
	log zerolog.Logger
}

// New returns a verifier backed by the snarkjs toolchain described by cfg.
func New(cfg toolchain.Config, log zerolog.Logger) *Verifier {
	return NewWithToolchain(toolchain.NewSnarkJS(cfg, log), log)
}

// NewWithToolchain lets tests and alternative backends supply the engine.
func NewWithToolchain(tc Toolchain, log zerolog.Logger) *Verifier {
	return &Verifier{tc: tc, log: log.With().Str("component", "verifier").Logger()}
}

// VerifyOffChain checks the proof against the verification key for the
// circuit recorded in its metadata. A missing key yields valid=false with a
// descriptive error string rather than a returned error, because callers
// routinely check untrusted third-party proofs. The returned error is
// non-nil only for faults unrelated to the proof itself: a timeout or a
// local I/O failure.
func (v *Verifier) VerifyOffChain(ctx context.Context, proof types.ProofWithMetadata) (types.VerificationResult, error) {
	circuit := proof.Metadata.CircuitName

	start := time.Now()
	valid, diag, err := v.tc.Verify(ctx, circuit, proof.Proof, proof.PublicSignals)
	elapsed := time.Since(start).Milliseconds()

	switch {
	case errors.Is(err, toolchain.ErrSetup):
		return types.VerificationResult{
			Valid:              false,
			VerifiedAt:         time.Now().UTC(),
			VerificationTimeMS: elapsed,
			Error:              err.Error(),
		}, nil
	case err != nil:
		return types.VerificationResult{}, fmt.Errorf("verifying circuit %s: %w", circuit, err)
	}

	result := types.VerificationResult{
		Valid:              valid,
		Commitment:         proof.Commitment(),
		VerifiedAt:         time.Now().UTC(),
		VerificationTimeMS: elapsed,
	}
	if !valid {
		result.Error = diag
		if result.Error == "" {
			result.Error = fmt.Sprintf("proof rejected by verifier for circuit %s", circuit)
		}
	}
	return result, nil
}

// VerifyOnChain would call a deployed verifier contract over JSON-RPC. No
// such contract exists yet, so it reports the path as unavailable instead
// of guessing: callers must be able to tell "proof is invalid" apart from
// "verification path unavailable".
func (v *Verifier) VerifyOnChain(ctx context.Context, proof types.ProofWithMetadata, contractAddress, rpcURL string) (types.VerificationResult, error) {
	result := types.VerificationResult{
		Valid:      false,
		VerifiedAt: time.Now().UTC(),
	}
	if !common.IsHexAddress(contractAddress) {
		result.Error = fmt.Sprintf("invalid verifier contract address: %q", contractAddress)
		return result, nil
	}

	v.log.Info().
		Str("contract", contractAddress).
		Str("rpc_url", rpcURL).
		Str("circuit", proof.Metadata.CircuitName).
		Msg("on-chain verification requested but not implemented")

	result.Error = "on-chain verification not yet implemented"
	return result, nil
}

// VerifyThresholdProof verifies a threshold compliance proof. Pure
// pass-through to VerifyOffChain; the circuit name in the metadata already
// disambiguates the proof kind.
func (v *Verifier) VerifyThresholdProof(ctx context.Context, proof types.ProofWithMetadata) (types.VerificationResult, error) {
	return v.VerifyOffChain(ctx, proof)
}

// VerifyRangeProof verifies a range proof.
func (v *Verifier) VerifyRangeProof(ctx context.Context, proof types.ProofWithMetadata) (types.VerificationResult, error) {
	return v.VerifyOffChain(ctx, proof)
}

// VerifyTierProof verifies a tier membership proof.
func (v *Verifier) VerifyTierProof(ctx context.Context, proof types.ProofWithMetadata) (types.VerificationResult, error) {
	return v.VerifyOffChain(ctx, proof)
}
