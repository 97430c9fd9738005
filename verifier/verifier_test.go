package verifier

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civium-platform/zk-compliance/toolchain"
	"github.com/civium-platform/zk-compliance/types"
)

type fakeToolchain struct {
	valid bool
	diag  string
	err   error

	calls    int
	circuits []string
}

func (f *fakeToolchain) Verify(_ context.Context, circuit string, _ types.ZKProof, _ types.PublicSignals) (bool, string, error) {
	f.calls++
	f.circuits = append(f.circuits, circuit)
	return f.valid, f.diag, f.err
}

func sampleProof() types.ProofWithMetadata {
	return types.ProofWithMetadata{
		Proof: types.NewZKProof(
			[]string{"1", "2", "1"},
			[][]string{{"3", "4"}, {"5", "6"}, {"1", "0"}},
			[]string{"7", "8", "1"},
		),
		PublicSignals: types.PublicSignals{Signals: []string{"8000"}},
		Metadata: types.ProofMetadata{
			CircuitName: "compliance_threshold",
			EntityHash:  "42",
			Params:      types.ThresholdParams{Threshold: 8000},
		},
	}
}

func TestVerifyOffChainValid(t *testing.T) {
	fake := &fakeToolchain{valid: true}
	v := NewWithToolchain(fake, zerolog.Nop())

	res, err := v.VerifyOffChain(context.Background(), sampleProof())
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.Equal(t, "8000", res.Commitment)
	assert.Empty(t, res.Error)
	assert.GreaterOrEqual(t, res.VerificationTimeMS, int64(0))
	assert.False(t, res.VerifiedAt.IsZero())
	assert.Equal(t, []string{"compliance_threshold"}, fake.circuits)
}

func TestVerifyOffChainInvalid(t *testing.T) {
	fake := &fakeToolchain{valid: false, diag: "[ERROR] snarkJS: Invalid proof"}
	v := NewWithToolchain(fake, zerolog.Nop())

	res, err := v.VerifyOffChain(context.Background(), sampleProof())
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "Invalid proof")
}

func TestVerifyOffChainInvalidWithoutDiagnostics(t *testing.T) {
	fake := &fakeToolchain{valid: false}
	v := NewWithToolchain(fake, zerolog.Nop())

	res, err := v.VerifyOffChain(context.Background(), sampleProof())
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Error)
}

func TestVerifyOffChainMissingKeyIsDataNotError(t *testing.T) {
	fake := &fakeToolchain{err: fmt.Errorf("%w: verification key not found: /nope", toolchain.ErrSetup)}
	v := NewWithToolchain(fake, zerolog.Nop())

	res, err := v.VerifyOffChain(context.Background(), sampleProof())
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "verification key not found")
	assert.Empty(t, res.Commitment)
}

func TestVerifyOffChainTimeoutIsError(t *testing.T) {
	fake := &fakeToolchain{err: fmt.Errorf("killed: %w", toolchain.ErrVerifyTimeout)}
	v := NewWithToolchain(fake, zerolog.Nop())

	_, err := v.VerifyOffChain(context.Background(), sampleProof())
	assert.ErrorIs(t, err, toolchain.ErrVerifyTimeout)
}

func TestVerifyOffChainLocalFaultIsError(t *testing.T) {
	boom := errors.New("disk full")
	fake := &fakeToolchain{err: boom}
	v := NewWithToolchain(fake, zerolog.Nop())

	_, err := v.VerifyOffChain(context.Background(), sampleProof())
	assert.ErrorIs(t, err, boom)
}

func TestVerifyOnChainUnavailable(t *testing.T) {
	v := NewWithToolchain(&fakeToolchain{}, zerolog.Nop())

	res, err := v.VerifyOnChain(context.Background(), sampleProof(),
		"0x1234567890123456789012345678901234567890", "http://localhost:8545")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "not yet implemented")
}

func TestVerifyOnChainRejectsBadAddress(t *testing.T) {
	v := NewWithToolchain(&fakeToolchain{}, zerolog.Nop())

	res, err := v.VerifyOnChain(context.Background(), sampleProof(), "not-an-address", "http://localhost:8545")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "not-an-address")
}

func TestConvenienceWrappersPassThrough(t *testing.T) {
	fake := &fakeToolchain{valid: true}
	v := NewWithToolchain(fake, zerolog.Nop())
	ctx := context.Background()
	proof := sampleProof()

	for _, verify := range []func(context.Context, types.ProofWithMetadata) (types.VerificationResult, error){
		v.VerifyThresholdProof, v.VerifyRangeProof, v.VerifyTierProof,
	} {
		res, err := verify(ctx, proof)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	}
	assert.Equal(t, 3, fake.calls)
}
