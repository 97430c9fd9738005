package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProof() ZKProof {
	return NewZKProof(
		[]string{"1", "2", "1"},
		[][]string{{"3", "4"}, {"5", "6"}, {"1", "0"}},
		[]string{"7", "8", "1"},
	)
}

func TestNewZKProofFixesProtocolAndCurve(t *testing.T) {
	p := sampleProof()
	assert.Equal(t, "groth16", p.Protocol)
	assert.Equal(t, "bn128", p.Curve)
}

func TestToCalldataOrdering(t *testing.T) {
	words, err := sampleProof().ToCalldata()
	require.NoError(t, err)
	for i, want := range []int64{1, 2, 3, 4, 5, 6, 7, 8} {
		assert.Zero(t, words[i].Cmp(big.NewInt(want)), "word %d", i)
	}
}

func TestToCalldataRejectsMalformedPoints(t *testing.T) {
	p := sampleProof()
	p.PiB = [][]string{{"3"}}
	_, err := p.ToCalldata()
	assert.Error(t, err)

	p = sampleProof()
	p.PiA = []string{"1"}
	_, err = p.ToCalldata()
	assert.Error(t, err)
}

func TestToCalldataRejectsNonDecimalCoordinate(t *testing.T) {
	p := sampleProof()
	p.PiC[0] = "0xdead"
	_, err := p.ToCalldata()
	assert.Error(t, err)
}

func TestHexRoundTrip(t *testing.T) {
	p := sampleProof()
	encoded, err := p.ToHex()
	require.NoError(t, err)

	decoded, err := ZKProofFromHex(encoded)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)

	// The encoding itself must be stable, not merely equality-preserving.
	reencoded, err := decoded.ToHex()
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestZKProofFromHexRejectsGarbage(t *testing.T) {
	_, err := ZKProofFromHex("zz")
	assert.Error(t, err)

	_, err = ZKProofFromHex("abcdef")
	assert.Error(t, err)
}

func TestCommitmentIsLastSignal(t *testing.T) {
	assert.Equal(t, "999", PublicSignals{Signals: []string{"1", "2", "999"}}.Commitment())
	assert.Equal(t, "8000", PublicSignals{Signals: []string{"8000"}}.Commitment())
	assert.Equal(t, "", PublicSignals{}.Commitment())
}

func TestToIntList(t *testing.T) {
	ints, err := PublicSignals{Signals: []string{"10", "20"}}.ToIntList()
	require.NoError(t, err)
	require.Len(t, ints, 2)
	assert.Zero(t, ints[0].Cmp(big.NewInt(10)))
	assert.Zero(t, ints[1].Cmp(big.NewInt(20)))

	_, err = PublicSignals{Signals: []string{"ten"}}.ToIntList()
	assert.Error(t, err)
}
