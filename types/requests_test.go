package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdRequestValidate(t *testing.T) {
	ok := ThresholdProofRequest{EntityID: "LEI-1", Score: 8500, Threshold: 8000}
	assert.NoError(t, ok.Validate())

	equal := ThresholdProofRequest{EntityID: "LEI-1", Score: 8000, Threshold: 8000}
	assert.NoError(t, equal.Validate())

	below := ThresholdProofRequest{EntityID: "LEI-1", Score: 7999, Threshold: 8000}
	err := below.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClaimInvalid))

	tooBig := ThresholdProofRequest{EntityID: "LEI-1", Score: 10001, Threshold: 8000}
	assert.ErrorIs(t, tooBig.Validate(), ErrClaimInvalid)

	negative := ThresholdProofRequest{EntityID: "LEI-1", Score: 5000, Threshold: -1}
	assert.ErrorIs(t, negative.Validate(), ErrClaimInvalid)

	noEntity := ThresholdProofRequest{Score: 8500, Threshold: 8000}
	assert.ErrorIs(t, noEntity.Validate(), ErrClaimInvalid)
}

func TestRangeRequestValidate(t *testing.T) {
	ok := RangeProofRequest{EntityID: "LEI-1", Score: 8000, MinScore: 7000, MaxScore: 9000}
	assert.NoError(t, ok.Validate())

	edges := RangeProofRequest{EntityID: "LEI-1", Score: 7000, MinScore: 7000, MaxScore: 7000}
	assert.NoError(t, edges.Validate())

	belowMin := RangeProofRequest{EntityID: "LEI-1", Score: 6999, MinScore: 7000, MaxScore: 9000}
	assert.ErrorIs(t, belowMin.Validate(), ErrClaimInvalid)

	aboveMax := RangeProofRequest{EntityID: "LEI-1", Score: 9001, MinScore: 7000, MaxScore: 9000}
	assert.ErrorIs(t, aboveMax.Validate(), ErrClaimInvalid)

	inverted := RangeProofRequest{EntityID: "LEI-1", Score: 8000, MinScore: 9000, MaxScore: 7000}
	assert.ErrorIs(t, inverted.Validate(), ErrClaimInvalid)

	outOfDomain := RangeProofRequest{EntityID: "LEI-1", Score: 8000, MinScore: 0, MaxScore: 10001}
	assert.ErrorIs(t, outOfDomain.Validate(), ErrClaimInvalid)
}

func TestTierRequestValidate(t *testing.T) {
	cases := []struct {
		score int
		tier  int
		valid bool
	}{
		{9500, 1, true},
		{10000, 1, true},
		{9499, 1, false},
		{8000, 1, false},
		{9499, 2, true},
		{8500, 2, true},
		{8499, 2, false},
		{8499, 3, true},
		{7000, 3, true},
		{6999, 4, true},
		{5000, 4, true},
		{4999, 5, true},
		{5000, 5, false},
		{0, 5, true},
	}
	for _, c := range cases {
		req := TierProofRequest{EntityID: "LEI-1", Score: c.score, Tier: c.tier}
		err := req.Validate()
		if c.valid {
			assert.NoError(t, err, "score %d tier %d", c.score, c.tier)
		} else {
			assert.ErrorIs(t, err, ErrClaimInvalid, "score %d tier %d", c.score, c.tier)
		}
	}

	badTier := TierProofRequest{EntityID: "LEI-1", Score: 5000, Tier: 6}
	assert.ErrorIs(t, badTier.Validate(), ErrClaimInvalid)

	zeroTier := TierProofRequest{EntityID: "LEI-1", Score: 5000, Tier: 0}
	assert.ErrorIs(t, zeroTier.Validate(), ErrClaimInvalid)
}

func TestTierBoundsCoverScaleWithoutOverlap(t *testing.T) {
	covered := make(map[int]int)
	for tier := 1; tier <= 5; tier++ {
		minScore, maxScore, ok := TierBounds(tier)
		require.True(t, ok)
		require.LessOrEqual(t, minScore, maxScore)
		covered[minScore]++
		covered[maxScore]++
	}
	// Adjacent bands abut exactly: tier N's min is one above tier N+1's max.
	for tier := 1; tier < 5; tier++ {
		lowerMin, _, _ := TierBounds(tier)
		_, upperMax, _ := TierBounds(tier + 1)
		assert.Equal(t, lowerMin, upperMax+1)
	}
	_, _, ok := TierBounds(0)
	assert.False(t, ok)
}
