package prover

// Circuit names as laid out by the circuit build step under the build
// directory.
const (
	CircuitThreshold = "compliance_threshold"
	CircuitRange     = "range_proof"
	CircuitTier      = "tier_membership"
)

// Witness inputs for the three circuits. JSON keys must match the circuit
// signal names exactly; entityHash and salt travel as decimal strings
// because they exceed the safe integer range of JSON numbers.

// ThresholdInput is the witness for compliance_threshold: proves
// score >= threshold. threshold and entityHash are public, score and salt
// private.
type ThresholdInput struct {
	Threshold  int    `json:"threshold"`
	EntityHash string `json:"entityHash"`
	Score      int    `json:"score"`
	Salt       string `json:"salt"`
}

// RangeInput is the witness for range_proof: proves
// minScore <= score <= maxScore.
type RangeInput struct {
	MinScore   int    `json:"minScore"`
	MaxScore   int    `json:"maxScore"`
	EntityHash string `json:"entityHash"`
	Score      int    `json:"score"`
	Salt       string `json:"salt"`
}

// TierInput is the witness for tier_membership: proves the score lies in
// the claimed tier's band.
type TierInput struct {
	TargetTier int    `json:"targetTier"`
	EntityHash string `json:"entityHash"`
	Score      int    `json:"score"`
	Salt       string `json:"salt"`
}
