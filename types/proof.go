// Package types defines the data contracts of the Civium ZK compliance
// module: the Groth16 proof wire format, public signals, proof metadata and
// the validated request types for the three proof kinds.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
)

// ZKProof is a Groth16 proof in the snarkjs JSON layout: pi_a and pi_c are
// G1 points as length-3 arrays of decimal coordinate strings (trailing "1"),
// pi_b is a G2 point as a 3x2 nested array. Proofs are value objects and are
// never mutated after production.
type ZKProof struct {
	PiA      []string   `json:"pi_a"`
	PiB      [][]string `json:"pi_b"`
	PiC      []string   `json:"pi_c"`
	Protocol string     `json:"protocol"`
	Curve    string     `json:"curve"`
}

// NewZKProof builds a proof from its three point groups, fixing the protocol
// and curve identifiers.
func NewZKProof(piA []string, piB [][]string, piC []string) ZKProof {
	return ZKProof{
		PiA:      piA,
		PiB:      piB,
		PiC:      piC,
		Protocol: "groth16",
		Curve:    "bn128",
	}
}

// ToCalldata flattens the proof into the eight uint256 words a Solidity
// Groth16 verifier expects: a[0], a[1], b[0][0], b[0][1], b[1][0], b[1][1],
// c[0], c[1].
func (p ZKProof) ToCalldata() ([8]*big.Int, error) {
	var out [8]*big.Int
	if len(p.PiA) < 2 || len(p.PiC) < 2 ||
		len(p.PiB) < 2 || len(p.PiB[0]) < 2 || len(p.PiB[1]) < 2 {
		return out, fmt.Errorf("malformed proof points: need pi_a[2], pi_b[2][2], pi_c[2]")
	}
	coords := [8]string{
		p.PiA[0], p.PiA[1],
		p.PiB[0][0], p.PiB[0][1],
		p.PiB[1][0], p.PiB[1][1],
		p.PiC[0], p.PiC[1],
	}
	for i, c := range coords {
		v, ok := new(big.Int).SetString(c, 10)
		if !ok {
			return out, fmt.Errorf("proof coordinate %d is not a decimal integer: %q", i, c)
		}
		out[i] = v
	}
	return out, nil
}

// ToHex serializes the proof to hex-encoded JSON, the storage and transport
// format exchanged between services. Round-trips byte for byte through
// ZKProofFromHex.
func (p ZKProof) ToHex() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal proof: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// ZKProofFromHex decodes a proof previously produced by ToHex.
func ZKProofFromHex(s string) (ZKProof, error) {
	var p ZKProof
	raw, err := hex.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("decode proof hex: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("unmarshal proof: %w", err)
	}
	return p, nil
}

// PublicSignals is the ordered sequence of decimal field elements a circuit
// outputs alongside its proof. By circuit convention the last signal is the
// commitment binding the private score and salt; that ordering is part of
// the wire contract.
type PublicSignals struct {
	Signals []string `json:"signals"`
}

// Commitment returns the score commitment, or "" when there are no signals.
func (s PublicSignals) Commitment() string {
	if len(s.Signals) == 0 {
		return ""
	}
	return s.Signals[len(s.Signals)-1]
}

// ToIntList converts the signals to integers for on-chain consumption.
func (s PublicSignals) ToIntList() ([]*big.Int, error) {
	out := make([]*big.Int, len(s.Signals))
	for i, sig := range s.Signals {
		v, ok := new(big.Int).SetString(sig, 10)
		if !ok {
			return nil, fmt.Errorf("public signal %d is not a decimal integer: %q", i, sig)
		}
		out[i] = v
	}
	return out, nil
}
