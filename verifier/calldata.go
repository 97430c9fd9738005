package verifier

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/civium-platform/zk-compliance/types"
)

// CalldataBundle bridges a proof to a Groth16 verifier contract call in the
// conventional verifyProof(uint256[8], uint256[]) shape.
type CalldataBundle struct {
	Proof        [8]*big.Int   `json:"proof"`
	PublicInputs []*big.Int    `json:"publicInputs"`
	SolidityCall string        `json:"solidityCall"`
	Packed       hexutil.Bytes `json:"packed"`
}

// GenerateSolidityCalldata flattens a proof and its public signals for an
// on-chain verifier call. Pure: no I/O, no verification.
func GenerateSolidityCalldata(proof types.ProofWithMetadata) (*CalldataBundle, error) {
	words, err := proof.Proof.ToCalldata()
	if err != nil {
		return nil, err
	}
	inputs, err := proof.PublicSignals.ToIntList()
	if err != nil {
		return nil, err
	}

	packed := make([]byte, 0, 32*(len(words)+len(inputs)))
	var word [32]byte
	for i, w := range append(words[:], inputs...) {
		if w.BitLen() > 256 {
			return nil, fmt.Errorf("calldata word %d exceeds uint256", i)
		}
		w.FillBytes(word[:])
		packed = append(packed, word[:]...)
	}

	return &CalldataBundle{
		Proof:        words,
		PublicInputs: inputs,
		SolidityCall: fmt.Sprintf("verifyProof(%s, %s)", formatInts(words[:]), formatInts(inputs)),
		Packed:       packed,
	}, nil
}

func formatInts(values []*big.Int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
