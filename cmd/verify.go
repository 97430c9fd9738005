package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civium-platform/zk-compliance/types"
	"github.com/civium-platform/zk-compliance/verifier"
)

var fProofFile string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify a previously generated proof off-chain",
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	proof, err := readProofFile(fProofFile)
	if err != nil {
		return err
	}

	v := verifier.New(toolchainConfig(), newLogger())
	result, err := v.VerifyOffChain(cmd.Context(), proof)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(raw))

	if !result.Valid {
		return fmt.Errorf("proof is not valid: %s", result.Error)
	}
	return nil
}

func readProofFile(path string) (types.ProofWithMetadata, error) {
	var proof types.ProofWithMetadata
	raw, err := os.ReadFile(path)
	if err != nil {
		return proof, fmt.Errorf("read proof file: %w", err)
	}
	if err := json.Unmarshal(raw, &proof); err != nil {
		return proof, fmt.Errorf("parse proof file: %w", err)
	}
	return proof, nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fProofFile, "proof", "", "proof JSON file produced by prove")
	verifyCmd.MarkFlagRequired("proof")
}
