package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civium-platform/zk-compliance/verifier"
)

var fCalldataProofFile string

var calldataCmd = &cobra.Command{
	Use:   "calldata",
	Short: "print the Solidity verifier calldata for a proof",
	RunE: func(cmd *cobra.Command, args []string) error {
		proof, err := readProofFile(fCalldataProofFile)
		if err != nil {
			return err
		}
		bundle, err := verifier.GenerateSolidityCalldata(proof)
		if err != nil {
			return err
		}
		raw, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal calldata: %w", err)
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calldataCmd)
	calldataCmd.Flags().StringVar(&fCalldataProofFile, "proof", "", "proof JSON file produced by prove")
	calldataCmd.MarkFlagRequired("proof")
}
