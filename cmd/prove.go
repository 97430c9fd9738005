package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civium-platform/zk-compliance/prover"
	"github.com/civium-platform/zk-compliance/types"
)

var (
	fEntityID string
	fScore    int
	fSalt     string
	fOut      string

	fThreshold int
	fMinScore  int
	fMaxScore  int
	fTier      int
)

var proveCmd = &cobra.Command{
	Use:   "prove [threshold|range|tier]",
	Short: "generate a compliance proof and write it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProve,
}

func runProve(cmd *cobra.Command, args []string) error {
	log := newLogger()
	p := prover.New(toolchainConfig(), log)
	ctx := cmd.Context()

	var (
		proof types.ProofWithMetadata
		err   error
	)
	switch args[0] {
	case "threshold":
		proof, err = p.ProveThreshold(ctx, types.ThresholdProofRequest{
			EntityID: fEntityID, Score: fScore, Threshold: fThreshold, Salt: fSalt,
		})
	case "range":
		proof, err = p.ProveRange(ctx, types.RangeProofRequest{
			EntityID: fEntityID, Score: fScore, MinScore: fMinScore, MaxScore: fMaxScore, Salt: fSalt,
		})
	case "tier":
		proof, err = p.ProveTier(ctx, types.TierProofRequest{
			EntityID: fEntityID, Score: fScore, Tier: fTier, Salt: fSalt,
		})
	default:
		return fmt.Errorf("unknown proof kind %q, want threshold, range or tier", args[0])
	}
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal proof: %w", err)
	}
	if fOut == "" || fOut == "-" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(fOut, raw, 0o644); err != nil {
		return fmt.Errorf("write proof file: %w", err)
	}
	log.Info().Str("path", fOut).Str("commitment", proof.Commitment()).Msg("proof written")
	return nil
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&fEntityID, "entity-id", "", "entity identifier (e.g. an LEI)")
	proveCmd.Flags().IntVar(&fScore, "score", 0, "compliance score (0-10000)")
	proveCmd.Flags().StringVar(&fSalt, "salt", "", "optional salt override for reproducible proofs")
	proveCmd.Flags().StringVar(&fOut, "out", "-", "output file, or - for stdout")
	proveCmd.Flags().IntVar(&fThreshold, "threshold", 0, "minimum threshold (threshold proofs)")
	proveCmd.Flags().IntVar(&fMinScore, "min-score", 0, "range minimum (range proofs)")
	proveCmd.Flags().IntVar(&fMaxScore, "max-score", 0, "range maximum (range proofs)")
	proveCmd.Flags().IntVar(&fTier, "tier", 0, "claimed tier 1-5 (tier proofs)")
	proveCmd.MarkFlagRequired("entity-id")
	proveCmd.MarkFlagRequired("score")
}
