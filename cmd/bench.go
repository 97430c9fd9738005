package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/civium-platform/zk-compliance/prover"
	"github.com/civium-platform/zk-compliance/types"
)

var fBenchRuns int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "measure proving latency against the configured toolchain",
	RunE:  runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	log := newLogger()
	p := prover.New(toolchainConfig(), log)

	var (
		total time.Duration
		min   time.Duration
		max   time.Duration
	)
	for i := 0; i < fBenchRuns; i++ {
		req := types.ThresholdProofRequest{
			EntityID:  fmt.Sprintf("bench-entity-%d", i),
			Score:     8000,
			Threshold: 7000,
		}
		start := time.Now()
		if _, err := p.ProveThreshold(cmd.Context(), req); err != nil {
			return fmt.Errorf("bench run %d: %w", i+1, err)
		}
		elapsed := time.Since(start)
		log.Info().Int("run", i+1).Dur("elapsed", elapsed).Msg("proof generated")

		total += elapsed
		if min == 0 || elapsed < min {
			min = elapsed
		}
		if elapsed > max {
			max = elapsed
		}
	}

	avg := total / time.Duration(fBenchRuns)
	fmt.Printf("runs: %d\nmin:  %s\navg:  %s\nmax:  %s\n", fBenchRuns, min, avg, max)
	if avg > 5*time.Second {
		fmt.Println("warning: average proving time exceeds the 5s target")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&fBenchRuns, "runs", 5, "number of threshold proofs to generate")
}
