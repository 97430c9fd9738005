// Package cmd wires the proving and verification orchestrators into a CLI
// for operators and the serve surface the other Civium services consume.
package cmd

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/civium-platform/zk-compliance/toolchain"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "civium-zk",
	Short: "generate and verify zero-knowledge compliance proofs",
	Long: `civium-zk wraps the snarkjs Groth16 toolchain to prove compliance
statements (threshold, range, tier membership) about an entity's score
without revealing the score itself.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./civium-zk.yaml)")
	rootCmd.PersistentFlags().String("build-dir", "circuits/build", "circuit build directory holding proving and verification keys")
	rootCmd.PersistentFlags().String("toolchain", "snarkjs", "snarkjs executable or wrapper script")
	rootCmd.PersistentFlags().Duration("timeout", toolchain.DefaultTimeout, "deadline for a single toolchain invocation")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	for flag, key := range map[string]string{
		"build-dir": "build_dir",
		"toolchain": "toolchain",
		"timeout":   "timeout",
		"verbose":   "verbose",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("civium-zk")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("CIVIUM_ZK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A config file is optional; flags and env are enough on their own.
	_ = viper.ReadInConfig()
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func toolchainConfig() toolchain.Config {
	return toolchain.Config{
		BuildDir:      viper.GetString("build_dir"),
		ToolchainPath: viper.GetString("toolchain"),
		Timeout:       viper.GetDuration("timeout"),
	}
}
