// root.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var fBuildDir string

var rootCmd = &cobra.Command{
	Use:   "zkattest",
	Short: "generate and verify zero-knowledge account attestations",
	Long: `zkattest proves that a social account (age > 150 days, followers > 150)
is controlled by the holder of a secp256k1 key, without revealing the
account attributes or the signature.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fBuildDir, "dir", "build", "directory for circuit artifacts (constraint system, keys, proofs)")
}
