// setup.go
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"zkattest-circuit/attest"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "compile the attestation circuit and run the Groth16 trusted setup",
	Run:   runSetup,
}

func runSetup(cmd *cobra.Command, args []string) {
	if err := os.MkdirAll(fBuildDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create build directory")
	}

	log.Info().Msg("compiling attestation circuit")
	cs, err := attest.Compile()
	if err != nil {
		log.Fatal().Err(err).Msg("compile")
	}
	log.Info().Int("constraints", cs.GetNbConstraints()).Msg("circuit compiled")

	log.Info().Msg("running Groth16 setup")
	pk, vk, err := attest.Setup(cs)
	if err != nil {
		log.Fatal().Err(err).Msg("setup")
	}

	if err := attest.SaveArtifacts(fBuildDir, cs, pk, vk); err != nil {
		log.Fatal().Err(err).Msg("save artifacts")
	}
	if err := attest.ExportSolidityVerifier(fBuildDir, vk); err != nil {
		log.Fatal().Err(err).Msg("export solidity verifier")
	}
	log.Info().Str("dir", fBuildDir).Msg("setup artifacts written")
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
