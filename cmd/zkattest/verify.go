// verify.go
package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"zkattest-circuit/attest"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify a proof file against its public inputs",
	Run:   runVerify,
}

func runVerify(cmd *cobra.Command, args []string) {
	vk, err := attest.LoadVerifyingKey(fBuildDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load verifying key (run setup first)")
	}
	env, err := attest.ReadProofEnvelope(fBuildDir)
	if err != nil {
		log.Fatal().Err(err).Msg("read proof envelope")
	}
	proof, public, err := env.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("open proof envelope")
	}
	if err := attest.Verify(proof, vk, public); err != nil {
		log.Fatal().Err(err).Msg("proof rejected")
	}
	log.Info().Msg("proof verified")
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
