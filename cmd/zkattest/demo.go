// demo.go
package main

import (
	"crypto/ecdsa"
	"crypto/rand"
	"time"

	eth_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"zkattest-circuit/attest"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "run the full attestation flow in memory with a fresh key",
	Run:   runDemo,
}

func runDemo(cmd *cobra.Command, args []string) {
	log.Info().Msg("part 0: generating demo identity and wallet key")
	sk, err := ecdsa.GenerateKey(eth_crypto.S256(), rand.Reader)
	if err != nil {
		log.Fatal().Err(err).Msg("generate key")
	}
	claim := attest.AccountClaim{Handle: "alice123", AccountAgeDays: 200, Followers: 500}
	nonce, err := attest.NewNonce()
	if err != nil {
		log.Fatal().Err(err).Msg("draw nonce")
	}

	log.Info().Msg("part 1: compiling circuit")
	cs, err := attest.Compile()
	if err != nil {
		log.Fatal().Err(err).Msg("compile")
	}
	log.Info().Int("constraints", cs.GetNbConstraints()).Msg("circuit compiled")

	log.Info().Msg("part 2: running Groth16 setup")
	pk, vk, err := attest.Setup(cs)
	if err != nil {
		log.Fatal().Err(err).Msg("setup")
	}

	log.Info().Msg("part 3: building witness")
	assignment, err := attest.BuildAssignment(claim, nonce, sk)
	if err != nil {
		log.Fatal().Err(err).Msg("build assignment")
	}

	log.Info().Msg("part 4: generating proof")
	start := time.Now()
	proof, public, err := attest.Prove(cs, pk, assignment)
	if err != nil {
		log.Fatal().Err(err).Msg("prove")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("proof generated")

	log.Info().Msg("part 5: verifying proof")
	if err := attest.Verify(proof, vk, public); err != nil {
		log.Fatal().Err(err).Msg("verify")
	}
	log.Info().Msg("proof verified")
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
