// prove.go
package main

import (
	"crypto/ecdsa"
	"crypto/rand"
	"strings"
	"time"

	eth_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"zkattest-circuit/attest"
)

var (
	fHandle    string
	fAgeDays   uint32
	fFollowers uint32
	fKeyHex    string
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "build a witness for the account claim and generate a proof",
	Run:   runProve,
}

func runProve(cmd *cobra.Command, args []string) {
	cs, err := attest.LoadConstraintSystem(fBuildDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load constraint system (run setup first)")
	}
	pk, err := attest.LoadProvingKey(fBuildDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load proving key (run setup first)")
	}

	var sk *ecdsa.PrivateKey
	if fKeyHex != "" {
		sk, err = eth_crypto.HexToECDSA(strings.TrimPrefix(fKeyHex, "0x"))
		if err != nil {
			log.Fatal().Err(err).Msg("parse signing key")
		}
	} else {
		sk, err = ecdsa.GenerateKey(eth_crypto.S256(), rand.Reader)
		if err != nil {
			log.Fatal().Err(err).Msg("generate signing key")
		}
		log.Warn().Msg("no --key given, using an ephemeral signing key")
	}

	nonce, err := attest.NewNonce()
	if err != nil {
		log.Fatal().Err(err).Msg("draw nonce")
	}
	claim := attest.AccountClaim{
		Handle:         fHandle,
		AccountAgeDays: fAgeDays,
		Followers:      fFollowers,
	}
	assignment, err := attest.BuildAssignment(claim, nonce, sk)
	if err != nil {
		log.Fatal().Err(err).Msg("build assignment")
	}

	log.Info().Str("handle", fHandle).Msg("generating proof")
	start := time.Now()
	proof, public, err := attest.Prove(cs, pk, assignment)
	if err != nil {
		// threshold and signature violations land here: no proof exists
		log.Fatal().Err(err).Msg("prove")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("proof generated")

	env, err := attest.NewProofEnvelope(proof, public)
	if err != nil {
		log.Fatal().Err(err).Msg("build proof envelope")
	}
	if err := attest.WriteProofEnvelope(fBuildDir, env); err != nil {
		log.Fatal().Err(err).Msg("write proof envelope")
	}
	log.Info().Str("dir", fBuildDir).Str("file", attest.ProofFile).Msg("proof written")
}

func init() {
	proveCmd.Flags().StringVar(&fHandle, "handle", "", "platform account handle")
	proveCmd.Flags().Uint32Var(&fAgeDays, "age-days", 0, "account age in days")
	proveCmd.Flags().Uint32Var(&fFollowers, "followers", 0, "account follower count")
	proveCmd.Flags().StringVar(&fKeyHex, "key", "", "hex-encoded secp256k1 private key (ephemeral key if empty)")
	proveCmd.MarkFlagRequired("handle")
	proveCmd.MarkFlagRequired("age-days")
	proveCmd.MarkFlagRequired("followers")
	rootCmd.AddCommand(proveCmd)
}
