// prover_test.go
package attest

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestEndToEndProof(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Groth16 end-to-end in short mode")
	}

	cs, err := Compile()
	require.NoError(t, err)
	pk, vk, err := Setup(cs)
	require.NoError(t, err)

	sk, err := ecdsa.GenerateKey(eth_crypto.S256(), rand.Reader)
	require.NoError(t, err)
	nonce, err := NewNonce()
	require.NoError(t, err)
	claim := AccountClaim{Handle: "alice123", AccountAgeDays: 200, Followers: 500}
	assignment, err := BuildAssignment(claim, nonce, sk)
	require.NoError(t, err)

	proof, public, err := Prove(cs, pk, assignment)
	require.NoError(t, err)
	require.NoError(t, Verify(proof, vk, public))

	// the envelope must round-trip through JSON and still verify
	env, err := NewProofEnvelope(proof, public)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	var parsed ProofEnvelope
	require.NoError(t, json.Unmarshal(data, &parsed))
	proof2, public2, err := parsed.Open()
	require.NoError(t, err)
	require.NoError(t, Verify(proof2, vk, public2))

	// tampering with a public input must fail verification
	messageHash := eth_crypto.Keccak256(AttestationMessage(IdentityHash(claim.Handle), nonce))
	tamperedHash := make([]byte, len(messageHash))
	copy(tamperedHash, messageHash)
	tamperedHash[0] ^= 1
	tampered := PublicAssignment(tamperedHash, &sk.PublicKey)
	tamperedWitness, err := frontend.NewWitness(tampered, ecc.BN254.ScalarField(), frontend.PublicOnly())
	require.NoError(t, err)
	require.Error(t, Verify(proof, vk, tamperedWitness))

	// a claim below the threshold can never produce a proof
	badClaim := AccountClaim{Handle: "alice123", AccountAgeDays: 150, Followers: 500}
	badAssignment, err := BuildAssignment(badClaim, nonce, sk)
	require.NoError(t, err)
	_, _, err = Prove(cs, pk, badAssignment)
	require.Error(t, err)
}
