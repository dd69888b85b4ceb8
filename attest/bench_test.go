// bench_test.go
package attest

import (
	"crypto/ecdsa"
	"crypto/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
)

func BenchmarkAttestation(b *testing.B) {
	sk, err := ecdsa.GenerateKey(eth_crypto.S256(), rand.Reader)
	if err != nil {
		b.Fatalf("failed to generate key: %v", err)
	}
	nonce, err := NewNonce()
	if err != nil {
		b.Fatalf("failed to draw nonce: %v", err)
	}
	claim := AccountClaim{Handle: "alice123", AccountAgeDays: 200, Followers: 500}
	assignment, err := BuildAssignment(claim, nonce, sk)
	if err != nil {
		b.Fatalf("failed to build assignment: %v", err)
	}

	cs, err := Compile()
	if err != nil {
		b.Fatalf("failed to compile: %v", err)
	}

	var pk groth16.ProvingKey
	var vk groth16.VerifyingKey
	b.Run("Groth16/Setup", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			pk, vk, err = Setup(cs)
			if err != nil {
				b.Fatalf("failed to setup: %v", err)
			}
		}
	})

	var fullWitness witness.Witness
	b.Run("WitnessCreation", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fullWitness, err = frontend.NewWitness(assignment, ecc.BN254.ScalarField())
			if err != nil {
				b.Fatalf("failed to create witness: %v", err)
			}
		}
	})

	publicWitness, err := fullWitness.Public()
	if err != nil {
		b.Fatalf("failed to get public witness: %v", err)
	}

	b.ResetTimer()

	var proof groth16.Proof
	b.Run("Groth16/Prove", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			proof, err = groth16.Prove(cs, pk, fullWitness)
			if err != nil {
				b.Fatalf("failed to prove: %v", err)
			}
		}
	})

	b.Run("Groth16/Verify", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			err = groth16.Verify(proof, vk, publicWitness)
			if err != nil {
				b.Fatalf("failed to verify: %v", err)
			}
		}
	})
}
