// circuit_test.go
package circuits_test

import (
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"zkattest-circuit/attest"
	"zkattest-circuit/circuits"
)

func buildValidAssignment(t *testing.T, ageDays, followers uint32) *circuits.AttestationCircuit {
	t.Helper()
	sk, err := ecdsa.GenerateKey(eth_crypto.S256(), rand.Reader)
	require.NoError(t, err)
	nonce, err := attest.NewNonce()
	require.NoError(t, err)
	claim := attest.AccountClaim{Handle: "alice123", AccountAgeDays: ageDays, Followers: followers}
	assignment, err := attest.BuildAssignment(claim, nonce, sk)
	require.NoError(t, err)
	return assignment
}

func solve(assignment *circuits.AttestationCircuit) error {
	return test.IsSolved(&circuits.AttestationCircuit{}, assignment, ecc.BN254.ScalarField())
}

func TestAttestationSatisfied(t *testing.T) {
	require.NoError(t, solve(buildValidAssignment(t, 200, 500)))
}

func TestThresholdBoundaries(t *testing.T) {
	cases := []struct {
		name          string
		ageDays       uint32
		followers     uint32
		shouldSatisfy bool
	}{
		{"age at threshold fails", 150, 1000, false},
		{"age below threshold fails", 10, 1000, false},
		{"followers at threshold fails", 151, 150, false},
		{"followers below threshold fails", 151, 3, false},
		{"both just above threshold pass", 151, 151, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := solve(buildValidAssignment(t, tc.ageDays, tc.followers))
			if tc.shouldSatisfy {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestClaimedKeyMismatchFails(t *testing.T) {
	assignment := buildValidAssignment(t, 200, 500)
	xLo, ok := assignment.ClaimedPubKeyXLo.(*big.Int)
	require.True(t, ok)
	assignment.ClaimedPubKeyXLo = new(big.Int).Add(xLo, big.NewInt(1))
	require.Error(t, solve(assignment))
}

func TestIdentityBindingEnforced(t *testing.T) {
	assignment := buildValidAssignment(t, 200, 500)

	// a different identity commitment no longer hashes to the signed message
	otherIdentity := attest.IdentityHash("mallory456")
	assignment.IdentityHash = otherIdentity
	require.Error(t, solve(assignment))
}

func TestNonceBindingEnforced(t *testing.T) {
	assignment := buildValidAssignment(t, 200, 500)
	nonce, ok := assignment.Nonce.(*big.Int)
	require.True(t, ok)
	assignment.Nonce = new(big.Int).Add(nonce, big.NewInt(1))
	require.Error(t, solve(assignment))
}

func TestZeroSignatureRejected(t *testing.T) {
	t.Run("r is zero", func(t *testing.T) {
		assignment := buildValidAssignment(t, 200, 500)
		assignment.SigRHi = 0
		assignment.SigRLo = 0
		require.Error(t, solve(assignment))
	})
	t.Run("s is zero", func(t *testing.T) {
		assignment := buildValidAssignment(t, 200, 500)
		assignment.SigSHi = 0
		assignment.SigSLo = 0
		require.Error(t, solve(assignment))
	})
}

func TestRecoveryIdFlipFails(t *testing.T) {
	assignment := buildValidAssignment(t, 200, 500)
	v, ok := assignment.SigV.(int64)
	require.True(t, ok)

	// flipping the parity recovers a different key, so the claimed key
	// binding must fail
	assignment.SigV = 1 - v
	require.Error(t, solve(assignment))
}

func TestRecoveryIdOutOfDomainFails(t *testing.T) {
	assignment := buildValidAssignment(t, 200, 500)
	assignment.SigV = 2
	require.Error(t, solve(assignment))
}
