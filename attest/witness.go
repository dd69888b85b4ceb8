// witness.go
// off-circuit witness construction for the attestation circuit
package attest

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"

	"zkattest-circuit/circuits"
)

// AccountClaim carries the plaintext attribute values obtained from the
// identity provider. The circuit trusts them verbatim; fetching them from an
// authenticated source is the calling application's responsibility.
type AccountClaim struct {
	Handle         string
	AccountAgeDays uint32
	Followers      uint32
}

// IdentityHash derives the identity commitment for a platform handle: the
// first 31 bytes of Keccak256(handle), so the commitment always fits the
// BN254 scalar field.
func IdentityHash(handle string) *big.Int {
	digest := eth_crypto.Keccak256([]byte(handle))
	return new(big.Int).SetBytes(digest[:circuits.IdentityHashBytes])
}

// NewNonce draws a fresh random message nonce.
func NewNonce() (*big.Int, error) {
	buf := make([]byte, circuits.NonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("draw nonce: %w", err)
	}
	return new(big.Int).SetBytes(buf), nil
}

// AttestationMessage assembles the fixed-layout message the wallet signs:
// identityHash (31 bytes, big-endian) || nonce (16 bytes, big-endian).
func AttestationMessage(identityHash, nonce *big.Int) []byte {
	msg := make([]byte, circuits.MessageBytes)
	identityHash.FillBytes(msg[:circuits.IdentityHashBytes])
	nonce.FillBytes(msg[circuits.IdentityHashBytes:])
	return msg
}

// Signature holds the normalized components of a wallet signature.
type Signature struct {
	R *big.Int
	S *big.Int
	V byte // recovery id (0 or 1)
}

// SignAttestation signs the Keccak256 digest of the attestation message and
// normalizes the result to a low s value, flipping the recovery id to match.
// The in-circuit recovery runs in strict range mode and rejects high-s
// signatures. Returns the signature and the message digest.
func SignAttestation(message []byte, sk *ecdsa.PrivateKey) (Signature, []byte, error) {
	messageHash := eth_crypto.Keccak256(message)
	sigBytes, err := eth_crypto.Sign(messageHash, sk)
	if err != nil {
		return Signature{}, nil, fmt.Errorf("sign attestation message: %w", err)
	}
	r := new(big.Int).SetBytes(sigBytes[:32])
	s := new(big.Int).SetBytes(sigBytes[32:64])
	v := sigBytes[64]

	secpN := eth_crypto.S256().Params().N
	halfN := new(big.Int).Rsh(secpN, 1)
	if s.Cmp(halfN) > 0 {
		s.Sub(secpN, s)
		v = 1 - v
	}
	return Signature{R: r, S: s, V: v}, messageHash, nil
}

// PublicAssignment builds the public part of the statement: the message
// hash, the claimed public key halves and the success slot. The verifier
// side turns this into a witness with frontend.PublicOnly.
func PublicAssignment(messageHash []byte, pk *ecdsa.PublicKey) *circuits.AttestationCircuit {
	pubBytes := eth_crypto.FromECDSAPub(pk) // 0x04 || X || Y
	xHi, xLo := splitBytes32(pubBytes[1:33])
	yHi, yLo := splitBytes32(pubBytes[33:65])
	return &circuits.AttestationCircuit{
		MessageHash:      toMessageHashVariables(messageHash),
		ClaimedPubKeyXHi: xHi,
		ClaimedPubKeyXLo: xLo,
		ClaimedPubKeyYHi: yHi,
		ClaimedPubKeyYLo: yLo,
		Verified:         1,
	}
}

// BuildAssignment produces the full witness assignment for one proof run:
// it derives the identity commitment, assembles and signs the attestation
// message and splits the signature into circuit limbs.
func BuildAssignment(claim AccountClaim, nonce *big.Int, sk *ecdsa.PrivateKey) (*circuits.AttestationCircuit, error) {
	identity := IdentityHash(claim.Handle)
	message := AttestationMessage(identity, nonce)
	sig, messageHash, err := SignAttestation(message, sk)
	if err != nil {
		return nil, err
	}

	rHi, rLo := splitScalar(sig.R)
	sHi, sLo := splitScalar(sig.S)

	assignment := PublicAssignment(messageHash, &sk.PublicKey)
	assignment.IdentityHash = identity
	assignment.Nonce = new(big.Int).Set(nonce)
	assignment.AccountAgeDays = claim.AccountAgeDays
	assignment.Followers = claim.Followers
	assignment.SigRHi = rHi
	assignment.SigRLo = rLo
	assignment.SigSHi = sHi
	assignment.SigSLo = sLo
	assignment.SigV = int64(sig.V)
	return assignment, nil
}

func splitScalar(x *big.Int) (hi, lo *big.Int) {
	buf := make([]byte, 32)
	x.FillBytes(buf)
	return splitBytes32(buf)
}

func splitBytes32(b []byte) (hi, lo *big.Int) {
	return new(big.Int).SetBytes(b[:16]), new(big.Int).SetBytes(b[16:])
}

func toMessageHashVariables(b []byte) [32]frontend.Variable {
	var arr [32]frontend.Variable
	for i := 0; i < 32; i++ {
		arr[i] = 0
		if i < len(b) {
			arr[i] = b[i]
		}
	}
	return arr
}
