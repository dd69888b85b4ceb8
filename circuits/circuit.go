// circuit.go
// attestation circuit definition
package circuits

import (
	"github.com/consensys/gnark/frontend"
	keccak "github.com/consensys/gnark/std/hash/sha3"
	"github.com/consensys/gnark/std/math/cmp"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/uints"
)

const (
	// Thresholds the statement enforces on the private account attributes.
	MinAccountAgeDays = 150
	MinFollowers      = 150

	// Attribute values are range-checked to this width before any ordering
	// comparison, so the `>` predicates cannot wrap around the field.
	AttributeBits = 32

	// IdentityHashBytes is the width of the identity commitment. 31 bytes
	// keeps the commitment strictly below the BN254 scalar field modulus.
	IdentityHashBytes = 31
	NonceBytes        = 16
	MessageBytes      = IdentityHashBytes + NonceBytes
)

// AttestationCircuit proves that a platform account older than
// MinAccountAgeDays with more than MinFollowers followers is controlled by
// the holder of the claimed secp256k1 key, without revealing the account
// attributes or the wallet signature.
//
// The public statement is MessageHash, the claimed public key (128-bit
// halves of each coordinate) and the Verified slot, constrained to 1. There
// is no soft-false path: any violated constraint leaves the witness
// unsolvable and no proof can be produced.
type AttestationCircuit struct {
	// Public inputs
	MessageHash      [32]frontend.Variable `gnark:",public"`
	ClaimedPubKeyXHi frontend.Variable     `gnark:",public"`
	ClaimedPubKeyXLo frontend.Variable     `gnark:",public"`
	ClaimedPubKeyYHi frontend.Variable     `gnark:",public"`
	ClaimedPubKeyYLo frontend.Variable     `gnark:",public"`
	Verified         frontend.Variable     `gnark:",public"`

	// Account attributes witness
	IdentityHash   frontend.Variable
	Nonce          frontend.Variable
	AccountAgeDays frontend.Variable
	Followers      frontend.Variable

	// Wallet signature witness
	SigRHi frontend.Variable
	SigRLo frontend.Variable
	SigSHi frontend.Variable
	SigSLo frontend.Variable
	SigV   frontend.Variable // recovery id (0 or 1)
}

// assertAttributeAbove range-checks v to AttributeBits bits and then asserts
// v > min. The range check must come first: comparisons are only meaningful
// on values known to lie in a wraparound-free sub-range of the field.
func assertAttributeAbove(api frontend.API, v frontend.Variable, min int) {
	api.ToBinary(v, AttributeBits)
	api.AssertIsEqual(cmp.IsLess(api, min, v), 1)
}

func (c *AttestationCircuit) Define(api frontend.API) error {
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}
	frField, err := emulated.NewField[emulated.Secp256k1Fr](api)
	if err != nil {
		return err
	}
	fpField, err := emulated.NewField[emulated.Secp256k1Fp](api)
	if err != nil {
		return err
	}

	// --- 1. Attribute thresholds ---
	assertAttributeAbove(api, c.AccountAgeDays, MinAccountAgeDays)
	assertAttributeAbove(api, c.Followers, MinFollowers)

	// --- 2. Identity binding ---
	// MessageHash must equal Keccak256(identityHash || nonce). Recomputing the
	// digest in-circuit ties the private identity commitment to the signed
	// message; without this the statement would only show that *some*
	// identity and *some* valid signature coexist.
	hMsg, err := keccak.NewLegacyKeccak256(api)
	if err != nil {
		return err
	}
	msgBytes := make([]uints.U8, MessageBytes)
	idBits := api.ToBinary(c.IdentityHash, IdentityHashBytes*8)
	for i := 0; i < IdentityHashBytes; i++ {
		byteVal := api.FromBinary(idBits[(IdentityHashBytes-1-i)*8 : (IdentityHashBytes-i)*8]...)
		msgBytes[i] = uapi.ByteValueOf(byteVal)
	}
	nonceBits := api.ToBinary(c.Nonce, NonceBytes*8)
	for i := 0; i < NonceBytes; i++ {
		byteVal := api.FromBinary(nonceBits[(NonceBytes-1-i)*8 : (NonceBytes-i)*8]...)
		msgBytes[IdentityHashBytes+i] = uapi.ByteValueOf(byteVal)
	}
	hMsg.Write(msgBytes)
	msgHash := hMsg.Sum()
	for i := 0; i < 32; i++ {
		api.AssertIsEqual(msgHash[i].Val, c.MessageHash[i])
	}

	// --- 3. Public key recovery ---
	digestBits := make([]frontend.Variable, 256)
	for i := 0; i < 32; i++ {
		bits := api.ToBinary(c.MessageHash[31-i], 8)
		copy(digestBits[i*8:], bits)
	}
	msgEmu := frField.FromBits(digestBits...)
	recoveredPk := recoverSignerKey(api, frField, msgEmu, signatureWitness{
		RHi: c.SigRHi, RLo: c.SigRLo,
		SHi: c.SigSHi, SLo: c.SigSLo,
		V: c.SigV,
	})

	// --- 4. Claimed key binding ---
	pxBits := fpField.ToBits(&recoveredPk.X)
	pyBits := fpField.ToBits(&recoveredPk.Y)
	api.AssertIsEqual(api.FromBinary(pxBits[:128]...), c.ClaimedPubKeyXLo)
	api.AssertIsEqual(api.FromBinary(pxBits[128:256]...), c.ClaimedPubKeyXHi)
	api.AssertIsEqual(api.FromBinary(pyBits[:128]...), c.ClaimedPubKeyYLo)
	api.AssertIsEqual(api.FromBinary(pyBits[128:256]...), c.ClaimedPubKeyYHi)

	// --- 5. Success output ---
	api.AssertIsEqual(c.Verified, 1)

	return nil
}
