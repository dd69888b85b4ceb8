// recovery.go
// in-circuit secp256k1 public key recovery
package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_emulated"
	"github.com/consensys/gnark/std/evmprecompiles"
	"github.com/consensys/gnark/std/math/bitslice"
	"github.com/consensys/gnark/std/math/emulated"
)

// signatureWitness groups the raw signature limbs handed to the recovery
// gadget. r and s arrive as 128-bit halves so every input stays a native
// field element; the recovery id is a single bit.
type signatureWitness struct {
	RHi, RLo frontend.Variable
	SHi, SLo frontend.Variable
	V        frontend.Variable
}

// recoverSignerKey recovers the secp256k1 public key that produced the
// signature over msg, entirely inside the constraint system.
//
// Preconditions are hard assertions: the recovery id must be 0 or 1 and
// neither r nor s may be zero. The halves are range-checked to 128 bits when
// partitioned into emulated limbs, and the recovery gadget constrains r and s
// into [1, n-1] (strict range mode additionally rejects high-s signatures).
// The gadget computes the curve point R whose x-coordinate is r with the
// y-parity selected by the recovery id, then u1 = -msg*r^-1 mod n,
// u2 = s*r^-1 mod n and Q = u1*G + u2*R. If r is not a valid x-coordinate
// the circuit is unsatisfiable; a wrong key is never returned silently.
func recoverSignerKey(
	api frontend.API,
	frField *emulated.Field[emulated.Secp256k1Fr],
	msg *emulated.Element[emulated.Secp256k1Fr],
	sig signatureWitness,
) *sw_emulated.AffinePoint[emulated.Secp256k1Fp] {
	api.AssertIsBoolean(sig.V)

	rIsZero := api.And(api.IsZero(sig.RHi), api.IsZero(sig.RLo))
	api.AssertIsEqual(rIsZero, 0)
	sIsZero := api.And(api.IsZero(sig.SHi), api.IsZero(sig.SLo))
	api.AssertIsEqual(sIsZero, 0)

	rLimbs := make([]frontend.Variable, 4)
	rLimbs[2], rLimbs[3] = bitslice.Partition(api, sig.RHi, 64, bitslice.WithNbDigits(128))
	rLimbs[0], rLimbs[1] = bitslice.Partition(api, sig.RLo, 64, bitslice.WithNbDigits(128))
	rEmu := frField.NewElement(rLimbs)

	sLimbs := make([]frontend.Variable, 4)
	sLimbs[2], sLimbs[3] = bitslice.Partition(api, sig.SHi, 64, bitslice.WithNbDigits(128))
	sLimbs[0], sLimbs[1] = bitslice.Partition(api, sig.SLo, 64, bitslice.WithNbDigits(128))
	sEmu := frField.NewElement(sLimbs)

	vPlus27 := api.Add(sig.V, 27)
	return evmprecompiles.ECRecover(api, *msg, vPlus27, *rEmu, *sEmu, 1, 0)
}
