// prover.go
// gnark compile/setup/prove/verify plumbing
package attest

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"zkattest-circuit/circuits"
)

// Compile builds the attestation constraint system over BN254.
func Compile() (constraint.ConstraintSystem, error) {
	var circuit circuits.AttestationCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("compile attestation circuit: %w", err)
	}
	return cs, nil
}

// Setup runs the Groth16 trusted setup for the compiled circuit.
func Setup(cs constraint.ConstraintSystem) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return pk, vk, nil
}

// Prove solves the witness for the given assignment and generates a proof,
// returning the proof together with the public witness needed to verify it.
// A violated circuit constraint (threshold, recovery, binding) surfaces here
// as a proving error; there is no partial proof.
func Prove(cs constraint.ConstraintSystem, pk groth16.ProvingKey, assignment *circuits.AttestationCircuit) (groth16.Proof, witness.Witness, error) {
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(cs, pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("generate proof: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("extract public witness: %w", err)
	}
	return proof, public, nil
}

// Verify checks a proof against its public inputs.
func Verify(proof groth16.Proof, vk groth16.VerifyingKey, public witness.Witness) error {
	if err := groth16.Verify(proof, vk, public); err != nil {
		return fmt.Errorf("verify proof: %w", err)
	}
	return nil
}

// ProofEnvelope is the transport form of one attestation proof: the Groth16
// proof bytes and the serialized public witness, hex-encoded in JSON. Both
// blobs are opaque backend artifacts.
type ProofEnvelope struct {
	Proof        hexutil.Bytes `json:"proof"`
	PublicInputs hexutil.Bytes `json:"public_inputs"`
}

// NewProofEnvelope serializes a proof and its public witness for transport.
func NewProofEnvelope(proof groth16.Proof, public witness.Witness) (*ProofEnvelope, error) {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize proof: %w", err)
	}
	pubBytes, err := public.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("serialize public witness: %w", err)
	}
	return &ProofEnvelope{
		Proof:        hexutil.Bytes(buf.Bytes()),
		PublicInputs: hexutil.Bytes(pubBytes),
	}, nil
}

// Open deserializes the envelope back into backend objects.
func (e *ProofEnvelope) Open() (groth16.Proof, witness.Witness, error) {
	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(e.Proof)); err != nil {
		return nil, nil, fmt.Errorf("parse proof: %w", err)
	}
	public, err := witness.New(ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("new public witness: %w", err)
	}
	if err := public.UnmarshalBinary(e.PublicInputs); err != nil {
		return nil, nil, fmt.Errorf("parse public witness: %w", err)
	}
	return proof, public, nil
}
