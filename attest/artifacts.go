// artifacts.go
// on-disk circuit artifacts: constraint system, keys, proofs, verifier export
package attest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
)

// Artifact file names inside the build directory.
const (
	ConstraintSystemFile = "attestation.r1cs"
	ProvingKeyFile       = "attestation.pk"
	VerifyingKeyFile     = "attestation.vk"
	SolidityVerifierFile = "AttestationVerifier.sol"
	ProofFile            = "attestation_proof.json"
)

// SaveArtifacts writes the compiled constraint system and the Groth16 key
// pair into dir.
func SaveArtifacts(dir string, cs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	if err := saveTo(filepath.Join(dir, ConstraintSystemFile), cs); err != nil {
		return err
	}
	if err := saveTo(filepath.Join(dir, ProvingKeyFile), pk); err != nil {
		return err
	}
	return saveTo(filepath.Join(dir, VerifyingKeyFile), vk)
}

// LoadConstraintSystem reads the compiled circuit back from dir.
func LoadConstraintSystem(dir string) (constraint.ConstraintSystem, error) {
	cs := groth16.NewCS(ecc.BN254)
	if err := loadFrom(filepath.Join(dir, ConstraintSystemFile), cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// LoadProvingKey reads the Groth16 proving key from dir.
func LoadProvingKey(dir string) (groth16.ProvingKey, error) {
	pk := groth16.NewProvingKey(ecc.BN254)
	if err := loadFrom(filepath.Join(dir, ProvingKeyFile), pk); err != nil {
		return nil, err
	}
	return pk, nil
}

// LoadVerifyingKey reads the Groth16 verifying key from dir.
func LoadVerifyingKey(dir string) (groth16.VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := loadFrom(filepath.Join(dir, VerifyingKeyFile), vk); err != nil {
		return nil, err
	}
	return vk, nil
}

// ExportSolidityVerifier writes the on-chain verifier contract for vk.
func ExportSolidityVerifier(dir string, vk groth16.VerifyingKey) error {
	path := filepath.Join(dir, SolidityVerifierFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := vk.ExportSolidity(f); err != nil {
		return fmt.Errorf("export solidity verifier: %w", err)
	}
	return nil
}

// WriteProofEnvelope writes the proof envelope as JSON into dir.
func WriteProofEnvelope(dir string, env *ProofEnvelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal proof envelope: %w", err)
	}
	path := filepath.Join(dir, ProofFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadProofEnvelope reads a proof envelope back from dir.
func ReadProofEnvelope(dir string) (*ProofEnvelope, error) {
	path := filepath.Join(dir, ProofFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var env ProofEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &env, nil
}

func saveTo(path string, w io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func loadFrom(path string, r io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := r.ReadFrom(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
