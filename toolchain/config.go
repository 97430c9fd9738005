// Package toolchain wraps the external Groth16 proving toolchain (snarkjs)
// behind a narrow contract: deterministic given identical inputs and keys,
// non-zero exit on any failure, machine-parseable success output, and no
// temporary state left behind on any exit path.
package toolchain

import (
	"path/filepath"
	"time"
)

// DefaultTimeout bounds a single toolchain invocation. Proving a SNARK can
// take seconds; it must never hang the calling service indefinitely.
const DefaultTimeout = 30 * time.Second

// Config locates the circuit artifacts and the toolchain executable. It is
// passed explicitly to constructors; there is no module-level default.
type Config struct {
	// BuildDir holds the compiled circuit artifacts produced by the external
	// circuit build step, one subdirectory per circuit name.
	BuildDir string

	// ToolchainPath is the snarkjs executable or a wrapper script for it.
	// Empty means "snarkjs" resolved via PATH.
	ToolchainPath string

	// Timeout bounds a single prove or verify invocation. Zero or negative
	// means DefaultTimeout.
	Timeout time.Duration
}

func (c Config) executable() string {
	if c.ToolchainPath == "" {
		return "snarkjs"
	}
	return c.ToolchainPath
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// WasmPath returns the compiled circuit witness generator for a circuit.
func (c Config) WasmPath(circuit string) string {
	return filepath.Join(c.BuildDir, circuit, circuit+"_js", circuit+".wasm")
}

// ProvingKeyPath returns the proving key for a circuit.
func (c Config) ProvingKeyPath(circuit string) string {
	return filepath.Join(c.BuildDir, circuit, "proving_key.zkey")
}

// VerificationKeyPath returns the verification key for a circuit.
func (c Config) VerificationKeyPath(circuit string) string {
	return filepath.Join(c.BuildDir, circuit, "verification_key.json")
}
