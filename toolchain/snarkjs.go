package toolchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/civium-platform/zk-compliance/types"
)

// SnarkJS invokes the snarkjs CLI as a subprocess. Every invocation gets its
// own temporary working directory, so concurrent calls never share on-disk
// state; the circuit artifacts themselves are only ever read.
type SnarkJS struct {
	cfg Config
	log zerolog.Logger
}

// NewSnarkJS returns a runner for the given artifact layout and executable.
func NewSnarkJS(cfg Config, log zerolog.Logger) *SnarkJS {
	return &SnarkJS{cfg: cfg, log: log.With().Str("component", "snarkjs").Logger()}
}

// Prove generates a Groth16 proof for the named circuit from a witness
// input object. The input is serialized to JSON with the circuit's signal
// names as keys.
func (s *SnarkJS) Prove(ctx context.Context, circuit string, input any) (types.ZKProof, types.PublicSignals, error) {
	var (
		proof   types.ZKProof
		signals types.PublicSignals
	)

	wasmPath := s.cfg.WasmPath(circuit)
	zkeyPath := s.cfg.ProvingKeyPath(circuit)
	if _, err := os.Stat(wasmPath); err != nil {
		return proof, signals, fmt.Errorf("%w: circuit wasm not found: %s", ErrSetup, wasmPath)
	}
	if _, err := os.Stat(zkeyPath); err != nil {
		return proof, signals, fmt.Errorf("%w: proving key not found: %s", ErrSetup, zkeyPath)
	}

	workDir, err := os.MkdirTemp("", "civium-zk-prove-"+uuid.NewString())
	if err != nil {
		return proof, signals, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input.json")
	proofPath := filepath.Join(workDir, "proof.json")
	publicPath := filepath.Join(workDir, "public.json")

	raw, err := json.Marshal(input)
	if err != nil {
		return proof, signals, fmt.Errorf("marshal circuit input: %w", err)
	}
	if err := os.WriteFile(inputPath, raw, 0o600); err != nil {
		return proof, signals, fmt.Errorf("write circuit input: %w", err)
	}

	_, elapsed, err := s.run(ctx, circuit, ErrProvingTimeout,
		"groth16", "fullprove", inputPath, wasmPath, zkeyPath, proofPath, publicPath)
	if err != nil {
		return proof, signals, err
	}

	rawProof, err := os.ReadFile(proofPath)
	if err != nil {
		return proof, signals, &RunError{Circuit: circuit, Err: fmt.Errorf("%w: reading proof output: %v", ErrProving, err)}
	}
	if err := json.Unmarshal(rawProof, &proof); err != nil {
		return proof, signals, &RunError{Circuit: circuit, Err: fmt.Errorf("%w: parsing proof output: %v", ErrProving, err)}
	}
	rawPublic, err := os.ReadFile(publicPath)
	if err != nil {
		return proof, signals, &RunError{Circuit: circuit, Err: fmt.Errorf("%w: reading public signals: %v", ErrProving, err)}
	}
	if err := json.Unmarshal(rawPublic, &signals.Signals); err != nil {
		return proof, signals, &RunError{Circuit: circuit, Err: fmt.Errorf("%w: parsing public signals: %v", ErrProving, err)}
	}

	s.log.Info().Str("circuit", circuit).Dur("proving_time", elapsed).Msg("proof generated")
	return proof, signals, nil
}

// Verify checks a proof against the circuit's verification key. The boolean
// result covers executed runs; a missing key or timeout is reported as an
// error (the caller decides whether that is data or a fault). The returned
// diagnostics string holds the toolchain's stderr for rejected proofs.
func (s *SnarkJS) Verify(ctx context.Context, circuit string, proof types.ZKProof, signals types.PublicSignals) (bool, string, error) {
	vkeyPath := s.cfg.VerificationKeyPath(circuit)
	if _, err := os.Stat(vkeyPath); err != nil {
		return false, "", fmt.Errorf("%w: verification key not found: %s", ErrSetup, vkeyPath)
	}

	workDir, err := os.MkdirTemp("", "civium-zk-verify-"+uuid.NewString())
	if err != nil {
		return false, "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	proofPath := filepath.Join(workDir, "proof.json")
	publicPath := filepath.Join(workDir, "public.json")

	rawProof, err := json.Marshal(proof)
	if err != nil {
		return false, "", fmt.Errorf("marshal proof: %w", err)
	}
	if err := os.WriteFile(proofPath, rawProof, 0o600); err != nil {
		return false, "", fmt.Errorf("write proof: %w", err)
	}
	rawPublic, err := json.Marshal(signals.Signals)
	if err != nil {
		return false, "", fmt.Errorf("marshal public signals: %w", err)
	}
	if err := os.WriteFile(publicPath, rawPublic, 0o600); err != nil {
		return false, "", fmt.Errorf("write public signals: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout())
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.cfg.executable(), "groth16", "verify", vkeyPath, publicPath, proofPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return false, "", &RunError{Circuit: circuit, Err: fmt.Errorf("%w after %s", ErrVerifyTimeout, s.cfg.timeout())}
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return false, "", &RunError{Circuit: circuit, Stderr: stderr.String(), Err: fmt.Errorf("invoking verifier: %w", runErr)}
		}
		// Non-zero exit: the toolchain executed and rejected the proof.
		s.log.Warn().Str("circuit", circuit).Dur("verification_time", elapsed).Msg("proof rejected")
		return false, stderr.String(), nil
	}

	valid := strings.Contains(stdout.String(), "OK")
	s.log.Info().Str("circuit", circuit).Bool("valid", valid).Dur("verification_time", elapsed).Msg("proof verified")
	return valid, stderr.String(), nil
}

// run executes the toolchain with a deadline, mapping a deadline kill onto
// timeoutErr and a non-zero exit onto ErrProving.
func (s *SnarkJS) run(ctx context.Context, circuit string, timeoutErr error, args ...string) (string, time.Duration, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout())
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.cfg.executable(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return stderr.String(), elapsed, &RunError{Circuit: circuit, Err: fmt.Errorf("%w after %s", timeoutErr, s.cfg.timeout())}
	}
	if err != nil {
		s.log.Error().Str("circuit", circuit).Str("stderr", strings.TrimSpace(stderr.String())).Msg("toolchain invocation failed")
		return stderr.String(), elapsed, &RunError{Circuit: circuit, Stderr: stderr.String(), Err: ErrProving}
	}
	return stderr.String(), elapsed, nil
}
