// Package field maps entity identifiers and salts onto the BN254 scalar
// field, the numeric domain the compliance circuits operate in.
package field

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// saltBytes is one byte short of the 32-byte field width so the big-endian
// value always lands below the field order without rejection sampling.
const saltBytes = 31

// Order returns the BN254 scalar field order.
func Order() *big.Int {
	return fr.Modulus()
}

// HashEntityID deterministically maps an entity identifier (e.g. an LEI) to
// a field element: SHA-256 of the UTF-8 bytes, interpreted big-endian and
// reduced mod the field order. The circuit only ever sees this hash, never
// the raw identifier.
func HashEntityID(entityID string) string {
	digest := sha256.Sum256([]byte(entityID))
	v := new(big.Int).SetBytes(digest[:])
	return v.Mod(v, fr.Modulus()).String()
}

// GenerateSalt draws a fresh random field element from the platform's secure
// random source. Fails only if that source is unavailable.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("secure random source unavailable: %w", err)
	}
	return new(big.Int).SetBytes(buf).String(), nil
}

// IsElement reports whether s is the decimal representation of a value in
// [0, Order).
func IsElement(s string) bool {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return false
	}
	return v.Cmp(fr.Modulus()) < 0
}
