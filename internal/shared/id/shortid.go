// Package id generates URL-safe base62 identifiers for devices and stream
// connections.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength is used when callers pass a non-positive length.
const DefaultLength = 12

// Entity prefixes, Stripe style: "dev_xK9mP2vL3nQa".
const (
	PrefixDevice = "dev"
	PrefixConn   = "conn"
)

// Generate returns a cryptographically random base62 string of the given
// length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}

	return string(out), nil
}

// MustGenerate is Generate panicking on failure, for callers where a broken
// random source is unrecoverable anyway.
func MustGenerate(length int) string {
	s, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return s
}

// GenerateWithPrefix returns "<prefix>_<random>".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// MustGenerateWithPrefix is GenerateWithPrefix panicking on failure.
func MustGenerateWithPrefix(prefix string, length int) string {
	s, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return s
}
