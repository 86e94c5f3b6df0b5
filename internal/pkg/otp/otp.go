package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	// Min and Max bound the generated code, both inclusive.
	Min = 100000
	Max = 999999
)

var span = big.NewInt(Max - Min + 1)

// Generate returns a cryptographically random 6-digit code in [Min, Max].
func Generate() (string, error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom draws a code uniformly from r.
func GenerateFrom(r io.Reader) (string, error) {
	n, err := rand.Int(r, span)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+Min, 10), nil
}
