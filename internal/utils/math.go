// Package utils holds small helpers shared across packages.
package utils

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// ErrEmptyRange is returned when asked to pick from nothing
var ErrEmptyRange = errors.New("index range must be positive")

// SecureIndex returns a uniformly distributed index in [0, n) drawn from crypto/rand
func SecureIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrEmptyRange, n)
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random source: %w", err)
	}
	return int(v.Int64()), nil
}
