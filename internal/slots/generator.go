package slots

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/utils"
)

// Generator produces one reel symbol per call
type Generator interface {
	Draw() (domain.Symbol, error)
}

// UniformGenerator draws every symbol with equal probability
type UniformGenerator struct {
	symbols []domain.Symbol
	rng     func(n int) (int, error) // Injectable for testing, returns [0, n)
}

// NewUniformGenerator creates a generator backed by crypto/rand
func NewUniformGenerator() *UniformGenerator {
	return NewUniformGeneratorWithRNG(utils.SecureIndex)
}

// NewUniformGeneratorWithRNG creates a generator with a custom index source
func NewUniformGeneratorWithRNG(rng func(n int) (int, error)) *UniformGenerator {
	return &UniformGenerator{
		symbols: Symbols(),
		rng:     rng,
	}
}

// Draw returns one symbol chosen uniformly at random
func (g *UniformGenerator) Draw() (domain.Symbol, error) {
	idx, err := g.rng(len(g.symbols))
	if err != nil {
		return "", fmt.Errorf("failed to draw symbol: %w", err)
	}
	if idx < 0 || idx >= len(g.symbols) {
		return "", fmt.Errorf("random index %d out of range [0, %d)", idx, len(g.symbols))
	}
	return g.symbols[idx], nil
}

// SequenceGenerator replays a fixed list of symbols, wrapping around at the end
type SequenceGenerator struct {
	mu       sync.Mutex
	sequence []domain.Symbol
	pos      int
}

// NewSequenceGenerator creates a deterministic generator
func NewSequenceGenerator(sequence ...domain.Symbol) (*SequenceGenerator, error) {
	if len(sequence) == 0 {
		return nil, fmt.Errorf("%w: symbol sequence is empty", domain.ErrInvalidInput)
	}
	for _, sym := range sequence {
		if _, ok := PayoutMultipliers[sym]; !ok {
			return nil, fmt.Errorf("%w: unknown symbol %q", domain.ErrInvalidInput, sym)
		}
	}
	seq := make([]domain.Symbol, len(sequence))
	copy(seq, sequence)
	return &SequenceGenerator{sequence: seq}, nil
}

// Draw returns the next symbol in the sequence
func (g *SequenceGenerator) Draw() (domain.Symbol, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sym := g.sequence[g.pos]
	g.pos = (g.pos + 1) % len(g.sequence)
	return sym, nil
}

// ParseSymbol accepts a symbol name, its face, or its reel letter (A, B, C)
func ParseSymbol(s string) (domain.Symbol, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	for i, sym := range reelSymbols {
		if upper == string(sym) || s == SymbolFaces[sym] || upper == string(rune('A'+i)) {
			return sym, nil
		}
	}
	return "", fmt.Errorf("%w: unknown symbol %q", domain.ErrInvalidInput, s)
}

// ParseSequence parses a comma separated list of symbols
func ParseSequence(s string) ([]domain.Symbol, error) {
	parts := strings.Split(s, ",")
	out := make([]domain.Symbol, 0, len(parts))
	for _, part := range parts {
		sym, err := ParseSymbol(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}
