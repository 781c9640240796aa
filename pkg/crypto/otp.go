package crypto

import (
	"fmt"
	"math/rand"
	"sync"
)

// NumericCodeGenerator produces fixed-width decimal passcodes from an injected
// random source. Codes are zero-padded, so the full 10^width space is used
// (a code may start with "0").
type NumericCodeGenerator struct {
	width int
	bound int64
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewNumericCodeGenerator creates a generator for codes of the given width.
// The source is typically rand.NewSource(time.Now().UnixNano()) in production
// and a fixed seed in tests.
func NewNumericCodeGenerator(width int, src rand.Source) *NumericCodeGenerator {
	if width <= 0 {
		width = 6
	}
	bound := int64(1)
	for i := 0; i < width; i++ {
		bound *= 10
	}
	return &NumericCodeGenerator{
		width: width,
		bound: bound,
		rng:   rand.New(src),
	}
}

// Generate returns a uniformly distributed zero-padded code.
func (g *NumericCodeGenerator) Generate() string {
	g.mu.Lock()
	n := g.rng.Int63n(g.bound)
	g.mu.Unlock()
	return fmt.Sprintf("%0*d", g.width, n)
}
