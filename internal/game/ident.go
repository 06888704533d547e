package game

import (
	"math/rand"
	"strings"
	"time"
)

// idAlphabet matches the original uppercase base-36 code space.
const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IDSource generates short alphanumeric identifiers for room codes and
// player ids. It is not safe for concurrent use; all callers run on the
// coordinator loop.
type IDSource struct {
	rnd *rand.Rand
}

// NewIDSource creates an IDSource seeded from the wall clock.
func NewIDSource() *IDSource {
	return NewSeededIDSource(time.Now().UnixNano())
}

// NewSeededIDSource creates a deterministic IDSource for tests.
func NewSeededIDSource(seed int64) *IDSource {
	return &IDSource{rnd: rand.New(rand.NewSource(seed))}
}

// ID returns a random identifier of n characters from the code alphabet.
//
// Precondition: n > 0.
func (s *IDSource) ID(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(idAlphabet[s.rnd.Intn(len(idAlphabet))])
	}
	return b.String()
}

// Intn exposes the underlying source for roster draws so that role
// assignment shares the seed with id generation in tests.
func (s *IDSource) Intn(n int) int {
	return s.rnd.Intn(n)
}
