package refcode

import (
	"math/rand/v2"
	"strings"

	"github.com/osse101/ReferralBot_Go/internal/domain"
)

// Generator produces candidate referral codes
type Generator interface {
	Generate() string
}

// RandomGenerator draws each character uniformly from the alphabet
type RandomGenerator struct {
	alphabet string
	length   int
	intN     func(n int) int
}

// NewGenerator returns a generator of domain.ReferralCodeLength codes
func NewGenerator() *RandomGenerator {
	return &RandomGenerator{
		alphabet: domain.ReferralCodeAlphabet,
		length:   domain.ReferralCodeLength,
		intN:     rand.IntN, //nolint:gosec // Codes are checked for uniqueness, not secret
	}
}

// Generate returns a new candidate code
func (g *RandomGenerator) Generate() string {
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		b.WriteByte(g.alphabet[g.intN(len(g.alphabet))])
	}
	return b.String()
}

// Normalize turns user input into the stored code form.
// Accepts the deep-link form "ref_ab12cd" as well as the bare code.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if len(code) >= len(domain.ReferralCodePrefix) &&
		strings.EqualFold(code[:len(domain.ReferralCodePrefix)], domain.ReferralCodePrefix) {
		code = code[len(domain.ReferralCodePrefix):]
	}
	return strings.ToUpper(code)
}
