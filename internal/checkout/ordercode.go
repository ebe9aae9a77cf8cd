package checkout

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"
)

// Confusable glyphs (0/O, 1/I/L) are excluded so codes survive being read
// over the phone.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const suffixLen = 4

// CodeGenerator mints order codes of the form PREFIX-YYYYMMDD-XXXX. Suffixes
// are random but deduplicated per calendar day in-process, so a day's worth
// of submissions never collides.
type CodeGenerator struct {
	prefix string
	now    func() time.Time

	mu     sync.Mutex
	day    string
	issued map[string]struct{}
}

// NewCodeGenerator builds a generator with the given prefix (e.g. "ORD").
func NewCodeGenerator(prefix string) *CodeGenerator {
	if prefix == "" {
		prefix = "ORD"
	}
	return &CodeGenerator{
		prefix: prefix,
		now:    time.Now,
		issued: map[string]struct{}{},
	}
}

// Next returns a fresh order code.
func (g *CodeGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := g.now().UTC().Format("20060102")
	if day != g.day {
		g.day = day
		g.issued = map[string]struct{}{}
	}

	for attempt := 0; attempt < 10000; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return "", err
		}
		if _, taken := g.issued[suffix]; taken {
			continue
		}
		g.issued[suffix] = struct{}{}
		return fmt.Sprintf("%s-%s-%s", g.prefix, day, suffix), nil
	}
	return "", fmt.Errorf("order code suffix space exhausted for %s", day)
}

func randomSuffix() (string, error) {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	out := make([]byte, suffixLen)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
