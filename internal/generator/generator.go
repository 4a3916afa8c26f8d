// Package generator builds random passwords from character classes.
package generator

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/verte-zerg/pwgen/internal/model"
)

// ErrEmptyPool is returned when no character class is selected.
var ErrEmptyPool = errors.New("select at least one character type")

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// Generator produces randomized passwords.
type Generator struct {
	rnd Source
}

// New returns a Generator backed by crypto/rand.
func New() *Generator {
	return &Generator{rnd: cryptoSource{}}
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// Classes returns the enabled classes in pool order.
func Classes(cfg model.GenerationConfig) []model.CharacterClass {
	classes := make([]model.CharacterClass, 0, len(model.AllClasses))
	for _, class := range model.AllClasses {
		if cfg.Uses(class) {
			classes = append(classes, class)
		}
	}
	return classes
}

// Pool concatenates the alphabets of the enabled classes.
func Pool(cfg model.GenerationConfig) string {
	var b strings.Builder
	for _, class := range Classes(cfg) {
		b.WriteString(class.Alphabet())
	}
	return b.String()
}

// Generate draws one character per enabled class, fills the rest from the
// pool and shuffles. The result has max(cfg.Length, len(classes)) characters.
func (g *Generator) Generate(cfg model.GenerationConfig) (string, error) {
	pool := []rune(Pool(cfg))
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	classes := Classes(cfg)

	mandatory := make([]rune, 0, len(classes))
	for _, class := range classes {
		mandatory = append(mandatory, g.pick([]rune(class.Alphabet())))
	}

	fill := cfg.Length - len(mandatory)
	if fill < 0 {
		fill = 0
	}
	result := make([]rune, 0, fill+len(mandatory))
	for i := 0; i < fill; i++ {
		result = append(result, g.pick(pool))
	}
	result = append(result, mandatory...)
	g.Shuffle(result)
	return string(result), nil
}

// Shuffle permutes runes in place with Fisher-Yates.
func (g *Generator) Shuffle(runes []rune) {
	for i := len(runes) - 1; i > 0; i-- {
		j := g.rnd.IntN(i + 1)
		runes[i], runes[j] = runes[j], runes[i]
	}
}

func (g *Generator) pick(alphabet []rune) rune {
	return alphabet[g.rnd.IntN(len(alphabet))]
}

type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("generator: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}
