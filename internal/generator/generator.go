// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Params controls how practice text is produced.
type Params struct {
	// Words is how many words the text should contain.
	Words int
	// CapsPct is the probability of capitalizing a word's first letter.
	CapsPct float64
	// PunctPct is the probability of appending punctuation to a word.
	PunctPct float64
	// PunctSet is the pool of punctuation runes to draw from.
	PunctSet []rune
	// WeakSet biases selection toward words containing these runes.
	WeakSet map[rune]struct{}
	// WeakFactor is the extra weight per weak rune in a word.
	WeakFactor float64
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed, for tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Text produces one practice text joined with single spaces.
func (g *Generator) Text(words []string, p Params) string {
	return strings.Join(g.pick(words, p), " ")
}

func (g *Generator) pick(words []string, p Params) []string {
	weighted := len(p.WeakSet) > 0 && p.WeakFactor > 0
	var weights []float64
	var total float64
	if weighted {
		weights = make([]float64, len(words))
		for i, word := range words {
			weakCount := 0
			for _, r := range word {
				if _, ok := p.WeakSet[r]; ok {
					weakCount++
				}
			}
			w := 1.0 + float64(weakCount)*p.WeakFactor
			weights[i] = w
			total += w
		}
	}

	result := make([]string, 0, p.Words)
	for i := 0; i < p.Words; i++ {
		var word string
		if weighted {
			word = words[g.weightedIndex(weights, total)]
		} else {
			word = words[g.rnd.Intn(len(words))]
		}
		word = g.applyCaps(word, p.CapsPct)
		word = g.applyPunct(word, p.PunctPct, p.PunctSet)
		result = append(result, word)
	}
	return result
}

func (g *Generator) weightedIndex(weights []float64, total float64) int {
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}

func (g *Generator) applyCaps(word string, capsPct float64) string {
	if capsPct <= 0 || g.rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (g *Generator) applyPunct(word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 || g.rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[g.rnd.Intn(len(punctSet))]
	return word + string(punct)
}
