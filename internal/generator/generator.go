// Package generator builds typing text for free practice.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Generator produces randomized practice text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for deterministic tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Text builds a practice string of count words joined by spaces.
func (g *Generator) Text(words []string, count int, capsPct, punctPct float64, punctSet []rune) string {
	return strings.Join(g.pick(words, count, capsPct, punctPct, punctSet, nil, 0), " ")
}

// WeightedText builds a practice string biased toward weak characters: words
// containing more weak characters are proportionally more likely.
func (g *Generator) WeightedText(words []string, count int, capsPct, punctPct float64, punctSet []rune, weakSet map[rune]struct{}, factor float64) string {
	return strings.Join(g.pick(words, count, capsPct, punctPct, punctSet, weakSet, factor), " ")
}

func (g *Generator) pick(words []string, count int, capsPct, punctPct float64, punctSet []rune, weakSet map[rune]struct{}, factor float64) []string {
	var weights []float64
	total := 0.0
	if len(weakSet) > 0 && factor > 0 {
		weights = make([]float64, len(words))
		for i, word := range words {
			weakCount := 0
			for _, r := range word {
				if _, ok := weakSet[r]; ok {
					weakCount++
				}
			}
			w := 1.0 + float64(weakCount)*factor
			weights[i] = w
			total += w
		}
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var word string
		if weights == nil {
			word = words[g.rnd.Intn(len(words))]
		} else {
			word = words[g.weightedIndex(weights, total)]
		}
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
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
	return 0
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
