package ml

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ErrNotFitted is returned when a component is used before fitting
var ErrNotFitted = errors.New("model has not been fitted")

// Vectorizer converts free text into TF-IDF feature vectors over unigrams
// and bigrams. The vocabulary is capped at MaxFeatures terms selected by
// total corpus frequency, with English stop words removed. Vocabulary and
// IDF weights are frozen after Fit; retraining downstream models reuses
// the original vocabulary.
type Vectorizer struct {
	MaxFeatures int            `json:"max_features"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

// NewVectorizer creates an unfitted vectorizer with the given vocabulary cap
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// IsFitted reports whether Fit has been called
func (v *Vectorizer) IsFitted() bool {
	return v.Vocabulary != nil
}

// NumFeatures returns the fitted vocabulary size
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}

// Fit learns the vocabulary and IDF weights from the corpus
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("vectorizer: empty corpus")
	}

	totalCounts := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		terms := extractTerms(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			totalCounts[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	// Highest-frequency terms win a vocabulary slot; ties break
	// alphabetically so fitting is deterministic.
	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(totalCounts))
	for t, c := range totalCounts {
		ranked = append(ranked, termCount{t, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})
	if v.MaxFeatures > 0 && len(ranked) > v.MaxFeatures {
		ranked = ranked[:v.MaxFeatures]
	}

	// Column order is alphabetical over the selected terms
	selected := make([]string, len(ranked))
	for i, rc := range ranked {
		selected[i] = rc.term
	}
	sort.Strings(selected)

	v.Vocabulary = make(map[string]int, len(selected))
	v.IDF = make([]float64, len(selected))
	n := float64(len(docs))
	for i, term := range selected {
		v.Vocabulary[term] = i
		// Smoothed IDF: ln((1+n)/(1+df)) + 1
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return nil
}

// Transform converts documents into L2-normalized TF-IDF rows
func (v *Vectorizer) Transform(docs []string) ([][]float64, error) {
	if !v.IsFitted() {
		return nil, ErrNotFitted
	}

	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.IDF))
		for _, t := range extractTerms(doc) {
			if col, ok := v.Vocabulary[t]; ok {
				row[col]++
			}
		}
		var norm float64
		for col := range row {
			row[col] *= v.IDF[col]
			norm += row[col] * row[col]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for col := range row {
				row[col] /= norm
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// FitTransform fits the vocabulary and transforms the corpus in one pass
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// extractTerms tokenizes text into stop-word-filtered unigrams plus bigrams
func extractTerms(text string) []string {
	tokens := tokenize(text)
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character tokens and stop words
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
