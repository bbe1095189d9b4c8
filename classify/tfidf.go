// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package classify

import (
	"math"
	"sort"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 1000

// Vectorizer maps text to TF-IDF feature vectors. Fit selects the
// MaxFeatures most frequent corpus terms (ties broken alphabetically),
// computes smoothed inverse document frequencies, and Transform produces
// L2-normalized vectors. Terms outside the fitted vocabulary are ignored.
type Vectorizer struct {
	MaxFeatures int            `json:"max_features"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

// NewVectorizer creates an unfitted vectorizer with the default cap.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxFeatures: DefaultMaxFeatures}
}

// Fit builds the vocabulary and IDF table from the given documents.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyDataset
	}
	if v.MaxFeatures < 1 {
		v.MaxFeatures = DefaultMaxFeatures
	}

	termCounts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		tokens := tokenize(doc)
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			termCounts[tok]++
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	// Keep the most frequent terms, alphabetical on ties, capped at
	// MaxFeatures.
	terms := make([]string, 0, len(termCounts))
	for term := range termCounts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCounts[terms[i]] != termCounts[terms[j]] {
			return termCounts[terms[i]] > termCounts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	// Vocabulary indices are alphabetical for stable feature order.
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF: ln((1+n)/(1+df)) + 1
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return nil
}

// Transform converts one document into an L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(doc string) ([]float64, error) {
	if len(v.Vocabulary) == 0 {
		return nil, ErrNotFitted
	}

	vec := make([]float64, len(v.Vocabulary))
	for _, tok := range tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// TransformAll converts a document batch.
func (v *Vectorizer) TransformAll(docs []string) ([][]float64, error) {
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := v.Transform(doc)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// NumFeatures returns the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}
