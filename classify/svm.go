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
	"math/rand"
	"sort"
)

const (
	// trainingSeed fixes all stochastic steps for reproducible models.
	trainingSeed = 42

	svmLambda = 1e-4
	svmEpochs = 200
)

// LinearSVM is a one-vs-rest linear support-vector classifier trained
// with Pegasos-style stochastic subgradient descent. Training is
// deterministic under the fixed seed.
type LinearSVM struct {
	Categories []string    `json:"categories"`
	Weights    [][]float64 `json:"weights"` // one weight vector per category
	Biases     []float64   `json:"biases"`
}

// Fit trains one binary hinge-loss separator per category.
func (s *LinearSVM) Fit(vectors [][]float64, labels []string) error {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return ErrEmptyDataset
	}

	categorySet := make(map[string]bool)
	for _, label := range labels {
		categorySet[label] = true
	}
	if len(categorySet) < 2 {
		return ErrTooFewCategories
	}

	s.Categories = make([]string, 0, len(categorySet))
	for category := range categorySet {
		s.Categories = append(s.Categories, category)
	}
	sort.Strings(s.Categories)

	numFeatures := len(vectors[0])
	s.Weights = make([][]float64, len(s.Categories))
	s.Biases = make([]float64, len(s.Categories))

	rng := rand.New(rand.NewSource(trainingSeed))
	for ci, category := range s.Categories {
		s.Weights[ci] = trainBinary(vectors, labels, category, numFeatures, rng, &s.Biases[ci])
	}
	return nil
}

// trainBinary runs Pegasos SGD for one one-vs-rest separator.
func trainBinary(vectors [][]float64, labels []string, category string, numFeatures int, rng *rand.Rand, bias *float64) []float64 {
	w := make([]float64, numFeatures)
	n := len(vectors)

	t := 0
	for epoch := 0; epoch < svmEpochs; epoch++ {
		order := rng.Perm(n)
		for _, i := range order {
			t++
			eta := 1 / (svmLambda * float64(t))

			y := -1.0
			if labels[i] == category {
				y = 1.0
			}

			margin := y * (dot(w, vectors[i]) + *bias)
			scale := 1 - eta*svmLambda
			if scale < 0 {
				scale = 0
			}
			for j := range w {
				w[j] *= scale
			}
			if margin < 1 {
				for j, x := range vectors[i] {
					w[j] += eta * y * x
				}
				*bias += eta * y
			}
		}
	}
	return w
}

// Predict returns the best-scoring category and a softmax confidence over
// the per-category decision values.
func (s *LinearSVM) Predict(vector []float64) (string, float64, error) {
	if len(s.Categories) == 0 {
		return "", 0, ErrNotFitted
	}

	scores := make([]float64, len(s.Categories))
	best := 0
	for i := range s.Categories {
		scores[i] = dot(s.Weights[i], vector) + s.Biases[i]
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Softmax over decision values as a confidence proxy.
	var sum float64
	for _, score := range scores {
		sum += math.Exp(score - scores[best])
	}
	confidence := 1 / sum

	return s.Categories[best], confidence, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
