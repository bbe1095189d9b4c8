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
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/poiesic/triage/core"
)

// Model bundles the fitted vectorizer and classifier. The two are one
// unit; Save and Load refuse to separate them.
type Model struct {
	Vectorizer *Vectorizer
	Classifier *LinearSVM
}

// Categories returns the label set the model was trained on.
func (m *Model) Categories() []string {
	return m.Classifier.Categories
}

// Predict classifies one text.
func (m *Model) Predict(text string) (string, float64, error) {
	if strings.TrimSpace(text) == "" {
		return "", 0, ErrEmptyInput
	}
	vec, err := m.Vectorizer.Transform(text)
	if err != nil {
		return "", 0, err
	}
	return m.Classifier.Predict(vec)
}

// ClassMetrics holds per-category evaluation results on the held-out split.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// TrainingReport summarizes a training run.
type TrainingReport struct {
	Accuracy     float64
	Classes      map[string]ClassMetrics
	TrainSamples int
	TestSamples  int
}

// Train fits a TF-IDF + linear SVM model on labeled examples and evaluates
// it on a held-out 20% split (fixed seed, reproducible). Rows with blank
// text or category are dropped first; fewer than 2 distinct categories
// after cleaning fails with ErrTooFewCategories.
//
// Datasets too small to split (empty test side, or a train side that no
// longer covers 2 categories) are trained and evaluated on the full set
// instead, so tiny demo datasets still produce a model and a report.
func Train(examples []core.LabeledExample) (*Model, *TrainingReport, error) {
	var texts []string
	var labels []string
	for _, ex := range examples {
		text := strings.TrimSpace(ex.Text)
		category := strings.TrimSpace(ex.Category)
		if text == "" || category == "" {
			continue
		}
		texts = append(texts, text)
		labels = append(labels, category)
	}
	if len(texts) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	distinct := make(map[string]int)
	for _, label := range labels {
		distinct[label]++
	}
	if len(distinct) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooFewCategories, len(distinct))
	}

	trainIdx, testIdx := split(len(texts), labels)

	trainTexts := make([]string, len(trainIdx))
	trainLabels := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = texts[idx]
		trainLabels[i] = labels[idx]
	}

	vectorizer := NewVectorizer()
	if err := vectorizer.Fit(trainTexts); err != nil {
		return nil, nil, err
	}
	trainVectors, err := vectorizer.TransformAll(trainTexts)
	if err != nil {
		return nil, nil, err
	}

	classifier := &LinearSVM{}
	if err := classifier.Fit(trainVectors, trainLabels); err != nil {
		return nil, nil, err
	}

	model := &Model{Vectorizer: vectorizer, Classifier: classifier}
	report, err := evaluate(model, texts, labels, testIdx)
	if err != nil {
		return nil, nil, err
	}
	report.TrainSamples = len(trainIdx)

	slog.Default().With("component", "classify").Info("training complete",
		"samples", len(texts), "categories", len(distinct), "accuracy", report.Accuracy)
	return model, report, nil
}

// split shuffles indices with the fixed seed and carves off 20% for
// evaluation. If the test side would be empty, or the train side loses
// coverage of 2 categories, both sides become the full set.
func split(n int, labels []string) (train, test []int) {
	rng := rand.New(rand.NewSource(trainingSeed))
	order := rng.Perm(n)

	testCount := n / 5
	test = order[:testCount]
	train = order[testCount:]

	trainCategories := make(map[string]bool)
	for _, idx := range train {
		trainCategories[labels[idx]] = true
	}
	if testCount == 0 || len(trainCategories) < 2 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, all
	}
	return train, test
}

// evaluate computes accuracy and per-class precision/recall/F1 on the
// held-out indices.
func evaluate(model *Model, texts, labels []string, testIdx []int) (*TrainingReport, error) {
	type counts struct {
		tp, fp, fn, support int
	}
	perClass := make(map[string]*counts)
	for _, category := range model.Categories() {
		perClass[category] = &counts{}
	}

	correct := 0
	for _, idx := range testIdx {
		predicted, _, err := model.Predict(texts[idx])
		if err != nil {
			return nil, err
		}
		actual := labels[idx]

		if c, ok := perClass[actual]; ok {
			c.support++
		}
		if predicted == actual {
			correct++
			perClass[actual].tp++
		} else {
			if c, ok := perClass[predicted]; ok {
				c.fp++
			}
			if c, ok := perClass[actual]; ok {
				c.fn++
			}
		}
	}

	report := &TrainingReport{
		Accuracy:    float64(correct) / float64(len(testIdx)),
		Classes:     make(map[string]ClassMetrics, len(perClass)),
		TestSamples: len(testIdx),
	}
	for category, c := range perClass {
		var precision, recall, f1 float64
		if c.tp+c.fp > 0 {
			precision = float64(c.tp) / float64(c.tp+c.fp)
		}
		if c.tp+c.fn > 0 {
			recall = float64(c.tp) / float64(c.tp+c.fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		report.Classes[category] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   c.support,
		}
	}
	return report, nil
}
