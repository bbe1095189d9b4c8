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
	"context"

	"github.com/poiesic/triage/core"
)

// SupervisedStrategy classifies with the persisted TF-IDF + SVM model.
// The model is loaded per attempt, so a model trained after the strategy
// was wired is picked up without restarting.
type SupervisedStrategy struct {
	modelDir string
	model    *Model // pinned model, used instead of modelDir when set
}

var _ Strategy = (*SupervisedStrategy)(nil)

// NewSupervisedStrategy creates a strategy loading the model from dir.
func NewSupervisedStrategy(modelDir string) *SupervisedStrategy {
	return &SupervisedStrategy{modelDir: modelDir}
}

// NewSupervisedStrategyFromModel pins an in-memory model.
func NewSupervisedStrategyFromModel(model *Model) *SupervisedStrategy {
	return &SupervisedStrategy{model: model}
}

func (s *SupervisedStrategy) Name() string {
	return "supervised"
}

// Attempt predicts with the trained model. A missing artifact or a
// prediction failure is returned as an error so the chain falls through.
func (s *SupervisedStrategy) Attempt(ctx context.Context, text string) (*core.ClassificationOutcome, error) {
	model := s.model
	if model == nil {
		var err error
		model, err = LoadModel(s.modelDir)
		if err != nil {
			return nil, err
		}
	}

	category, confidence, err := model.Predict(text)
	if err != nil {
		return nil, err
	}

	return &core.ClassificationOutcome{
		Category:   category,
		Confidence: confidence,
		Method:     core.MethodModel,
	}, nil
}
