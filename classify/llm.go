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
	"fmt"
	"strings"

	"github.com/poiesic/triage/ai"
	"github.com/poiesic/triage/core"
)

// Category carries a label and the description shown to the model.
type Category struct {
	Name        string
	Description string
}

// DefaultCategories is the fixed ticket label set.
var DefaultCategories = []Category{
	{Name: "HR Support", Description: "Issues related to human resources, payroll, benefits, leave, employee relations"},
	{Name: "IT Support", Description: "Technical issues, software problems, hardware issues, access problems"},
	{Name: "Transportation Support", Description: "Company vehicle issues, commute problems, travel arrangements"},
}

// LLMStrategy classifies with a zero-shot prompt listing the known
// categories. A response that is not exactly one of them maps to the
// default category; only a failed model call makes the attempt itself
// fail (and the chain's terminal default take over).
type LLMStrategy struct {
	generator       ai.Generator
	categories      []Category
	defaultCategory string
}

var _ Strategy = (*LLMStrategy)(nil)

// NewLLMStrategy creates the zero-shot classification strategy.
// An empty categories slice falls back to DefaultCategories.
func NewLLMStrategy(generator ai.Generator, categories []Category, defaultCategory string) *LLMStrategy {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	return &LLMStrategy{
		generator:       generator,
		categories:      categories,
		defaultCategory: defaultCategory,
	}
}

func (s *LLMStrategy) Name() string {
	return "llm"
}

// Attempt asks the model for a bare category name.
func (s *LLMStrategy) Attempt(ctx context.Context, text string) (*core.ClassificationOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	response, err := s.generator.Complete(ctx, s.buildPrompt(text))
	if err != nil {
		return nil, err
	}

	category := s.defaultCategory
	cleaned := strings.TrimSpace(response)
	for _, known := range s.categories {
		if cleaned == known.Name {
			category = known.Name
			break
		}
	}

	return &core.ClassificationOutcome{
		Category: category,
		Method:   core.MethodLLM,
	}, nil
}

// buildPrompt lists the categories with their descriptions and instructs
// the model to answer with the bare category name.
func (s *LLMStrategy) buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Classify the following support ticket into one of these categories:\n")
	names := make([]string, len(s.categories))
	for i, category := range s.categories {
		fmt.Fprintf(&b, "- %s: %s\n", category.Name, category.Description)
		names[i] = category.Name
	}
	fmt.Fprintf(&b, "\nTicket: %s\n", text)
	fmt.Fprintf(&b, "\nRespond with only the category name (%s).\n", strings.Join(names, ", "))
	return b.String()
}
