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
	"log/slog"

	"github.com/poiesic/triage/core"
)

// DefaultCategory is the label assigned when every strategy fails.
// Unresolvable tickets are routed to human triage rather than silently
// assigned a real department.
const DefaultCategory = "Unclassified"

// Strategy is one way of turning ticket text into a category. A strategy
// that cannot serve the request (no model, provider down) returns an error
// and the chain moves on.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, text string) (*core.ClassificationOutcome, error)
}

// Chain tries strategies in order and takes the first success.
// Classification always resolves to a label: if every strategy fails, the
// chain answers with its default category and the fallback method tag.
type Chain struct {
	strategies      []Strategy
	defaultCategory string
	logger          *slog.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithDefaultCategory overrides the terminal default label.
func WithDefaultCategory(category string) ChainOption {
	return func(c *Chain) {
		if category != "" {
			c.defaultCategory = category
		}
	}
}

// WithChainLogger sets a custom logger.
func WithChainLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChain creates a classification chain over the given strategies.
func NewChain(strategies []Strategy, opts ...ChainOption) *Chain {
	c := &Chain{
		strategies:      strategies,
		defaultCategory: DefaultCategory,
		logger:          slog.Default().With("component", "classify"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultCategory returns the chain's terminal default label.
func (c *Chain) DefaultCategory() string {
	return c.defaultCategory
}

// Classify runs the chain. It never fails: every path terminates in a
// ClassificationOutcome, with the method tag telling the caller how the
// label was produced.
func (c *Chain) Classify(ctx context.Context, text string) *core.ClassificationOutcome {
	for _, strategy := range c.strategies {
		outcome, err := strategy.Attempt(ctx, text)
		if err == nil {
			c.logger.Debug("strategy succeeded", "strategy", strategy.Name(), "category", outcome.Category)
			return outcome
		}
		c.logger.Debug("strategy failed, trying next", "strategy", strategy.Name(), "error", err)
	}

	c.logger.Warn("all strategies failed, using default category", "category", c.defaultCategory)
	return &core.ClassificationOutcome{
		Category: c.defaultCategory,
		Method:   core.MethodFallback,
	}
}
