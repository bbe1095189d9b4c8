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


package respond

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/triage/ai"
	"github.com/poiesic/triage/core"
)

// DefaultTopK is the number of context chunks retrieved per question.
const DefaultTopK = 2

// answerTemplate instructs the model to answer only from the supplied
// context and to admit ignorance. The pipeline does not verify the claim;
// the template asks the model to self-limit.
const answerTemplate = `You are an assistant for question-answering tasks.
Use the following pieces of retrieved context to answer the question.
If you don't know the answer, just say that you don't know.
Use three sentences maximum and keep the answer concise.
Context: %s
Question: %s
`

// Retriever is the read path of the index gateway.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]*core.RetrievalMatch, error)
}

// Answer is a generated response plus the retrieved chunks it was
// grounded on, in retrieval order.
type Answer struct {
	Text    string
	Sources []*core.RetrievalMatch
}

// Responder answers questions from indexed context chunks.
type Responder struct {
	retriever Retriever
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder)

// WithTopK overrides how many chunks are retrieved per question.
func WithTopK(k int) Option {
	return func(r *Responder) {
		if k >= 1 {
			r.topK = k
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResponder creates a Responder.
func NewResponder(retriever Retriever, generator ai.Generator, opts ...Option) (*Responder, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	r := &Responder{
		retriever: retriever,
		generator: generator,
		topK:      DefaultTopK,
		logger:    slog.Default().With("component", "respond"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Answer retrieves the nearest chunks and asks the model to answer from
// them. Chunk texts are newline-joined in retrieval order.
func (r *Responder) Answer(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	matches, err := r.retriever.Query(ctx, question, r.topK)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(answerTemplate, combineMatches(matches), question)
	response, err := r.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("answered question", "sources", len(matches))
	return &Answer{Text: response, Sources: matches}, nil
}

// combineMatches newline-joins chunk texts, preserving retrieval order.
func combineMatches(matches []*core.RetrievalMatch) string {
	texts := make([]string, len(matches))
	for i, match := range matches {
		texts[i] = match.Entry.Text
	}
	return strings.Join(texts, "\n")
}
