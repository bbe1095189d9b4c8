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
	"log/slog"
	"strings"

	"github.com/poiesic/triage/ai"
)

// ResumeMatch is one screened candidate: where the resume came from, how
// similar it is to the job description, and a generated summary.
type ResumeMatch struct {
	Origin  string
	Score   float32
	Summary string
}

// Screener ranks indexed resumes against a job description and
// summarizes each hit with a map-reduce chain.
type Screener struct {
	retriever  Retriever
	summarizer ai.Summarizer
	logger     *slog.Logger
}

// NewScreener creates a Screener.
func NewScreener(retriever Retriever, summarizer ai.Summarizer) (*Screener, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	return &Screener{
		retriever:  retriever,
		summarizer: summarizer,
		logger:     slog.Default().With("component", "screener"),
	}, nil
}

// Screen retrieves the numResumes most similar resumes and summarizes
// each one. Results keep retrieval order (best match first).
func (s *Screener) Screen(ctx context.Context, jobDescription string, numResumes int) ([]ResumeMatch, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyQuestion
	}

	matches, err := s.retriever.Query(ctx, jobDescription, numResumes)
	if err != nil {
		return nil, err
	}

	results := make([]ResumeMatch, 0, len(matches))
	for _, match := range matches {
		summary, err := s.summarizer.Summarize(ctx, []string{match.Entry.Text})
		if err != nil {
			return nil, err
		}
		results = append(results, ResumeMatch{
			Origin:  match.Entry.Metadata["source"],
			Score:   match.Score,
			Summary: summary,
		})
	}

	s.logger.Info("screened resumes", "requested", numResumes, "matched", len(results))
	return results, nil
}
