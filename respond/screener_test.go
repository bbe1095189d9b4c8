package respond

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/triage/ai/mock"
	"github.com/poiesic/triage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreen_SummarizesEachMatch(t *testing.T) {
	r := &stubRetriever{matches: []*core.RetrievalMatch{
		makeMatch("Senior Go engineer, 8 years backend experience.", "resume-a.pdf", 0.93),
		makeMatch("Frontend developer with some Go exposure.", "resume-b.pdf", 0.71),
	}}

	summarizer := &mock.MockSummarizer{}
	summarizer.SummarizeFunc = func(ctx context.Context, texts []string) (string, error) {
		require.Len(t, texts, 1)
		return "summary of: " + texts[0][:10], nil
	}

	screener, err := NewScreener(r, summarizer)
	require.NoError(t, err)

	results, err := screener.Screen(context.Background(), "backend Go engineer", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "resume-a.pdf", results[0].Origin)
	assert.Equal(t, float32(0.93), results[0].Score)
	assert.Contains(t, results[0].Summary, "summary of:")
	assert.Equal(t, "resume-b.pdf", results[1].Origin)
}

func TestScreen_EmptyJobDescription(t *testing.T) {
	screener, err := NewScreener(&stubRetriever{}, &mock.MockSummarizer{Summary: "x"})
	require.NoError(t, err)

	_, err = screener.Screen(context.Background(), "   ", 3)
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestScreen_SummarizerErrorPropagates(t *testing.T) {
	r := &stubRetriever{matches: []*core.RetrievalMatch{
		makeMatch("some resume text", "resume.pdf", 0.8),
	}}
	wantErr := errors.New("summarize failed")
	summarizer := &mock.MockSummarizer{}
	summarizer.SummarizeFunc = func(ctx context.Context, texts []string) (string, error) {
		return "", wantErr
	}

	screener, err := NewScreener(r, summarizer)
	require.NoError(t, err)

	_, err = screener.Screen(context.Background(), "job description", 1)
	assert.ErrorIs(t, err, wantErr)
}

func TestNewScreener_Validation(t *testing.T) {
	_, err := NewScreener(nil, &mock.MockSummarizer{})
	assert.ErrorIs(t, err, ErrRetrieverRequired)

	_, err = NewScreener(&stubRetriever{}, nil)
	assert.ErrorIs(t, err, ErrSummarizerRequired)
}
