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

// stubRetriever returns canned matches or a canned error.
type stubRetriever struct {
	matches []*core.RetrievalMatch
	err     error
	lastK   int
}

func (s *stubRetriever) Query(ctx context.Context, text string, k int) ([]*core.RetrievalMatch, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	if len(s.matches) > k {
		return s.matches[:k], nil
	}
	return s.matches, nil
}

func makeMatch(text, source string, score float32) *core.RetrievalMatch {
	return &core.RetrievalMatch{
		Entry: &core.IndexEntry{
			Id:       core.IDFromContent(text),
			Text:     text,
			Metadata: map[string]string{"source": source},
		},
		Score: score,
	}
}

func TestNewResponder_Validation(t *testing.T) {
	generator := mock.NewMockGenerator("ok")

	_, err := NewResponder(nil, generator)
	assert.ErrorIs(t, err, ErrRetrieverRequired)

	_, err = NewResponder(&stubRetriever{}, nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestAnswer_PromptContainsContextInRetrievalOrder(t *testing.T) {
	retriever := &stubRetriever{matches: []*core.RetrievalMatch{
		makeMatch("Refunds are processed within 5 business days.", "faq.pdf", 0.91),
		makeMatch("Contact billing for invoice disputes.", "faq.pdf", 0.84),
	}}
	generator := mock.NewMockGenerator("Refunds take five business days.")

	responder, err := NewResponder(retriever, generator)
	require.NoError(t, err)

	answer, err := responder.Answer(context.Background(), "how long do refunds take?")
	require.NoError(t, err)
	assert.Equal(t, "Refunds take five business days.", answer.Text)
	require.Len(t, answer.Sources, 2)

	prompt := generator.LastPrompt()
	assert.Contains(t, prompt, "Refunds are processed within 5 business days.\nContact billing for invoice disputes.")
	assert.Contains(t, prompt, "how long do refunds take?")
	assert.Contains(t, prompt, "just say that you don't know")
	assert.Contains(t, prompt, "three sentences maximum")
}

func TestAnswer_DefaultTopK(t *testing.T) {
	retriever := &stubRetriever{}
	responder, err := NewResponder(retriever, mock.NewMockGenerator("ok"))
	require.NoError(t, err)

	_, err = responder.Answer(context.Background(), "any question")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, retriever.lastK)
}

func TestAnswer_CustomTopK(t *testing.T) {
	retriever := &stubRetriever{}
	responder, err := NewResponder(retriever, mock.NewMockGenerator("ok"), WithTopK(5))
	require.NoError(t, err)

	_, err = responder.Answer(context.Background(), "any question")
	require.NoError(t, err)
	assert.Equal(t, 5, retriever.lastK)
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	responder, err := NewResponder(&stubRetriever{}, mock.NewMockGenerator("ok"))
	require.NoError(t, err)

	_, err = responder.Answer(context.Background(), "  \n ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAnswer_RetrieverErrorPropagates(t *testing.T) {
	wantErr := errors.New("index unavailable")
	responder, err := NewResponder(&stubRetriever{err: wantErr}, mock.NewMockGenerator("ok"))
	require.NoError(t, err)

	_, err = responder.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, wantErr)
}
