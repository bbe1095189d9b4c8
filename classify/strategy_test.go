package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/triage/ai/mock"
	"github.com/poiesic/triage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_SupervisedFirst(t *testing.T) {
	model, _, err := Train(balancedDataset(40))
	require.NoError(t, err)

	generator := mock.NewMockGenerator("HR Support")
	chain := NewChain([]Strategy{
		NewSupervisedStrategyFromModel(model),
		NewLLMStrategy(generator, nil, DefaultCategory),
	})

	outcome := chain.Classify(context.Background(), "my printer won't print")
	assert.Equal(t, "IT Support", outcome.Category)
	assert.Equal(t, core.MethodModel, outcome.Method)
	assert.Greater(t, outcome.Confidence, 0.0)
}

func TestChain_FallsToLLMWithoutModel(t *testing.T) {
	// No artifact in an empty directory: supervised attempt fails, the
	// LLM strategy answers.
	generator := mock.NewMockGenerator("HR Support")
	chain := NewChain([]Strategy{
		NewSupervisedStrategy(t.TempDir()),
		NewLLMStrategy(generator, nil, DefaultCategory),
	})

	outcome := chain.Classify(context.Background(), "question about my payslip")
	assert.Equal(t, "HR Support", outcome.Category)
	assert.Equal(t, core.MethodLLM, outcome.Method)
}

func TestChain_UnknownLLMResponseMapsToDefault(t *testing.T) {
	generator := mock.NewMockGenerator("Definitely A Payroll Matter")
	chain := NewChain([]Strategy{
		NewSupervisedStrategy(t.TempDir()),
		NewLLMStrategy(generator, nil, DefaultCategory),
	})

	outcome := chain.Classify(context.Background(), "question about my payslip")
	assert.Equal(t, DefaultCategory, outcome.Category)
	assert.Equal(t, core.MethodLLM, outcome.Method)
}

func TestChain_NeverRaises(t *testing.T) {
	// Every strategy errors; classification still resolves to a label.
	generator := mock.NewMockGenerator("")
	generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("provider down")
	}
	chain := NewChain([]Strategy{
		NewSupervisedStrategy(t.TempDir()),
		NewLLMStrategy(generator, nil, DefaultCategory),
	})

	outcome := chain.Classify(context.Background(), "anything at all")
	require.NotNil(t, outcome)
	assert.Equal(t, DefaultCategory, outcome.Category)
	assert.Equal(t, core.MethodFallback, outcome.Method)
}

func TestChain_MethodIsNeverSupervisedWithoutArtifact(t *testing.T) {
	generator := mock.NewMockGenerator("IT Support")
	chain := NewChain([]Strategy{
		NewSupervisedStrategy(t.TempDir()),
		NewLLMStrategy(generator, nil, DefaultCategory),
	})

	outcome := chain.Classify(context.Background(), "laptop will not boot")
	assert.NotEqual(t, core.MethodModel, outcome.Method)
	assert.Contains(t, []string{core.MethodLLM, core.MethodFallback}, outcome.Method)
}

func TestChain_ConfigurableDefaultCategory(t *testing.T) {
	// Mirrors the original deployment, which defaulted to a real
	// department instead of a triage bucket.
	generator := mock.NewMockGenerator("")
	generator.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("provider down")
	}
	chain := NewChain(
		[]Strategy{NewLLMStrategy(generator, nil, "IT Support")},
		WithDefaultCategory("IT Support"),
	)

	outcome := chain.Classify(context.Background(), "whatever")
	assert.Equal(t, "IT Support", outcome.Category)
	assert.Equal(t, core.MethodFallback, outcome.Method)
}

func TestLLMStrategy_PromptListsCategories(t *testing.T) {
	generator := mock.NewMockGenerator("IT Support")
	strategy := NewLLMStrategy(generator, nil, DefaultCategory)

	_, err := strategy.Attempt(context.Background(), "my laptop is dead")
	require.NoError(t, err)

	prompt := generator.LastPrompt()
	assert.Contains(t, prompt, "HR Support")
	assert.Contains(t, prompt, "IT Support")
	assert.Contains(t, prompt, "Transportation Support")
	assert.Contains(t, prompt, "my laptop is dead")
	assert.Contains(t, prompt, "only the category name")
}

func TestLLMStrategy_EmptyInput(t *testing.T) {
	strategy := NewLLMStrategy(mock.NewMockGenerator("IT Support"), nil, DefaultCategory)
	_, err := strategy.Attempt(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}
