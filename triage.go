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


package triage

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/poiesic/triage/ai"
	"github.com/poiesic/triage/ai/openai"
	"github.com/poiesic/triage/classify"
	"github.com/poiesic/triage/core"
	"github.com/poiesic/triage/index"
	"github.com/poiesic/triage/ingest"
	"github.com/poiesic/triage/respond"
	"github.com/poiesic/triage/storage"
	"github.com/poiesic/triage/storage/badger"
)

// Defaults used when no option overrides them.
const (
	DefaultIndexName = "triage-support"
	DefaultModelDir  = "models"
)

// Engine wires the full pipeline: document ingestion, the embedding/index
// gateway, the classification chain, and retrieval-augmented responding.
type Engine struct {
	store     storage.VectorIndex
	provider  ai.Provider
	gateway   *index.Gateway
	chain     *classify.Chain
	responder *respond.Responder
	screener  *respond.Screener
	modelDir  string
	logger    *slog.Logger

	chunkSize    int
	chunkOverlap int
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig        *ai.Config
	provider        ai.Provider
	store           storage.VectorIndex
	indexName       string
	modelDir        string
	defaultCategory string
	categories      []classify.Category
	topK            int
	dimension       int
	chunkSize       int
	chunkOverlap    int
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) { o.aiConfig = cfg }
}

// WithProvider injects a pre-built AI provider (used by tests with mocks).
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) { o.provider = provider }
}

// WithVectorStore injects a vector store backend, e.g. the Pinecone store
// for managed deployments. Default is local BadgerDB under the data path.
func WithVectorStore(store storage.VectorIndex) EngineOption {
	return func(o *engineOptions) { o.store = store }
}

// WithIndexName overrides the named index the engine reads and writes.
func WithIndexName(name string) EngineOption {
	return func(o *engineOptions) { o.indexName = name }
}

// WithModelDir overrides where the classifier artifact lives.
func WithModelDir(dir string) EngineOption {
	return func(o *engineOptions) { o.modelDir = dir }
}

// WithDefaultCategory overrides the label used when classification
// exhausts every strategy.
func WithDefaultCategory(category string) EngineOption {
	return func(o *engineOptions) { o.defaultCategory = category }
}

// WithCategories overrides the ticket label set shown to the LLM.
func WithCategories(categories []classify.Category) EngineOption {
	return func(o *engineOptions) { o.categories = categories }
}

// WithTopK overrides how many chunks back each answer.
func WithTopK(k int) EngineOption {
	return func(o *engineOptions) { o.topK = k }
}

// WithDimension overrides the vector dimension of the index. It must
// match what the configured embedding model produces.
func WithDimension(dimension int) EngineOption {
	return func(o *engineOptions) { o.dimension = dimension }
}

// WithChunking overrides the chunk size and overlap used at ingest.
func WithChunking(size, overlap int) EngineOption {
	return func(o *engineOptions) {
		o.chunkSize = size
		o.chunkOverlap = overlap
	}
}

// NewEngine creates an Engine storing vectors under dataPath. Each Engine
// owns its provider, store, and gateway; hosts construct one Engine per
// process and share it across sessions. Callers wiring a gateway directly
// instead of through an Engine should go through index.Shared.
func NewEngine(dataPath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:        ai.DefaultConfig(),
		indexName:       DefaultIndexName,
		modelDir:        DefaultModelDir,
		defaultCategory: classify.DefaultCategory,
		topK:            respond.DefaultTopK,
		dimension:       index.DefaultDimension,
		chunkSize:       ingest.DefaultChunkSize,
		chunkOverlap:    ingest.DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(options)
	}

	store := options.store
	if store == nil {
		var err error
		store, err = badger.NewIndex(dataPath)
		if err != nil {
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	gateway, err := index.NewGateway(store, provider.Embedder(), provider.EmbeddingModelID(), options.indexName,
		index.WithDimension(options.dimension))
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	chain := classify.NewChain(
		[]classify.Strategy{
			classify.NewSupervisedStrategy(options.modelDir),
			classify.NewLLMStrategy(provider.Generator(), options.categories, options.defaultCategory),
		},
		classify.WithDefaultCategory(options.defaultCategory),
	)

	responder, err := respond.NewResponder(gateway, provider.Generator(), respond.WithTopK(options.topK))
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	screener, err := respond.NewScreener(gateway, provider.Summarizer())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Engine{
		store:        store,
		provider:     provider,
		gateway:      gateway,
		chain:        chain,
		responder:    responder,
		screener:     screener,
		modelDir:     options.modelDir,
		logger:       slog.Default().With("component", "engine"),
		chunkSize:    options.chunkSize,
		chunkOverlap: options.chunkOverlap,
	}, nil
}

// Close releases the provider and the vector store.
func (e *Engine) Close() error {
	e.provider.Close()
	return e.store.Close()
}

// Gateway exposes the embedding/index gateway for direct use.
func (e *Engine) Gateway() *index.Gateway {
	return e.gateway
}

// Ingest extracts, chunks, and indexes documents. All chunks of one call
// share a batch correlation id. Documents that fail to extract are
// skipped and reported in the returned error slice; the rest proceed.
func (e *Engine) Ingest(ctx context.Context, sources ...ingest.Source) (index.UpsertStats, []error) {
	docs, errs := ingest.ExtractAll(ctx, sources)

	batchID := uuid.NewString()
	var chunks []core.TextChunk
	for _, doc := range docs {
		docChunks, err := ingest.ChunkDocument(doc, e.chunkSize, e.chunkOverlap, batchID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		chunks = append(chunks, docChunks...)
	}
	if len(chunks) == 0 {
		return index.UpsertStats{}, errs
	}

	stats, err := e.gateway.Upsert(ctx, chunks)
	if err != nil {
		errs = append(errs, err)
		return index.UpsertStats{}, errs
	}

	e.logger.Info("ingest complete", "documents", len(docs), "chunks", len(chunks), "batch_id", batchID)
	return stats, errs
}

// IngestSitemap crawls a sitemap and indexes every page it lists.
func (e *Engine) IngestSitemap(ctx context.Context, url string) (index.UpsertStats, []error) {
	loader := ingest.NewSitemapLoader()
	docs, errs := loader.Load(ctx, url)

	batchID := uuid.NewString()
	var chunks []core.TextChunk
	for _, doc := range docs {
		docChunks, err := ingest.ChunkDocument(doc, e.chunkSize, e.chunkOverlap, batchID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		chunks = append(chunks, docChunks...)
	}
	if len(chunks) == 0 {
		return index.UpsertStats{}, errs
	}

	stats, err := e.gateway.Upsert(ctx, chunks)
	if err != nil {
		errs = append(errs, err)
		return index.UpsertStats{}, errs
	}
	return stats, errs
}

// Ask answers a question from the indexed context.
func (e *Engine) Ask(ctx context.Context, question string) (*respond.Answer, error) {
	return e.responder.Answer(ctx, question)
}

// Classify runs the ticket text through the strategy chain. It always
// returns an outcome; the Method field records which strategy produced it.
func (e *Engine) Classify(ctx context.Context, text string) *core.ClassificationOutcome {
	return e.chain.Classify(ctx, text)
}

// Train fits the supervised classifier on labeled examples and persists
// the artifact where the classification chain will find it.
func (e *Engine) Train(examples []core.LabeledExample) (*classify.TrainingReport, error) {
	model, report, err := classify.Train(examples)
	if err != nil {
		return nil, err
	}
	if err := model.Save(e.modelDir); err != nil {
		return nil, err
	}
	return report, nil
}

// TrainFromCSV reads a header-less two-column (text, category) CSV and
// trains on it.
func (e *Engine) TrainFromCSV(r io.Reader, origin string) (*classify.TrainingReport, error) {
	examples, err := ingest.ReadLabeledCSV(r, origin)
	if err != nil {
		return nil, err
	}
	return e.Train(examples)
}

// ScreenResumes ranks indexed resumes against a job description and
// summarizes the top numResumes hits.
func (e *Engine) ScreenResumes(ctx context.Context, jobDescription string, numResumes int) ([]respond.ResumeMatch, error) {
	return e.screener.Screen(ctx, jobDescription, numResumes)
}
