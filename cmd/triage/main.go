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


package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/triage"
	"github.com/poiesic/triage/ai"
	"github.com/poiesic/triage/ingest"
	"github.com/poiesic/triage/storage/pinecone"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "triage",
		Usage: "Support knowledge base: document ingestion, retrieval-augmented answering, and ticket classification",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with API credentials",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Chunk and index documents (PDF or CSV files)",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags:     append(engineFlags(), chunkingFlags()...),
			},
			{
				Name:      "ingest-sitemap",
				Usage:     "Crawl a sitemap and index every page it lists",
				ArgsUsage: "URL",
				Action:    ingestSitemapCommand,
				Flags:     append(engineFlags(), chunkingFlags()...),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the indexed documents",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of context chunks to retrieve",
						Value: 2,
					},
				),
			},
			{
				Name:      "classify",
				Usage:     "Assign a support category to ticket text",
				ArgsUsage: "TEXT",
				Action:    classifyCommand,
				Flags:     engineFlags(),
			},
			{
				Name:      "train",
				Usage:     "Train the supervised classifier from a labeled CSV (text,category)",
				ArgsUsage: "FILE",
				Action:    trainCommand,
				Flags: append(engineFlags(),
					&cli.BoolFlag{
						Name:  "ingest-rows",
						Usage: "Also index the ticket texts as context documents",
					},
				),
			},
			{
				Name:      "screen",
				Usage:     "Rank indexed resumes against a job description and summarize the top hits",
				ArgsUsage: "JOB_DESCRIPTION",
				Action:    screenCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "num-resumes",
						Usage: "Number of resumes to shortlist",
						Value: 3,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that constructs an Engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Path to the local BadgerDB index directory",
			Value:   "triage-data",
		},
		&cli.StringFlag{
			Name:    "index",
			Usage:   "Name of the vector index",
			Value:   triage.DefaultIndexName,
			EnvVars: []string{"TRIAGE_INDEX_NAME"},
		},
		&cli.StringFlag{
			Name:  "model-dir",
			Usage: "Directory holding the trained classifier artifact",
			Value: triage.DefaultModelDir,
		},
		&cli.StringFlag{
			Name:    "pinecone-api-key",
			Usage:   "Use the Pinecone managed index instead of local BadgerDB",
			EnvVars: []string{"PINECONE_API_KEY"},
		},
	}
}

func chunkingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "Chunk size in runes",
			Value: ingest.DefaultChunkSize,
		},
		&cli.IntFlag{
			Name:  "chunk-overlap",
			Usage: "Overlap between consecutive chunks in runes",
			Value: ingest.DefaultChunkOverlap,
		},
	}
}

// newEngine builds an Engine from the command flags and the environment.
func newEngine(c *cli.Context) (*triage.Engine, error) {
	cfg, err := ai.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []triage.EngineOption{
		triage.WithAIConfig(cfg),
		triage.WithIndexName(c.String("index")),
		triage.WithModelDir(c.String("model-dir")),
		triage.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")),
	}
	if c.IsSet("top-k") {
		opts = append(opts, triage.WithTopK(c.Int("top-k")))
	}

	if apiKey := c.String("pinecone-api-key"); apiKey != "" {
		store, err := pinecone.NewStore(apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Pinecone store: %w", err)
		}
		opts = append(opts, triage.WithVectorStore(store))
	}

	engine, err := triage.NewEngine(c.String("data"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var sources []ingest.Source
	for _, path := range c.Args().Slice() {
		fileSources, err := sourcesFromFile(path)
		if err != nil {
			return err
		}
		sources = append(sources, fileSources...)
	}

	stats, errs := engine.Ingest(context.Background(), sources...)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d documents, %d vectors total\n", stats.DocumentsAdded, stats.TotalVectors)
	if len(errs) > 0 {
		return fmt.Errorf("%d documents failed", len(errs))
	}
	return nil
}

// sourcesFromFile turns one input file into ingestion sources.
// PDFs become a single source; CSVs become one source per row, using the
// first column as the document text. File contents are read up front so
// no handle stays open across the ingest call.
func sourcesFromFile(path string) ([]ingest.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return []ingest.Source{ingest.NewPDFSource(filepath.Base(path), bytes.NewReader(data), int64(len(data)))}, nil
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return csvSources(f, filepath.Base(path))
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

func csvSources(r io.Reader, file string) ([]ingest.Source, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var sources []ingest.Source
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row %d: %w", file, row, err)
		}
		if len(record) > 0 {
			sources = append(sources, &ingest.CSVRowSource{File: file, Row: row, Text: record[0]})
		}
		row++
	}
	return sources, nil
}

func ingestSitemapCommand(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("sitemap URL is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, errs := engine.IngestSitemap(context.Background(), url)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d documents, %d vectors total\n", stats.DocumentsAdded, stats.TotalVectors)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("a question is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	answer, err := engine.Ask(context.Background(), question)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	fmt.Println(answer.Text)
	for _, source := range answer.Sources {
		fmt.Fprintf(os.Stderr, "  source: %s (score %.3f)\n", source.Entry.Metadata["source"], source.Score)
	}
	return nil
}

func classifyCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("ticket text is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	outcome := engine.Classify(context.Background(), text)
	fmt.Println(outcome.Category)
	fmt.Fprintf(os.Stderr, "  method: %s, confidence %.3f\n", outcome.Method, outcome.Confidence)
	return nil
}

func trainCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a labeled CSV file is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	origin := filepath.Base(path)
	examples, err := ingest.ReadLabeledCSV(f, origin)
	if err != nil {
		return fmt.Errorf("failed to read training data: %w", err)
	}

	report, err := engine.Train(examples)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Trained on %d examples, evaluated on %d\n", report.TrainSamples, report.TestSamples)
	fmt.Fprintf(os.Stderr, "Accuracy: %.3f\n", report.Accuracy)
	for class, metrics := range report.Classes {
		fmt.Fprintf(os.Stderr, "  %s: precision %.3f, recall %.3f, f1 %.3f (n=%d)\n",
			class, metrics.Precision, metrics.Recall, metrics.F1, metrics.Support)
	}

	if c.Bool("ingest-rows") {
		stats, errs := engine.Ingest(context.Background(), ingest.CSVRowSources(origin, examples)...)
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "Indexed %d ticket texts\n", stats.DocumentsAdded)
	}
	return nil
}

func screenCommand(c *cli.Context) error {
	jobDescription := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(jobDescription) == "" {
		return fmt.Errorf("a job description is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.ScreenResumes(context.Background(), jobDescription, c.Int("num-resumes"))
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	for i, result := range results {
		fmt.Printf("%d. %s (score %.3f)\n", i+1, result.Origin, result.Score)
		fmt.Printf("   %s\n", result.Summary)
	}
	return nil
}

func setup(c *cli.Context) error {
	// Credentials usually live in a .env file next to the binary; a missing
	// file is fine, the environment may already be populated.
	if err := godotenv.Load(c.String("env-file")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
