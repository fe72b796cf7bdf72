package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"galley/internal/catalog"
	"galley/internal/config"
	"galley/internal/logging"
)

// Completer is the provider surface the pipeline needs; Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// Pipeline generates the content set for one item. It satisfies the
// runner's Processor contract.
type Pipeline struct {
	completer    Completer
	product      string
	outputDir    string
	researchDir  string
	skipResearch bool
	logger       *slog.Logger
}

// NewPipeline builds a pipeline from configuration.
func NewPipeline(cfg *config.Config, completer Completer, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline requires config")
	}
	if completer == nil {
		return nil, errors.New("pipeline requires a completer")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		completer:    completer,
		product:      cfg.Generation.Product,
		outputDir:    cfg.Paths.OutputDir,
		researchDir:  cfg.Paths.ResearchDir,
		skipResearch: cfg.Generation.SkipResearch,
		logger:       logger,
	}, nil
}

// CodeExample is one generated code comparison pair.
type CodeExample struct {
	Task        string `json:"task"`
	Filename    string `json:"filename"`
	LibraryCode string `json:"library_code"`
	ProductCode string `json:"product_code"`
}

// Process generates and writes all artifacts for item. The article is
// mandatory; the migration guide and code examples are best effort, since a
// partial content set is still useful and the run summary should reflect
// article-level outcomes.
func (p *Pipeline) Process(ctx context.Context, item catalog.Item) error {
	itemDir := filepath.Join(p.outputDir, item.Slug)
	if err := os.MkdirAll(itemDir, 0o755); err != nil {
		return fmt.Errorf("create item directory: %w", err)
	}

	var research string
	if !p.skipResearch {
		research = SearchResearch(p.researchDir, item.Name, item.Slug)
		if research != "" {
			p.logger.Debug("research found", logging.String("slug", item.Slug), logging.Int("chars", len(research)))
		}
	}

	article, err := p.completer.Complete(ctx, articlePrompt(p.product, item, research))
	if err != nil {
		return fmt.Errorf("generate article: %w", err)
	}
	if err := os.WriteFile(filepath.Join(itemDir, "README.md"), []byte(article), 0o644); err != nil {
		return fmt.Errorf("write article: %w", err)
	}

	if err := p.writeMigrationGuide(ctx, itemDir, item); err != nil {
		p.logger.Warn("migration guide skipped", logging.String("slug", item.Slug), logging.Error(err))
	}
	if err := p.writeCodeExamples(ctx, itemDir, item); err != nil {
		p.logger.Warn("code examples skipped", logging.String("slug", item.Slug), logging.Error(err))
	}

	return nil
}

func (p *Pipeline) writeMigrationGuide(ctx context.Context, itemDir string, item catalog.Item) error {
	guide, err := p.completer.Complete(ctx, migrationPrompt(p.product, item))
	if err != nil {
		return err
	}
	name := fmt.Sprintf("migrate-from-%s.md", item.Slug)
	return os.WriteFile(filepath.Join(itemDir, name), []byte(guide), 0o644)
}

func (p *Pipeline) writeCodeExamples(ctx context.Context, itemDir string, item catalog.Item) error {
	payload, err := p.completer.CompleteJSON(ctx, examplesPrompt(p.product, item))
	if err != nil {
		return err
	}
	examples, err := decodeExamples(payload)
	if err != nil {
		return err
	}
	for _, example := range examples {
		base := sanitizeFilename(example.Filename)
		if base == "" {
			base = "example"
		}
		if example.LibraryCode != "" {
			name := fmt.Sprintf("%s-%s.cs", base, item.Slug)
			if err := os.WriteFile(filepath.Join(itemDir, name), []byte(example.LibraryCode), 0o644); err != nil {
				return err
			}
		}
		if example.ProductCode != "" {
			name := fmt.Sprintf("%s-%s.cs", base, strings.ToLower(p.product))
			if err := os.WriteFile(filepath.Join(itemDir, name), []byte(example.ProductCode), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeExamples(payload string) ([]CodeExample, error) {
	var wrapped struct {
		Examples []CodeExample `json:"examples"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapped); err == nil && len(wrapped.Examples) > 0 {
		return wrapped.Examples, nil
	}
	// Some models answer with a bare array despite the object instruction.
	var bare []CodeExample
	if err := json.Unmarshal([]byte(payload), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}
	return nil, errors.New("decode examples: no usable payload")
}

var unsafeFilenamePattern = regexp.MustCompile(`[^a-z0-9-]+`)

func sanitizeFilename(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	lowered = strings.ReplaceAll(lowered, " ", "-")
	return strings.Trim(unsafeFilenamePattern.ReplaceAllString(lowered, "-"), "-")
}
