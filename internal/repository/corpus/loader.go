package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/faqmatch/internal/domain"
	domcorpus "github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
)

// Loader reads the FAQ source file once.
type Loader struct {
	path   string
	logger *zap.Logger
}

// New creates a loader for the file at path.
func New(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// Load reads and parses the file. Records missing a question or answer are
// skipped with a warning. Any read or parse failure wraps domain.ErrCorpusLoad.
func (l *Loader) Load() (*domcorpus.Corpus, error) {
	data, err := os.ReadFile(filepath.Clean(l.path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCorpusLoad, l.path, err)
	}

	records, err := Parse(data, formatOf(l.path), l.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorpusLoad, l.path, err)
	}

	sum := sha256.Sum256(data)
	l.logger.Info("FAQ corpus loaded",
		zap.String("path", l.path),
		zap.Int("records", len(records)),
	)
	return domcorpus.New(records, hex.EncodeToString(sum[:])), nil
}

// Format is the encoding of a FAQ source.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a FAQ document in the given format.
func Parse(data []byte, format Format, logger *zap.Logger) ([]faq.Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var file fileRow
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	records := make([]faq.Record, 0, len(file.FAQs))
	for _, row := range file.FAQs {
		fields, err := fieldsFromRow(row)
		if err != nil {
			return nil, err
		}
		rec, err := faq.New(fields)
		if err != nil {
			logger.Warn("Skipping invalid FAQ record", zap.Int("id", row.ID), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
