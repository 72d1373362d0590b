package candidate

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const (
	userAgent       = "spigell/hiring-slate"
	contentEncoding = "gzip"
)

//go:embed schema.json
var collectionSchema string

// FieldError is a single schema violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

// InputError reports that loaded data is not a recognizable candidate
// collection. It is meant to be shown to the user as is.
type InputError struct {
	Source string
	Errors []FieldError
	Cause  error
}

func (e *InputError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is not a recognizable candidate collection", e.Source)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	for i, fe := range e.Errors {
		if i == 0 {
			sb.WriteString(":")
		}
		fmt.Fprintf(&sb, " [%s: %s]", fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Loader reads candidate collections from local files or http(s) URLs.
type Loader struct {
	HTTPClient *http.Client
	UserAgent  string
	logger     *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		logger:    logger,
	}
}

// Load reads source and parses it into a fully materialized collection.
func (l *Loader) Load(ctx context.Context, source string) (*Candidates, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("candidate source is not configured")
	}

	var (
		data []byte
		err  error
	)

	if isURL(source) {
		data, err = l.fetch(ctx, source)
	} else {
		l.logger.Debug("reading candidates file", zap.String("path", source))
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("reading candidates from %s: %w", source, err)
	}

	return Parse(data, source)
}

// Parse validates data against the collection schema and decodes every
// record. A record that cannot be decoded is kept with all of its keys in
// Extra, so it takes part in scoring as a candidate without known fields.
func Parse(data []byte, source string) (*Candidates, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(collectionSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &InputError{Source: source, Cause: err}
	}

	if !result.Valid() {
		inputErr := &InputError{
			Source: source,
			Errors: make([]FieldError, 0, len(result.Errors())),
		}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			inputErr.Errors = append(inputErr.Errors, FieldError{
				Field:   field,
				Message: desc.Description(),
			})
		}
		return nil, inputErr
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &InputError{Source: source, Cause: err}
	}

	items := make([]*Candidate, 0, len(records))
	for i, record := range records {
		c, err := Decode(record)
		if err != nil {
			c = &Candidate{Extra: record}
		}
		c.position = i + 1
		items = append(items, c)
	}

	return &Candidates{Items: items}, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", l.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", contentEncoding)

	l.logger.Debug("make request", zap.String("url", url))
	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
