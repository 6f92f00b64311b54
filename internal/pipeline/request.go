// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-composer/internal/search"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// ErrNoInput is returned when a compose request has no topic.
var ErrNoInput = errors.New("please enter your research topic")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize fills unset request fields from defaults. Zero Limit, empty
// Style and empty Sections take the configured values, falling back to
// search.DefaultLimit, APA and types.DefaultSections. Section names are
// trimmed and blank names dropped.
func Normalize(req types.ComposeRequest, defaults types.ComposeConfig) types.ComposeRequest {
	req.Topic = strings.TrimSpace(req.Topic)

	if req.Limit == 0 {
		req.Limit = defaults.Limit
	}
	if req.Limit == 0 {
		req.Limit = search.DefaultLimit
	}

	if req.Style == "" {
		req.Style = defaults.Style
	}
	if req.Style == "" {
		req.Style = types.StyleAPA
	}
	if s, err := types.ParseStyle(string(req.Style)); err == nil {
		req.Style = s
	}

	sections := make([]string, 0, len(req.Sections))
	for _, s := range req.Sections {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	if len(sections) == 0 {
		sections = append(sections, defaults.Sections...)
	}
	if len(sections) == 0 {
		sections = append(sections, types.DefaultSections...)
	}
	req.Sections = sections
	return req
}

// Validate checks a normalized request. A blank topic yields ErrNoInput;
// other violations are reported per field.
func Validate(req types.ComposeRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return ErrNoInput
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating request: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "min", "max":
		if fe.Field() == "Limit" {
			return fmt.Sprintf("limit must be between %d and %d", search.MinLimit, search.MaxLimit)
		}
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is %s", field, fe.Tag())
	}
}

// RequestFile is the on-disk form of a compose request and, once composed,
// its result. A saved file can be reloaded to re-export a document
// without querying any API again.
type RequestFile struct {
	Request   types.ComposeRequest    `yaml:"request"`
	Document  *types.ComposedDocument `yaml:"document,omitempty"`
	Timestamp time.Time               `yaml:"timestamp,omitempty"`
}

// WriteRequestFile saves a request and an optional composed document as YAML.
func WriteRequestFile(path string, req types.ComposeRequest, doc *types.ComposedDocument) error {
	rf := RequestFile{
		Request:   req,
		Document:  doc,
		Timestamp: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling request file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRequestFile loads a request file. A file holding only the request
// fields at the top level (topic, limit, style, sections) is accepted too.
func ReadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	if rf.Request.Topic == "" && rf.Document == nil {
		var bare types.ComposeRequest
		if err := yaml.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("parsing request file: %w", err)
		}
		rf.Request = bare
	}
	return &rf, nil
}
