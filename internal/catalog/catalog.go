package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mondai-quiz/mondai/internal/quiz"
)

// DefaultIcon is shown for sets that do not declare one.
const DefaultIcon = "📝"

// ErrInvalidSetID rejects ids that could escape the catalog root.
var ErrInvalidSetID = errors.New("invalid set id")

// SetInfo is one manifest entry.
type SetInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Icon          string `json:"icon,omitempty"`
	QuestionCount int    `json:"questionCount"`
	Version       int    `json:"version"`
}

// DisplayIcon returns the set icon or DefaultIcon.
func (s SetInfo) DisplayIcon() string {
	if s.Icon == "" {
		return DefaultIcon
	}
	return s.Icon
}

// Catalog lists and loads question sets from a Source.
type Catalog struct {
	src Source
	log logrus.FieldLogger
}

var _ quiz.Loader = (*Catalog)(nil)

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for fail-soft diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Catalog) { c.log = l }
}

// New creates a Catalog reading from src.
func New(src Source, opts ...Option) *Catalog {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	c := &Catalog{src: src, log: silent}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the underlying source.
func (c *Catalog) Source() Source { return c.src }

// ListSets returns the manifest entries. Browsing is non-critical, so any
// failure is logged and yields an empty list instead of an error.
func (c *Catalog) ListSets(ctx context.Context) []SetInfo {
	sets, err := c.Manifest(ctx)
	if err != nil {
		c.log.WithError(err).WithField("source", c.src.Location()).Warn("set manifest unavailable")
		return []SetInfo{}
	}
	return sets
}

// Manifest is ListSets with the failure reported.
func (c *Catalog) Manifest(ctx context.Context) ([]SetInfo, error) {
	raw, err := c.src.Fetch(ctx, ManifestName)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(manifestSchema, raw); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	var sets []SetInfo
	if err := json.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if sets == nil {
		sets = []SetInfo{}
	}
	return sets, nil
}

// LoadSet fetches, validates and normalizes one question set. Every
// failure is a *quiz.SetLoadError.
func (c *Catalog) LoadSet(ctx context.Context, setID string) (*quiz.QuestionSet, error) {
	if err := ValidateSetID(setID); err != nil {
		return nil, &quiz.SetLoadError{SetID: setID, Err: err}
	}

	raw, err := c.src.Fetch(ctx, setID+".json")
	if err != nil {
		return nil, &quiz.SetLoadError{SetID: setID, Err: err}
	}
	if err := validateDocument(questionSetSchema, raw); err != nil {
		return nil, &quiz.SetLoadError{SetID: setID, Err: fmt.Errorf("%w: %v", quiz.ErrMalformedSet, err)}
	}

	var set quiz.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, &quiz.SetLoadError{SetID: setID, Err: fmt.Errorf("%w: %v", quiz.ErrMalformedSet, err)}
	}
	applyDefaults(&set, setID)

	c.log.WithFields(logrus.Fields{
		"set_id":    set.ID,
		"version":   set.Version,
		"questions": len(set.Questions),
	}).Debug("question set loaded")
	return &set, nil
}

// applyDefaults fills a missing id with the requested one and a missing or
// zero version with 1.
func applyDefaults(set *quiz.QuestionSet, requestedID string) {
	if set.ID == "" {
		set.ID = requestedID
	}
	if set.Version <= 0 {
		set.Version = 1
	}
}

// ValidateSetID rejects empty ids and ids that contain path separators or
// parent references.
func ValidateSetID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ErrInvalidSetID)
	case strings.ContainsAny(id, `/\`), strings.Contains(id, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidSetID, id)
	}
	return nil
}
