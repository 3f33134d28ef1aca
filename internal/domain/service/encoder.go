package service

import (
	"fmt"
	"log/slog"
	"sort"
)

// DegradationRecorder receives the observability events emitted when the
// pipeline degrades to a default instead of failing. Implementations must be
// safe for concurrent use.
type DegradationRecorder interface {
	// UnseenCategory is called when a categorical value is not in its
	// vocabulary and the fallback code is used instead.
	UnseenCategory(feature string)

	// ScoringDegraded is called when the scoring model fails and the
	// default score is substituted.
	ScoringDegraded()

	// AuditLogFallback is called when an audit log record cannot be mapped
	// into model features.
	AuditLogFallback()
}

// NopRecorder discards all degradation events. Used in tests.
type NopRecorder struct{}

func (NopRecorder) UnseenCategory(string) {}
func (NopRecorder) ScoringDegraded()      {}
func (NopRecorder) AuditLogFallback()     {}

// EncodeResult carries the outcome of encoding one categorical value.
// Encoding never fails; Degraded marks results produced by a fallback rule.
type EncodeResult struct {
	Code     int
	Degraded bool
}

// Vocabulary is the fixed ordered set of category values learned for one
// feature. The first entry doubles as the fallback for unseen values.
type Vocabulary struct {
	feature string
	values  []string
	index   map[string]int
}

// NewVocabulary builds a Vocabulary for a feature. The category list must be
// non-empty and free of duplicates; anything else means the artifact is
// corrupt.
func NewVocabulary(feature string, values []string) (*Vocabulary, error) {
	if feature == "" {
		return nil, fmt.Errorf("vocabulary feature name is empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("vocabulary for %s is empty", feature)
	}

	index := make(map[string]int, len(values))
	for i, v := range values {
		if _, dup := index[v]; dup {
			return nil, fmt.Errorf("vocabulary for %s has duplicate value %q", feature, v)
		}
		index[v] = i
	}

	return &Vocabulary{feature: feature, values: values, index: index}, nil
}

// Values returns the ordered category list.
func (v *Vocabulary) Values() []string { return v.values }

// FallbackCode returns the code used for unseen values: the index of the
// first vocabulary entry.
func (v *Vocabulary) FallbackCode() int { return 0 }

// Code returns the stable index of value, or (fallback, false) when the
// value is unseen.
func (v *Vocabulary) Code(value string) (int, bool) {
	if i, ok := v.index[value]; ok {
		return i, true
	}
	return v.FallbackCode(), false
}

// EncoderRegistry holds every categorical feature's vocabulary. It is loaded
// once at startup and read-only afterwards, so concurrent requests may share
// it without locking.
type EncoderRegistry struct {
	vocabs   map[string]*Vocabulary
	recorder DegradationRecorder
	logger   *slog.Logger
}

// NewEncoderRegistry builds the registry from the loaded vocabulary artifact.
func NewEncoderRegistry(vocabs map[string][]string, recorder DegradationRecorder, logger *slog.Logger) (*EncoderRegistry, error) {
	built := make(map[string]*Vocabulary, len(vocabs))
	for feature, values := range vocabs {
		v, err := NewVocabulary(feature, values)
		if err != nil {
			return nil, fmt.Errorf("build encoder registry: %w", err)
		}
		built[feature] = v
	}

	return &EncoderRegistry{
		vocabs:   built,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// Encode maps a raw categorical value to its integer code. Unseen values
// take the vocabulary's fallback code and unknown features take code 0;
// neither aborts a prediction. Every fallback is logged and counted so that
// vocabulary drift stays detectable.
func (r *EncoderRegistry) Encode(feature, raw string) EncodeResult {
	vocab, ok := r.vocabs[feature]
	if !ok {
		r.logger.Warn("no vocabulary registered for feature, using default code",
			slog.String("feature", feature),
		)
		r.recorder.UnseenCategory(feature)
		return EncodeResult{Code: 0, Degraded: true}
	}

	code, seen := vocab.Code(raw)
	if !seen {
		r.logger.Warn("unseen category, using fallback code",
			slog.String("feature", feature),
			slog.String("value", raw),
			slog.Int("fallback_code", code),
		)
		r.recorder.UnseenCategory(feature)
		return EncodeResult{Code: code, Degraded: true}
	}

	return EncodeResult{Code: code}
}

// Has reports whether a vocabulary is registered for the feature.
func (r *EncoderRegistry) Has(feature string) bool {
	_, ok := r.vocabs[feature]
	return ok
}

// Features returns the sorted names of all registered vocabularies.
func (r *EncoderRegistry) Features() []string {
	names := make([]string, 0, len(r.vocabs))
	for name := range r.vocabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
