package language

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// shortTextLimit is the rune count below which detection confidence is
	// penalized for unreliability.
	shortTextLimit = 200
	// shortTextPenalty scales detection confidence for short inputs.
	shortTextPenalty = 0.8
	// fallbackCap bounds confidence when the detected language had to be
	// mapped into the supported set.
	fallbackCap = 0.6
	// detectorFailureConfidence is reported when detection itself errors.
	detectorFailureConfidence = 0.3
)

// Resolver picks the effective language code for a text. Precedence:
// explicit override, then configured default, then statistical detection.
type Resolver struct {
	detector  Detector
	supported map[string]bool
	logger    *zap.Logger
}

// NewResolver builds a Resolver restricted to the given supported codes.
func NewResolver(detector Detector, supported []string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[string]bool, len(supported))
	for _, code := range supported {
		set[code] = true
	}
	return &Resolver{detector: detector, supported: set, logger: logger}
}

// Resolve returns the language code and a confidence in [0,1]. Overrides
// and defaults are normalized and carry nominal confidence 1.0; detection
// confidence comes from the detector, penalized for short texts and capped
// when the detected language falls outside the supported set. Detector
// failures degrade to ("en", 0.3) rather than propagating.
func (r *Resolver) Resolve(text, override, configuredDefault string) (string, float64) {
	if strings.TrimSpace(override) != "" {
		code := Normalize(override)
		r.logger.Debug("using language override", zap.String("language", code))
		return code, 1.0
	}
	if strings.TrimSpace(configuredDefault) != "" {
		code := Normalize(configuredDefault)
		r.logger.Debug("using configured default language", zap.String("language", code))
		return code, 1.0
	}
	return r.detect(text)
}

func (r *Resolver) detect(text string) (string, float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "en", 0.0
	}

	candidates, err := r.detector.Detect(trimmed)
	if err != nil || len(candidates) == 0 {
		r.logger.Warn("language detection failed, assuming English", zap.Error(err))
		return "en", detectorFailureConfidence
	}
	top := candidates[0]
	code, genuine := normalize(top.Code)
	confidence := top.Confidence

	if utf8.RuneCountInString(trimmed) < shortTextLimit {
		confidence = clamp01(confidence * shortTextPenalty)
	}

	// A code that normalization had to force to "en" is a fallback even
	// though "en" itself is supported, so the cap applies there too.
	if !genuine || !r.supported[code] {
		if !r.supported[code] {
			prefix := code
			if len(prefix) > 2 {
				prefix = prefix[:2]
			}
			if r.supported[prefix] {
				code = prefix
			} else {
				code = "en"
			}
		}
		if confidence > fallbackCap {
			confidence = fallbackCap
		}
	}

	return code, confidence
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
