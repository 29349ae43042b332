package wizard

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/valueprop/pkg/domain"
)

var (
	// DefaultMaxInputSize caps a single answer or list entry at 4KB.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize when set to a positive integer.
	EnvMaxInputSize = "VALUEPROP_MAX_INPUT_SIZE"
)

var (
	// ErrInputTooLarge rejects answers longer than the size limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	// ErrInvalidUTF8 rejects answers that cannot be stored as JSON text.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput checks one typed answer before it reaches the session store.
// Oversized or malformed answers are rejected; stray control characters are dropped.
func SanitizeInput(input string) (string, error) {
	// 1. Size: reject, never truncate, so a saved answer is always what was typed.
	if limit := maxInputSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	// 2. Encoding: the answer record is persisted as JSON.
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// 3. Control characters: line breaks and tabs survive for multi-line stories.
	// ESC, NUL, BEL and friends would repaint the terminal wizard or leak into the summary.
	if strings.IndexFunc(input, isStrippedControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isStrippedControl(r) {
			return -1
		}
		return r
	}, input), nil
}

// SanitizeEntry sanitizes a list entry and trims it.
// It returns domain.ErrEmptyEntry when nothing is left.
func SanitizeEntry(input string) (string, error) {
	clean, err := SanitizeInput(input)
	if err != nil {
		return "", err
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", domain.ErrEmptyEntry
	}
	return clean, nil
}

func isStrippedControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

// SanitizePatch applies SanitizeInput to every string a patch carries.
// Entries are not trimmed or dropped: a patch replaces fields verbatim.
func SanitizePatch(p domain.Patch) (domain.Patch, error) {
	var err error
	text := func(s *string) *string {
		if s == nil || err != nil {
			return s
		}
		var clean string
		clean, err = SanitizeInput(*s)
		return &clean
	}
	list := func(items *[]string) *[]string {
		if items == nil || err != nil {
			return items
		}
		out := make([]string, 0, len(*items))
		for _, it := range *items {
			var clean string
			if clean, err = SanitizeInput(it); err != nil {
				return items
			}
			out = append(out, clean)
		}
		return &out
	}

	out := domain.Patch{
		Audience:            text(p.Audience),
		Problem:             text(p.Problem),
		UniqueApproach:      text(p.UniqueApproach),
		TechnicalSkills:     list(p.TechnicalSkills),
		SoftSkills:          list(p.SoftSkills),
		SuccessStories:      list(p.SuccessStories),
		QuantifiableResults: list(p.QuantifiableResults),
		Testimonials:        list(p.Testimonials),
		MonetaryImpact:      text(p.MonetaryImpact),
		TimeSavings:         text(p.TimeSavings),
		CostReductions:      text(p.CostReductions),
		ValueProposition:    text(p.ValueProposition),
	}
	if err != nil {
		return domain.Patch{}, err
	}
	return out, nil
}
