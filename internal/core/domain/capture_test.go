package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyCapture(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantType    domain.CaptureType
		wantContent string
	}{
		{
			name:        "Task prefix",
			raw:         "[] buy milk",
			wantType:    domain.CaptureTask,
			wantContent: "buy milk",
		},
		{
			name:        "Task prefix without space",
			raw:         "[]buy milk",
			wantType:    domain.CaptureTask,
			wantContent: "buy milk",
		},
		{
			name:        "Note prefix",
			raw:         "# idea",
			wantType:    domain.CaptureNote,
			wantContent: "idea",
		},
		{
			name:        "Reading prefix",
			raw:         "* The Go Programming Language",
			wantType:    domain.CaptureReading,
			wantContent: "The Go Programming Language",
		},
		{
			name:        "Project prefix",
			raw:         "project: kitchen remodel",
			wantType:    domain.CaptureProject,
			wantContent: "kitchen remodel",
		},
		{
			name:        "Project prefix is case-sensitive",
			raw:         "Project: kitchen remodel",
			wantType:    domain.CaptureNone,
			wantContent: "Project: kitchen remodel",
		},
		{
			name:        "No prefix",
			raw:         "no prefix here",
			wantType:    domain.CaptureNone,
			wantContent: "no prefix here",
		},
		{
			name:        "Surrounding whitespace is trimmed first",
			raw:         "   [] walk the dog   ",
			wantType:    domain.CaptureTask,
			wantContent: "walk the dog",
		},
		{
			name:        "Empty input",
			raw:         "",
			wantType:    domain.CaptureNone,
			wantContent: "",
		},
		{
			name:        "Whitespace-only input",
			raw:         "   \t  ",
			wantType:    domain.CaptureNone,
			wantContent: "",
		},
		{
			name:        "Prefix with empty remainder",
			raw:         "[]",
			wantType:    domain.CaptureTask,
			wantContent: "",
		},
		{
			name:        "Hash-only note",
			raw:         "#",
			wantType:    domain.CaptureNote,
			wantContent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClassifyCapture(tt.raw)

			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantContent, got.Content)
		})
	}
}

func TestClassifyCapture_Idempotent(t *testing.T) {
	// Classifying the cleaned output of a prefixed capture must not detect
	// the same prefix again. Content that legitimately starts with another
	// recognized prefix (e.g. "[] # tagged") is an accepted edge case.
	inputs := []string{
		"[] buy milk",
		"# meeting notes",
		"* dune",
		"project: garden",
		"plain capture",
	}

	for _, raw := range inputs {
		first := domain.ClassifyCapture(raw)
		second := domain.ClassifyCapture(first.Content)

		assert.Equal(t, domain.CaptureNone, second.Type,
			"re-classifying cleaned content of %q should be a generic capture", raw)
		assert.Equal(t, first.Content, second.Content)
	}
}

func TestClassifyCapture_PrecedenceOrder(t *testing.T) {
	// "[]" wins over "#" and "*" when stacked.
	got := domain.ClassifyCapture("[]# not a note")
	assert.Equal(t, domain.CaptureTask, got.Type)
	assert.Equal(t, "# not a note", got.Content)

	got = domain.ClassifyCapture("#* not a reading")
	assert.Equal(t, domain.CaptureNote, got.Type)
	assert.Equal(t, "* not a reading", got.Content)
}

func TestClassifyCapture_NoSideEffects(t *testing.T) {
	raw := "  [] same input  "

	first := domain.ClassifyCapture(raw)
	second := domain.ClassifyCapture(raw)

	assert.Equal(t, first, second)
}
