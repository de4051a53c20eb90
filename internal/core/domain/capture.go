package domain

import "strings"

// CaptureType is the intent detected in a piece of quick-capture input.
type CaptureType string

const (
	CaptureTask    CaptureType = "task"
	CaptureNote    CaptureType = "note"
	CaptureReading CaptureType = "reading"
	CaptureProject CaptureType = "project"
	CaptureNone    CaptureType = "none"
)

// ClassifiedCapture is the result of classifying raw capture text.
// It is never mutated after creation.
type ClassifiedCapture struct {
	Type    CaptureType `json:"type"`
	Content string      `json:"content"`
}

const captureProjectPrefix = "project:"

// ClassifyCapture parses free-text quick-capture input into a typed intent
// plus cleaned content. Prefixes are checked in precedence order against the
// trimmed input:
//
//	"[]"       -> task
//	"#"        -> note
//	"*"        -> reading
//	"project:" -> project (case-sensitive)
//
// Anything else is a generic capture (CaptureNone) with the trimmed input
// unchanged. The function is total: every string, including the empty one,
// yields a result.
func ClassifyCapture(raw string) ClassifiedCapture {
	trimmed := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(trimmed, "[]"):
		return ClassifiedCapture{
			Type:    CaptureTask,
			Content: strings.TrimSpace(trimmed[2:]),
		}
	case strings.HasPrefix(trimmed, "#"):
		return ClassifiedCapture{
			Type:    CaptureNote,
			Content: strings.TrimSpace(trimmed[1:]),
		}
	case strings.HasPrefix(trimmed, "*"):
		return ClassifiedCapture{
			Type:    CaptureReading,
			Content: strings.TrimSpace(trimmed[1:]),
		}
	case strings.HasPrefix(trimmed, captureProjectPrefix):
		return ClassifiedCapture{
			Type:    CaptureProject,
			Content: strings.TrimSpace(trimmed[len(captureProjectPrefix):]),
		}
	default:
		return ClassifiedCapture{
			Type:    CaptureNone,
			Content: trimmed,
		}
	}
}
