package jsonrepair

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Text-generation output is not guaranteed to be well-formed JSON even under
// explicit instruction. Extract layers cheap-to-expensive recovery strategies
// over the raw text; the common case (already-valid JSON) costs one parse.

var (
	ErrEmptyInput    = errors.New("jsonrepair: empty input")
	ErrUnrecoverable = errors.New("jsonrepair: no recoverable JSON object")
)

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")
	fenceMarkerRe   = regexp.MustCompile("```(?:json)?")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	singleQuotedRe  = regexp.MustCompile(`:\s*'([^']*)'`)
	lineCommentRe   = regexp.MustCompile(`(?m)(^|[^:])//.*$`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Extract recovers a JSON object from an arbitrary text blob. Strategies are
// tried in order and the first success wins:
//
//  1. parse the whole string as-is;
//  2. slice out a fenced code block (or, absent one, the first "{" through
//     the last "}") and parse it after light textual repair;
//  3. repair the entire string, then re-slice between the outermost braces
//     and parse.
//
// If all strategies fail it returns ErrUnrecoverable. No retries happen at
// this layer; retrying the upstream generation call is the caller's business.
func Extract(s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyInput
	}

	if obj, ok := tryParse(s); ok {
		return obj, nil
	}

	// Repairing a bounded substring first is cheaper and safer than repairing
	// the unbounded original, which risks corrupting prose outside the JSON.
	if sub, ok := candidateSlice(s); ok {
		if obj, ok := tryParse(repair(sub)); ok {
			return obj, nil
		}
	}

	repaired := repair(fenceMarkerRe.ReplaceAllString(s, ""))
	if sub, ok := braceSlice(repaired); ok {
		if obj, ok := tryParse(sub); ok {
			return obj, nil
		}
	}

	return nil, ErrUnrecoverable
}

// tryParse succeeds only on a non-null JSON object; arrays and scalars fail.
func tryParse(s string) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

// candidateSlice prefers a fenced code block; failing that, it falls back to
// the first "{" through the last "}".
func candidateSlice(s string) (string, bool) {
	if m := fencedBlockRe.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return braceSlice(s)
}

func braceSlice(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// repair applies the textual fixes in a fixed order: trailing commas,
// unquoted keys, single-quoted values, doubled escaped quotes, comments.
func repair(s string) string {
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = singleQuotedRe.ReplaceAllString(s, `: "$1"`)
	s = strings.ReplaceAll(s, `\\"`, `\"`)
	s = lineCommentRe.ReplaceAllString(s, "$1")
	s = blockCommentRe.ReplaceAllString(s, "")
	return s
}
