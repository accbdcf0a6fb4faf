package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studyscope/pdf-summarizer/internal/common"
)

// Extract recovers the candidate JSON fragment embedded in a model's reply:
// the substring between the first opening delimiter and the last closing
// delimiter of the requested shape. This is a best-effort heuristic tolerant
// of the model prepending or appending commentary; it is not a balanced
// parse, so the fragment may not survive a JSON decoder. Callers that need a
// parseable fragment use Recover.
func Extract(raw string, open, close byte) (string, error) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start < 0 || end < 0 || end <= start {
		return "", common.ErrNoDelimitersFound
	}
	return raw[start : end+1], nil
}

// Recover returns a fragment that parses as JSON, or a typed error. It first
// applies the Extract heuristic; when that fragment fails a parse probe (the
// reply contained several unrelated bracket regions, or trailing prose with
// a stray delimiter), it rescans the reply for every balanced top-level
// region of the shape and returns the first one that parses.
func Recover(raw string, shape Shape) (string, error) {
	open, close := shape.Delimiters()
	cleaned := stripCodeFences(raw)

	frag, err := Extract(cleaned, open, close)
	if err != nil {
		return "", err
	}
	if json.Valid([]byte(frag)) {
		return frag, nil
	}
	for _, candidate := range balancedRegions(cleaned, open, close) {
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no balanced %c...%c region parses", common.ErrMalformedJSON, open, close)
}

// balancedRegions collects every balanced delimiter region of the reply.
// Each walk tracks JSON string state so delimiters inside quoted values
// don't skew the depth count. A walk that never closes (a truncated or
// unbalanced region) is abandoned and the scan restarts just past its
// opening delimiter, so a broken region can't swallow a later intact one.
func balancedRegions(s string, open, close byte) []string {
	var regions []string
	i := 0
	for i < len(s) {
		idx := strings.IndexByte(s[i:], open)
		if idx < 0 {
			break
		}
		start := i + idx
		if end, ok := scanBalanced(s, start, open, close); ok {
			regions = append(regions, s[start:end+1])
			i = end + 1
		} else {
			i = start + 1
		}
	}
	return regions
}

// scanBalanced walks from an opening delimiter at start and returns the
// index of its matching close, if any.
func scanBalanced(s string, start int, open, close byte) (int, bool) {
	var inString, escaped bool
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}

// stripCodeFences removes a surrounding ```json / ``` fence, which several
// models insist on despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl != -1 {
			s = s[nl+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
