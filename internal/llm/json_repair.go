package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

// RepairStats describes what it took to make a model response parseable.
type RepairStats struct {
	OriginalBytes int           `json:"original_bytes"`
	RepairedBytes int           `json:"repaired_bytes"`
	Strategies    []string      `json:"strategies"`
	ErrorsFixed   int           `json:"errors_fixed"`
	RepairTime    time.Duration `json:"repair_time"`
	WasRepaired   bool          `json:"was_repaired"`
}

var (
	trailingCommaBrace   = regexp.MustCompile(`,\s*}`)
	trailingCommaBracket = regexp.MustCompile(`,\s*]`)
	unquotedKey          = regexp.MustCompile(`([{,]\s*)([a-zA-Z_][a-zA-Z0-9_]*)(\s*:)`)
	singleQuoted         = regexp.MustCompile(`'([^']*)'`)
)

// RepairJSON makes malformed model JSON parseable, cheapest fix first:
// trailing commas, truncated objects/arrays, unquoted keys, single-quoted
// strings, then the jsonrepair library as the heavyweight fallback. Valid
// input is returned untouched.
func RepairJSON(raw string) (string, RepairStats, error) {
	start := time.Now()
	stats := RepairStats{OriginalBytes: len(raw)}

	if isValidJSON(raw) {
		stats.RepairedBytes = len(raw)
		stats.RepairTime = time.Since(start)
		return raw, stats, nil
	}

	stats.WasRepaired = true
	repaired := raw

	if trailingCommaBrace.MatchString(repaired) || trailingCommaBracket.MatchString(repaired) {
		repaired = trailingCommaBrace.ReplaceAllString(repaired, "}")
		repaired = trailingCommaBracket.ReplaceAllString(repaired, "]")
		stats.note("trailing_commas")
	}

	if closed := closeOpenStructures(repaired); closed != repaired {
		repaired = closed
		stats.note("completion")
	}

	if unquotedKey.MatchString(repaired) {
		repaired = unquotedKey.ReplaceAllString(repaired, `$1"$2"$3`)
		stats.note("key_quotes")
	}

	if !isValidJSON(repaired) && singleQuoted.MatchString(repaired) {
		repaired = singleQuoted.ReplaceAllString(repaired, `"$1"`)
		stats.note("single_quotes")
	}

	if !isValidJSON(repaired) {
		fixed, err := jsonrepair.JSONRepair(repaired)
		if err == nil && fixed != repaired {
			repaired = fixed
			stats.note("jsonrepair_library")
		}
	}

	stats.RepairedBytes = len(repaired)
	stats.RepairTime = time.Since(start)
	if !isValidJSON(repaired) {
		return repaired, stats, fmt.Errorf("json repair failed after %d strategies", len(stats.Strategies))
	}
	return repaired, stats, nil
}

func (s *RepairStats) note(strategy string) {
	s.Strategies = append(s.Strategies, strategy)
	s.ErrorsFixed++
}

func isValidJSON(s string) bool {
	var v any
	return json.Unmarshal([]byte(s), &v) == nil
}

// closeOpenStructures appends the closing braces/brackets a truncated
// response is missing, last opened first.
func closeOpenStructures(s string) string {
	trimmed := strings.TrimSpace(s)
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
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
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(trimmed)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}
