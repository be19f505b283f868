package llm

import (
	"regexp"
	"strings"
)

// Best-effort cleanup of generated content. There is no formal grammar for
// model output; the heuristics are:
//  1. when the response carries a fenced code block, keep the first block's
//     content and drop everything outside it;
//  2. drop leading lines until the first line that looks like Java code
//     (package, import, annotation or a type declaration);
//  3. drop trailing commentary after the last closing brace.

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?\n(.*?)```")
	codeLineRe    = regexp.MustCompile(`^\s*(package\s|import\s|@\w+|(public\s+|final\s+|abstract\s+)*(class|interface|enum)\s)`)
	classDeclRe   = regexp.MustCompile(`\bclass\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
)

// Sanitize extracts the Java source from a raw model response.
func Sanitize(raw string) string {
	text := raw

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	lines := strings.Split(text, "\n")

	start := 0
	for i, line := range lines {
		if codeLineRe.MatchString(line) {
			start = i
			break
		}
	}
	lines = lines[start:]

	end := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], "}") {
			end = i + 1
			break
		}
	}
	lines = lines[:end]

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// DetectClassName scans the source for the first class declaration and
// returns its identifier. The second return is false when no declaration is
// found; callers fall back to a variant-derived name.
func DetectClassName(source string) (string, bool) {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "/*") {
			continue
		}
		if m := classDeclRe.FindStringSubmatch(trimmed); m != nil {
			return m[1], true
		}
	}
	return "", false
}
