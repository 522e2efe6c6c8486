// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"
)

// IsDarwin reports whether the host ships the macOS say command.
var IsDarwin = func() bool {
	return runtime.GOOS == "darwin"
}

// ForToolNotFound returns hints for a missing external command.
// Knows the default detag and narration tools; other names get a generic hint.
func ForToolNotFound(tool string) string {
	var hints []string

	switch tool {
	case "detex":
		hints = append(hints, "detex ships with TeX Live and MacTeX")
	case "say":
		if !IsDarwin() {
			hints = append(hints, "say is macOS-only; set tools.narrate in a config file (e.g. espeak -f {input} -w {output})")
		}
	}
	hints = append(hints, "check that "+tool+" is on PATH or set its command in the config file")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests TEX2SPEECH_CONFIG and creating a config in ~/.config/go-tex2speech/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "set TEX2SPEECH_CONFIG=/path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-tex2speech") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForFetch returns hints for source download errors.
func ForFetch() string {
	return format("check the arXiv id (e.g. 2101.00001 or astro-ph/0601001) and your network")
}

// ForMainDocument returns hints when no main LaTeX file was found.
func ForMainDocument() string {
	return format("the article may have no LaTeX source; use --debug to keep the work directory")
}

// ForNoSegments returns hints when the main document has no section markers.
func ForNoSegments() string {
	return format(`the main document has no \section lines; use --debug to inspect it`)
}

// ForWorkDirLocked returns hints when another run holds the work directory.
func ForWorkDirLocked(lockPath string) string {
	return format("another run is processing this article; remove " + lockPath + " if it is stale")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
