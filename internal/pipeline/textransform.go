package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Citation commands folded into \cite before removal.
var narrowCitations = []string{`\citep`, `\citet`}

// Precompiled regex patterns, applied in order.
// Matching is non-greedy and flat: a nested brace ends the match early.
var (
	// \cite{keys}
	citePattern = regexp.MustCompile(`\\cite\{.*?\}`)

	// \footnote{text}
	footnotePattern = regexp.MustCompile(`\\footnote\{.*?\}`)

	// \label{key}
	labelCommandPattern = regexp.MustCompile(`\\label\{.*?\}`)

	// \ref{key}
	refPattern = regexp.MustCompile(`\\ref\{.*?\}`)
)

// TeXNormalizer defines the contract for markup normalization.
type TeXNormalizer interface {
	Normalize(ctx context.Context, content string) string
}

// CitationStripper removes citations, footnotes, labels and references.
type CitationStripper struct{}

// Normalize applies NormalizeTeX unless ctx is already canceled.
func (n *CitationStripper) Normalize(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return NormalizeTeX(content)
}

// NormalizeTeX rewrites a block of LaTeX for plain-text extraction.
// Order matters: narrow citations are folded into \cite before removal.
// Passes repeat until the text is stable, so a removal that splices a new
// command together is caught too and the result is always a fixed point.
func NormalizeTeX(content string) string {
	for {
		next := normalizePass(content)
		if next == content {
			return next
		}
		content = next
	}
}

// normalizePass applies each rewrite once.
func normalizePass(content string) string {
	content = foldCitations(content)
	content = citePattern.ReplaceAllLiteralString(content, "")
	content = footnotePattern.ReplaceAllLiteralString(content, "")
	content = labelCommandPattern.ReplaceAllLiteralString(content, "")
	content = refPattern.ReplaceAllLiteralString(content, "")
	return content
}

// foldCitations rewrites \citep and \citet to \cite.
func foldCitations(content string) string {
	for _, cmd := range narrowCitations {
		content = strings.ReplaceAll(content, cmd, `\cite`)
	}
	return content
}
