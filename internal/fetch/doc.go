// Package fetch retrieves arXiv source bundles.
//
// An e-print download is either a gzipped tar of the article tree, a single
// gzipped LaTeX file, or a bare file. Extract recognizes each by its magic
// bytes and unpacks it under a destination directory, refusing archive
// members that would land outside of it.
package fetch
