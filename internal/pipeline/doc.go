// Package pipeline implements the LaTeX segmentation pipeline.
//
// This package handles the two pure stages that turn a LaTeX document into
// narration-ready segments:
//   - Boundary scanning (section markers split a line stream into sections)
//   - Markup normalization (citations, footnotes, labels and references removed)
//
// File naming, persistence and the external detag/narration tools are handled
// by the root tex2speech package. This separation keeps the pipeline free of
// I/O beyond the reader it is given, so every stage can be tested on strings.
package pipeline
