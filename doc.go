// Package tex2speech turns the LaTeX source of an arXiv article into
// per-section audio narrations.
//
// # Quick Start
//
// Create a narrator and run it on an article identifier:
//
//	n := tex2speech.NewNarrator(
//	    tex2speech.WithOutputDir("audio"),
//	    tex2speech.WithLogger(logger),
//	)
//
//	result, err := n.Narrate(ctx, tex2speech.Input{ID: "2101.00001"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, seg := range result.Segments {
//	    fmt.Println(seg.AudioPath)
//	}
//
// # Pipeline
//
// A run goes through these stages:
//
//  1. Source retrieval: the e-print bundle is downloaded and unpacked
//     into a per-article work directory
//  2. Main document lookup: the first .tex file containing \begin{document}
//  3. Segmentation: the document is split at \section lines, each segment
//     is cleaned of citations, footnotes, labels and references, and written
//     as {prefix}_{counter}_{heading}.tex
//  4. Detagging: each segment goes through detex, producing plain text
//  5. Narration: each text file goes through a speech tool (say by default)
//
// The work directory is removed afterwards unless Input.Debug is set. Debug
// runs also skip narration, which leaves the intermediate .tex and .txt
// files for inspection.
//
// # Segmentation Only
//
// The segmenter is usable on its own:
//
//	paths, err := tex2speech.SplitFile("paper.tex", "out", "paper")
//
// Each boundary line opens a new segment. The segment written when a
// boundary is reached holds the lines collected before it and is named by
// the previous boundary's label ("header" for the first one). Files are
// written all-or-nothing.
//
// # External Tools
//
// Detagging and narration commands are templates where {input} and
// {output} are replaced per segment:
//
//	tex2speech.WithNarrateTool(tex2speech.Tool{
//	    Command: "espeak",
//	    Args:    []string{"-f", "{input}", "-w", "{output}"},
//	})
package tex2speech
