package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2speech [flags] <arxiv-id>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download the LaTeX source of an arXiv article and narrate it section by section.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  arxiv-id    Article identifier, e.g. 2101.00001, hep-th/9901001 or 0601001")
	fmt.Fprintln(w, "              (bare old-style ids are looked up in astro-ph)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --debug           Keep the work directory and skip narration")
	fmt.Fprintln(w, "  -k, --keyword <s>     Keyword appended to output file names")
	fmt.Fprintln(w, "  -h, --help            Show this help")
	fmt.Fprintln(w, "      --version         Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEX2SPEECH_CONFIG       Config file name or path")
	fmt.Fprintln(w, "  TEX2SPEECH_OUTPUT_DIR   Audio output directory")
	fmt.Fprintln(w, "  TEX2SPEECH_WORK_DIR     Parent of the {id}_render work directory")
	fmt.Fprintln(w, "  TEX2SPEECH_TIMEOUT      Download timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "  TEX2SPEECH_LOG_LEVEL    debug, info, warn, error")
	fmt.Fprintln(w, "  TEX2SPEECH_LOG_FORMAT   auto, text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output files are named arxiv{id}[_{keyword}]_{n}_{section}.")
}
