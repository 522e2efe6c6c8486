package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	tex2speech "github.com/alnah/go-tex2speech"
)

// printResults writes the segment table to stdout and failures to stderr.
// Returns the number of failed segments.
func printResults(env *Environment, result *tex2speech.Result) int {
	outputHeader := "Audio"
	if result.Debug {
		outputHeader = "Text"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Section", outputHeader, "Status", "Time"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, s := range result.Segments {
		status := "ok"
		output := s.AudioPath
		if result.Debug {
			output = s.TextPath
		}
		if s.Err != nil {
			status = "failed"
			output = ""
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", filepath.Base(s.TexPath), s.Err)
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(s.Index),
			s.Heading,
			output,
			status,
			s.Duration.Round(time.Millisecond).String(),
		})
	}

	fmt.Fprintln(env.Stdout, tw.Render())

	failed := result.Failed()
	fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(result.Segments)-failed, failed)
	if result.Debug {
		fmt.Fprintf(env.Stdout, "Work directory kept: %s\n", result.WorkDir)
	}
	return failed
}
