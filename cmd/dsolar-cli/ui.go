package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
)

// UI provides user-friendly output utilities. In JSON mode it stays silent.
type UI struct {
	out      io.Writer
	jsonMode bool
}

// NewUI creates a UI writing to out.
func NewUI(out io.Writer, jsonMode bool) *UI {
	return &UI{out: out, jsonMode: jsonMode}
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgGreen).Fprintf(ui.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgYellow).Fprintf(ui.out, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgCyan).Fprintf(ui.out, "ℹ %s\n", fmt.Sprintf(format, args...))
}

var sourceColors = map[chat.Source]color.Attribute{
	chat.SourcePackage:  color.FgMagenta,
	chat.SourceFAQ:      color.FgGreen,
	chat.SourceLLM:      color.FgBlue,
	chat.SourceRejected: color.FgYellow,
	chat.SourceError:    color.FgRed,
}

// Answer prints a routed response with a colored source tag.
func (ui *UI) Answer(source chat.Source, text string) {
	attr, ok := sourceColors[source]
	if !ok {
		attr = color.FgWhite
	}
	color.New(attr, color.Bold).Fprintf(ui.out, "[%s] ", source)
	fmt.Fprintln(ui.out, text)
}

// Spinner wraps a spinner for indeterminate progress. A nil Spinner is a no-op.
type Spinner struct {
	spinner *spinner.Spinner
}

// Spinner starts a spinner on stderr unless output is JSON.
func (ui *UI) Spinner(message string) *Spinner {
	if ui.jsonMode {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	s.Start()
	return &Spinner{spinner: s}
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.spinner.Stop()
}

// ProgressBar returns a progress callback for total items, or nil in JSON mode.
func (ui *UI) ProgressBar(total int, description string) func(done, total int) {
	if ui.jsonMode || total == 0 {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
	return func(done, _ int) {
		_ = bar.Set(done)
	}
}
