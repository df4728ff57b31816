// Package main provides an interactive REPL for exercising tool-call
// extraction against real model output pasted into the terminal.
//
// Usage:
//
//	go run ./integrationtest/extractcli [format]
//
// format defaults to "json". Paste model output, finish with a line
// containing only ".", and the extracted calls (or a no-call verdict) are
// printed. Switch formats at any time with "/format <name>".
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/prompteng/fmtr"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	format := fmtr.FormatJSON
	if len(os.Args) > 1 {
		format = os.Args[1]
	}
	formatter, err := fmtr.NewToolFormatter(format)
	if err != nil {
		return fmt.Errorf("%v (supported: %s)", err, strings.Join(fmtr.ToolFormatNames(), ", "))
	}

	rl, err := readline.New(colorCyan + "> " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Printf("%sExtraction REPL, format %q. Paste text, end with a lone \".\" (q to quit).%s\n",
		colorDim, format, colorReset)

	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}

		switch strings.TrimSpace(line) {
		case "q", "quit":
			return nil
		case ".":
			report(formatter, strings.Join(lines, "\n"))
			lines = lines[:0]
			continue
		}

		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "/format "); ok {
			next, err := fmtr.NewToolFormatter(strings.TrimSpace(name))
			if err != nil {
				fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
				continue
			}
			formatter = next
			fmt.Printf("%sformat switched to %q%s\n", colorDim, strings.TrimSpace(name), colorReset)
			continue
		}

		lines = append(lines, line)
	}
}

func report(formatter *fmtr.ToolFormatter, text string) {
	calls, ok := formatter.Extract(text)
	if !ok {
		fmt.Printf("%sno tool call recognized; text stands as plain content%s\n",
			colorYellow, colorReset)
		return
	}
	for i, call := range calls {
		fmt.Printf("%s%d.%s %s%s%s %s\n",
			colorCyan, i+1, colorReset,
			colorGreen, call.Name, colorReset,
			call.Arguments)
	}
}
