// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Output handles formatted output for the CLI.
type Output struct {
	writer       io.Writer
	jsonMode     bool
	colorEnabled bool
	currency     string
}

var (
	greenText  = color.New(color.FgGreen).SprintFunc()
	redText    = color.New(color.FgRed).SprintFunc()
	yellowText = color.New(color.FgYellow).SprintFunc()
	cyanText   = color.New(color.FgCyan).SprintFunc()
	boldText   = color.New(color.Bold).SprintFunc()
	dimText    = color.New(color.Faint).SprintFunc()
)

// NewOutput creates a new Output instance for a command.
func NewOutput(cmd *cobra.Command, opts ...OutputOption) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	o := &Output{
		writer:       cmd.OutOrStdout(),
		jsonMode:     jsonMode,
		colorEnabled: !jsonMode && isTerminal(),
		currency:     "£",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OutputOption configures an Output.
type OutputOption func(*Output)

// WithCurrency sets the currency symbol used by Currency.
func WithCurrency(symbol string) OutputOption {
	return func(o *Output) {
		if symbol != "" {
			o.currency = symbol
		}
	}
}

// WithColor forces color on or off regardless of terminal detection.
func WithColor(enabled bool) OutputOption {
	return func(o *Output) { o.colorEnabled = enabled && !o.jsonMode }
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// IsJSON returns true if JSON output mode is enabled.
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// JSON outputs data as JSON.
func (o *Output) JSON(data interface{}) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print prints a message.
func (o *Output) Print(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// Println prints a message with newline.
func (o *Output) Println(args ...interface{}) {
	fmt.Fprintln(o.writer, args...)
}

// Printf prints a formatted message.
func (o *Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// Success prints a success message in green.
func (o *Output) Success(format string, args ...interface{}) {
	o.colored(greenText, format, args...)
}

// Error prints an error message in red.
func (o *Output) Error(format string, args ...interface{}) {
	o.colored(redText, format, args...)
}

// Warning prints a warning message in yellow.
func (o *Output) Warning(format string, args ...interface{}) {
	o.colored(yellowText, format, args...)
}

// Info prints an info message in cyan.
func (o *Output) Info(format string, args ...interface{}) {
	o.colored(cyanText, format, args...)
}

// Bold prints a bold message.
func (o *Output) Bold(format string, args ...interface{}) {
	o.colored(boldText, format, args...)
}

// Dim prints a dimmed message.
func (o *Output) Dim(format string, args ...interface{}) {
	o.colored(dimText, format, args...)
}

func (o *Output) colored(paint func(...interface{}) string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if o.colorEnabled {
		fmt.Fprintln(o.writer, paint(msg))
	} else {
		fmt.Fprintln(o.writer, msg)
	}
}

func (o *Output) paint(paint func(...interface{}) string, text string) string {
	if o.colorEnabled {
		return paint(text)
	}
	return text
}

// Green returns green colored text.
func (o *Output) Green(text string) string { return o.paint(greenText, text) }

// Red returns red colored text.
func (o *Output) Red(text string) string { return o.paint(redText, text) }

// Yellow returns yellow colored text.
func (o *Output) Yellow(text string) string { return o.paint(yellowText, text) }

// Cyan returns cyan colored text.
func (o *Output) Cyan(text string) string { return o.paint(cyanText, text) }

// BoldText returns bold text.
func (o *Output) BoldText(text string) string { return o.paint(boldText, text) }

// DimText returns dimmed text.
func (o *Output) DimText(text string) string { return o.paint(dimText, text) }

// Currency formats an amount with the configured symbol.
func (o *Output) Currency(amount float64) string {
	return FormatCurrency(amount, o.currency)
}

// FormatDelta formats a signed amount with gain/loss color.
func (o *Output) FormatDelta(amount float64) string {
	formatted := o.Currency(amount)
	if amount > 0 {
		return o.Green("+" + formatted)
	}
	if amount < 0 {
		return o.Red(formatted)
	}
	return formatted
}

// FormatSignedPercent formats a percentage with gain/loss color.
func (o *Output) FormatSignedPercent(pct float64) string {
	formatted := FormatPercent(pct)
	if pct > 0 {
		return o.Green(formatted)
	}
	if pct < 0 {
		return o.Red(formatted)
	}
	return formatted
}

// Table represents a simple table for output.
type Table struct {
	headers []string
	rows    [][]string
	output  *Output
}

// NewTable creates a new table.
func NewTable(output *Output, headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		output:  output,
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render renders the table.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				if l := visibleLen(cell); l > widths[i] {
					widths[i] = l
				}
			}
		}
	}

	t.printRow(t.headers, widths, true)
	t.printSeparator(widths)
	for _, row := range t.rows {
		t.printRow(row, widths, false)
	}
}

func (t *Table) printRow(cells []string, widths []int, isHeader bool) {
	var parts []string
	for i, cell := range cells {
		if i < len(widths) {
			padding := widths[i] - visibleLen(cell)
			if padding < 0 {
				padding = 0
			}
			padded := cell + strings.Repeat(" ", padding)
			if isHeader {
				padded = t.output.BoldText(padded)
			}
			parts = append(parts, padded)
		}
	}
	t.output.Println(strings.Join(parts, "  "))
}

func (t *Table) printSeparator(widths []int) {
	var parts []string
	for _, w := range widths {
		parts = append(parts, strings.Repeat("─", w))
	}
	t.output.Println(t.output.DimText(strings.Join(parts, "──")))
}

// visibleLen is the display width of a cell ignoring ANSI escape sequences.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
