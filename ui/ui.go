package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	isTTY bool
	std   *Printer

	// Colors (bun-style)
	cyan   = lipgloss.Color("6")
	green  = lipgloss.Color("2")
	red    = lipgloss.Color("1")
	yellow = lipgloss.Color("3")
	dim    = lipgloss.Color("8")
)

func init() {
	isTTY = term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY {
		// Disable colors in non-TTY
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	std = NewPrinter(os.Stdout, isTTY)
}

// IsTTY returns whether stdout is a terminal
func IsTTY() bool {
	return isTTY
}

// Default returns the stdout printer
func Default() *Printer {
	return std
}

// Printer writes human-readable progress to a writer. Colors and the
// spinner are only used when tty is true.
type Printer struct {
	out io.Writer
	tty bool

	Primary lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
}

// NewPrinter creates a printer for w
func NewPrinter(w io.Writer, tty bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !tty {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out:     w,
		tty:     tty,
		Primary: r.NewStyle().Foreground(cyan),
		Success: r.NewStyle().Foreground(green),
		Error:   r.NewStyle().Foreground(red),
		Warning: r.NewStyle().Foreground(yellow),
		Dim:     r.NewStyle().Foreground(dim),
		Bold:    r.NewStyle().Bold(true),
	}
}

// Step prints a progress line
func (p *Printer) Step(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Detail prints indented secondary info: "  → Label: value"
func (p *Printer) Detail(label, value string) {
	fmt.Fprintf(p.out, "  %s %s: %s\n", p.Dim.Render("→"), label, p.Primary.Render(value))
}

// WarnMsg prints a warning message
func (p *Printer) WarnMsg(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.Warning.Render("Warning:"), msg)
}

// SuccessMsg prints the success marker with an optional message
func (p *Printer) SuccessMsg(msg string) {
	if msg == "" {
		fmt.Fprintln(p.out, p.Success.Render("Success"))
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.Success.Render("Success"), msg)
}

// ErrorMsg prints an error with the error marker and optional hints
func (p *Printer) ErrorMsg(err error, hints ...string) {
	fmt.Fprintf(p.out, "%s %v\n", p.Error.Render("Error:"), err)
	for _, hint := range hints {
		fmt.Fprintf(p.out, "  %s %s\n", p.Dim.Render("Hint:"), hint)
	}
}

// Println is a simple wrapper for fmt.Fprintln
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf is a simple wrapper for fmt.Fprintf
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// FormatDuration formats duration nicely (e.g., "234ms" or "1.2s")
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes nicely (e.g., "890B", "1.2KB" or "3.4MB")
func FormatBytes(b int64) string {
	switch {
	case b < 1024:
		return fmt.Sprintf("%dB", b)
	case b < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(b)/(1024*1024))
	}
}

// Println writes to stdout
func Println(a ...any) {
	std.Println(a...)
}

// Printf writes to stdout
func Printf(format string, a ...any) {
	std.Printf(format, a...)
}
