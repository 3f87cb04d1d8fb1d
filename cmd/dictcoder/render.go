package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const defaultWidth = 80

// printer writes report sections. Colour and the rule width follow the
// output terminal; redirected output is plain.
type printer struct {
	w       io.Writer
	heading *color.Color
	insert  *color.Color
	remove  *color.Color
	ok      *color.Color
	width   int
}

func newPrinter(f *os.File) *printer {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return newPrinterTo(f, tty, terminalWidth(f, tty))
}

func newPrinterTo(w io.Writer, colored bool, width int) *printer {
	p := &printer{
		w:       w,
		width:   width,
		heading: color.New(color.FgCyan, color.Bold),
		insert:  color.New(color.FgGreen),
		remove:  color.New(color.FgRed, color.CrossedOut),
		ok:      color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.heading, p.insert, p.remove, p.ok} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func terminalWidth(f *os.File, tty bool) int {
	if !tty {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func (p *printer) header(title string) {
	rule := strings.Repeat("─", max(0, min(p.width, 100)-len(title)-4))
	p.heading.Fprintf(p.w, "── %s %s\n", title, rule)
}

func (p *printer) yaml(v any) error {
	out, err := renderYAML(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.w, out)
	return err
}

func renderYAML(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("render yaml: %w", err)
	}
	return string(b), nil
}
