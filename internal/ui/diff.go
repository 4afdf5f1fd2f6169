package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DiffRenderer turns changed files into terminal lines, optionally with
// syntax highlighting of the code on each patch line
type DiffRenderer struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewDiffRenderer picks a chroma style and terminal formatter. An empty
// styleName follows the terminal background. Highlighting is off when the
// terminal has no color support.
func NewDiffRenderer(styleName string, highlight bool) *DiffRenderer {
	if !highlight {
		return &DiffRenderer{}
	}
	f := formatterFor(termenv.ColorProfile())
	if f == nil {
		return &DiffRenderer{}
	}
	return &DiffRenderer{style: styleFor(styleName, termenv.HasDarkBackground()), formatter: f}
}

func styleFor(name string, dark bool) *chroma.Style {
	if name != "" {
		if st := styles.Get(name); st != nil && st != styles.Fallback {
			return st
		}
		slog.Debug("unknown chroma style, using default", slog.String("style", name))
	}
	if dark {
		if st := styles.Get("github-dark"); st != nil {
			return st
		}
	} else {
		if st := styles.Get("github"); st != nil {
			return st
		}
	}
	return styles.Fallback
}

func formatterFor(p termenv.Profile) chroma.Formatter {
	switch p {
	case termenv.TrueColor:
		return formatters.Get("terminal16m")
	case termenv.ANSI256:
		return formatters.Get("terminal256")
	case termenv.ANSI:
		return formatters.Get("terminal")
	default:
		return nil
	}
}

func lexerForPath(path string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Highlighting reports whether code is syntax highlighted
func (r *DiffRenderer) Highlighting() bool {
	return r.formatter != nil
}

// FileHeader renders the collapsible header line of a changed file
func FileHeader(f models.DiffFile, open, selected bool) string {
	name := lipgloss.NewStyle().Bold(true).Foreground(ColorWhite)
	if selected {
		name = name.Foreground(ColorCyan)
	}
	status := lipgloss.NewStyle().Foreground(StatusColor(f.Status)).Render(f.Status)
	counts := lipgloss.NewStyle().Foreground(ColorGreen).Render(fmt.Sprintf("+%d", f.Additions)) + " " +
		lipgloss.NewStyle().Foreground(ColorRed).Render(fmt.Sprintf("-%d", f.Deletions))
	return fmt.Sprintf("%s%s %s  %s  %s", Arrow(selected), Caret(open), name.Render(f.Filename), status, counts)
}

// Patch renders the patch of f, one string per line
func (r *DiffRenderer) Patch(f models.DiffFile) []string {
	dim := lipgloss.NewStyle().Foreground(ColorDarkGray)
	if f.Patch == "" {
		return []string{dim.Render("    (binary or too large to display)")}
	}

	var lexer chroma.Lexer
	if r.Highlighting() {
		lexer = lexerForPath(f.Filename)
	}

	added := lipgloss.NewStyle().Foreground(ColorGreen)
	removed := lipgloss.NewStyle().Foreground(ColorRed)
	hunk := lipgloss.NewStyle().Foreground(ColorCyan)

	var out []string
	for _, line := range strings.Split(f.Patch, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			out = append(out, "    "+hunk.Render(line))
		case strings.HasPrefix(line, `\`):
			out = append(out, "    "+dim.Render(line))
		case strings.HasPrefix(line, "+"):
			out = append(out, "    "+added.Render("+")+r.code(lexer, line[1:], added))
		case strings.HasPrefix(line, "-"):
			out = append(out, "    "+removed.Render("-")+r.code(lexer, line[1:], removed))
		default:
			out = append(out, "    "+r.code(lexer, strings.TrimPrefix(line, " "), lipgloss.NewStyle()))
		}
	}
	return out
}

// code highlights one line of source, falling back to the plain style
func (r *DiffRenderer) code(lexer chroma.Lexer, code string, plain lipgloss.Style) string {
	if lexer == nil || code == "" {
		return plain.Render(code)
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain.Render(code)
	}
	var b strings.Builder
	if err := r.formatter.Format(&b, r.style, it); err != nil {
		return plain.Render(code)
	}
	return strings.TrimRight(b.String(), "\n")
}
