// Package output renders wizard data for the headless subcommands.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const subjectWidth = 60

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetColumnSeparator(" ")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// WriteCommits prints commits newest first as a table
func WriteCommits(w io.Writer, commits []models.Commit) {
	table := newTable(w, []string{"SHA", "Date", "Author", "Message"})
	for _, c := range commits {
		table.Append([]string{
			c.ShortSHA(),
			c.Date.Format("2006-01-02 15:04"),
			c.Author,
			truncate(c.Subject(), subjectWidth),
		})
	}
	table.Render()
}

// WriteRefs prints references with their kind and commit
func WriteRefs(w io.Writer, refs []models.Reference) {
	table := newTable(w, []string{"Name", "Kind", "SHA"})
	for _, r := range refs {
		sha := r.SHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		table.Append([]string{r.Name, r.Kind.String(), sha})
	}
	table.Render()
}

// WriteDiff prints per-file patches, coloring added and removed lines
func WriteDiff(w io.Writer, files []models.DiffFile, hidden int) {
	header := color.New(color.FgGreen).Add(color.Underline)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	dim := color.New(color.FgYellow)

	if len(files) == 0 {
		dim.Fprintln(w, "No changed files.")
	}
	for _, f := range files {
		header.Fprintf(w, "%s (%s)", f.Filename, f.Status)
		fmt.Fprint(w, " ")
		added.Fprint(w, "+"+strconv.Itoa(f.Additions))
		fmt.Fprint(w, " ")
		removed.Fprintln(w, "-"+strconv.Itoa(f.Deletions))
		if f.Patch == "" {
			dim.Fprintln(w, "  (binary or too large to display)")
			fmt.Fprintln(w)
			continue
		}
		for _, line := range strings.Split(f.Patch, "\n") {
			switch {
			case strings.HasPrefix(line, "@@"):
				hunk.Fprintln(w, line)
			case strings.HasPrefix(line, "+"):
				added.Fprintln(w, line)
			case strings.HasPrefix(line, "-"):
				removed.Fprintln(w, line)
			default:
				fmt.Fprintln(w, line)
			}
		}
		fmt.Fprintln(w)
	}
	if hidden > 0 {
		dim.Fprintf(w, "%d file(s) hidden by diff.exclude\n", hidden)
	}
}
