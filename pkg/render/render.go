package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/service"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

// Steps writes a numbered, styled step list. Lines that do not parse are
// shown as-is and marked.
func Steps(w io.Writer, text string) error {
	for i, line := range steps.Lines(text) {
		if _, err := fmt.Fprintf(w, "%s %s\n", numberStyle.Render(fmt.Sprintf("%2d.", i+1)), StepLine(line)); err != nil {
			return err
		}
	}
	return nil
}

// StepLine styles a single step line.
func StepLine(line string) string {
	s, err := steps.Parse(line)
	if err != nil {
		return badStyle.Render("✗ " + line)
	}
	var target string
	if s.Action == steps.ActionClickCoords {
		target = fmt.Sprintf("%d,%d", s.X, s.Y)
	} else {
		target = s.Target
	}
	return fmt.Sprintf("%s  %s %s  %s",
		descStyle.Render(s.Description),
		actionStyle.Render(string(s.Action)),
		target,
		checkStyle.Render("→ "+s.Check))
}

const maxNameWidth = 32

var elementColumns = []string{"NAME", "TYPE", "SCREEN", "COORDS", "INTERACTIVE", "TEXT"}

// Elements writes an aligned element table. Column widths are measured in
// terminal cells so wide characters in layer names line up.
func Elements(w io.Writer, elements []extract.Element) error {
	rows := make([][]string, 0, len(elements))
	for _, e := range elements {
		rows = append(rows, []string{
			runewidth.Truncate(e.Name, maxNameWidth, "…"),
			e.Type,
			e.Screen,
			e.Coordinates.String(),
			yesNo(e.HasInteraction),
			yesNo(e.HasText),
		})
	}

	widths := make([]int, len(elementColumns))
	for i, h := range elementColumns {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	if _, err := fmt.Fprintln(w, headerStyle.Render(formatRow(elementColumns, widths))); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			padded[i] = c
			continue
		}
		padded[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.Join(padded, "  ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Markdown builds a report for a generation response.
func Markdown(resp *service.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", resp.FileName)
	fmt.Fprintf(&b, "- **Mode:** %s\n", resp.Mode)
	fmt.Fprintf(&b, "- **Interactive elements:** %d\n\n", resp.TotalElements)

	if len(resp.Elements) > 0 {
		b.WriteString("## Elements\n\n")
		b.WriteString("| Name | Type | Screen | Coordinates |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, e := range resp.Elements {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escapeCell(e.Name), e.Type, escapeCell(e.Screen), e.Coordinates)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Test cases\n\n")
	b.WriteString("```\n")
	b.WriteString(strings.TrimSpace(resp.TestCases))
	b.WriteString("\n```\n")
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Pretty renders markdown for the terminal, falling back to the raw input
// if glamour is unavailable or rendering fails.
func Pretty(md string) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
