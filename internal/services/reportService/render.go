package reportservice

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/redjax/hwsum/internal/config"
	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
)

// RenderOptions selects the output format and which kinds to print.
type RenderOptions struct {
	Format string
	Color  bool
	// Kinds limits the output; empty means CPU, memory and disk.
	Kinds []inventoryservice.Kind
}

// Render writes the inventory to w in the requested format.
func Render(w io.Writer, inv *inventoryservice.Inventory, opts RenderOptions) error {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = inventoryservice.Kinds
	}

	lines := make([]inventoryservice.Line, 0, len(kinds))
	for _, k := range kinds {
		lines = append(lines, inv.Summarize(k))
	}

	switch opts.Format {
	case config.FormatText, "":
		return renderText(w, lines, opts.Color)
	case config.FormatTable:
		return renderTable(w, lines)
	case config.FormatJSON:
		return renderJSON(w, inv, lines)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func renderText(w io.Writer, lines []inventoryservice.Line, color bool) error {
	var b strings.Builder
	for _, l := range lines {
		label, text := l.Kind.Label()+":", l.Text
		if color {
			label = labelStyle.Render(label)
			if l.Unknown {
				text = unknownStyle.Render(text)
			}
		}
		b.WriteString(label + " " + text + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderTable(w io.Writer, lines []inventoryservice.Line) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Count", "Description"})

	for _, l := range lines {
		if l.Unknown || len(l.Rows) == 0 {
			t.AppendRow(table.Row{l.Kind.Label(), "-", l.Text})
			continue
		}
		for _, r := range l.Rows {
			t.AppendRow(table.Row{l.Kind.Label(), r.Count, r.Description})
		}
	}

	t.Render()
	return nil
}

// jsonReport adds the rendered summary lines and failures to the inventory.
type jsonReport struct {
	*inventoryservice.Inventory
	Summary  []string          `json:"summary"`
	Failures map[string]string `json:"failures,omitempty"`
}

func renderJSON(w io.Writer, inv *inventoryservice.Inventory, lines []inventoryservice.Line) error {
	report := jsonReport{Inventory: inv}
	for _, l := range lines {
		report.Summary = append(report.Summary, l.String())
	}
	for k, err := range inv.Failures {
		if report.Failures == nil {
			report.Failures = make(map[string]string)
		}
		report.Failures[k.String()] = err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
