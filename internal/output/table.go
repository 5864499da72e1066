package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// ModuleRow is one line of the module listing.
type ModuleRow struct {
	Name     string
	Path     string
	Manifest bool
}

// RenderModuleTable renders discovered modules as a table.
func RenderModuleTable(rows []ModuleRow) string {
	t := NewTable("NAME", "PATH", "MANIFEST")
	for _, r := range rows {
		manifest := "no"
		if r.Manifest {
			manifest = "yes"
		}
		t.Row(r.Name, r.Path, manifest)
	}
	return t.String()
}

// StatusRow is one line of the run summary table.
type StatusRow struct {
	Name    string
	Status  string
	Message string
}

// RenderStatusTable renders per-module outcomes with styled statuses.
func RenderStatusTable(rows []StatusRow) string {
	t := NewTable("MODULE", "STATUS", "MESSAGE")
	for _, r := range rows {
		t.Row(r.Name, StatusStyle(r.Status).Render(r.Status), r.Message)
	}
	return t.String()
}
