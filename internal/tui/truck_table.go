package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/foodtruckfinder/internal/foodtruck"
)

// Output formats.
const (
	FormatTable = "table"
	FormatPlain = "plain"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Column headers.
const (
	headerIndex   = "#"
	headerName    = "NAME"
	headerAddress = "ADDRESS"
)

// tabPadding is the column gap of plain output.
const tabPadding = 2

// RenderOptions controls how pages are drawn.
type RenderOptions struct {
	// Format is FormatTable or FormatPlain.
	Format string
	// RowNumbers adds a leading 1-based "#" column.
	RowNumbers bool
	// MaxWidth truncates cell values; 0 disables truncation.
	MaxWidth int
	// Styled enables colors. Callers pass whether the output is a terminal.
	Styled bool
}

// DefaultRenderOptions returns the options used when nothing is configured.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Format:     FormatTable,
		RowNumbers: true,
		MaxWidth:   DefaultMaxWidth,
	}
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	switch format {
	case FormatTable, FormatPlain:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownFormat, format, FormatTable, FormatPlain)
	}
}

// TableRenderer draws pages of trucks as a NAME / ADDRESS table.
type TableRenderer struct {
	opts RenderOptions
}

// NewTableRenderer creates a renderer. An empty format means FormatTable.
func NewTableRenderer(opts RenderOptions) (*TableRenderer, error) {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}
	return &TableRenderer{opts: opts}, nil
}

// Options returns the renderer options.
func (r *TableRenderer) Options() RenderOptions {
	return r.opts
}

// Render writes one page. Rows are numbered from 1 within the page.
func (r *TableRenderer) Render(w io.Writer, page []foodtruck.Truck) error {
	rows := r.rows(page)
	if r.opts.Format == FormatPlain {
		return r.renderPlain(w, rows)
	}
	return r.renderTable(w, rows)
}

// Caption writes a one-line caption above or below a table.
func (r *TableRenderer) Caption(w io.Writer, text string) error {
	styles := NewStyles(lipgloss.NewRenderer(w), r.opts.Styled)
	_, err := fmt.Fprintln(w, styles.Caption.Render(text))
	return err
}

// Info writes an informational message such as an empty-result notice.
func (r *TableRenderer) Info(w io.Writer, text string) error {
	styles := NewStyles(lipgloss.NewRenderer(w), r.opts.Styled)
	_, err := fmt.Fprintln(w, styles.Info.Render(text))
	return err
}

func (r *TableRenderer) headers() []string {
	if r.opts.RowNumbers {
		return []string{headerIndex, headerName, headerAddress}
	}
	return []string{headerName, headerAddress}
}

func (r *TableRenderer) rows(page []foodtruck.Truck) [][]string {
	rows := make([][]string, len(page))
	for i, t := range page {
		name := Truncate(t.Name, r.opts.MaxWidth)
		address := Truncate(t.Address, r.opts.MaxWidth)
		if r.opts.RowNumbers {
			rows[i] = []string{strconv.Itoa(i + 1), name, address}
		} else {
			rows[i] = []string{name, address}
		}
	}
	return rows
}

func (r *TableRenderer) renderTable(w io.Writer, rows [][]string) error {
	styles := NewStyles(lipgloss.NewRenderer(w), r.opts.Styled)
	numbered := r.opts.RowNumbers

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(r.headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case numbered && col == 0:
				return styles.Index
			default:
				return styles.Cell
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (r *TableRenderer) renderPlain(w io.Writer, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	headers := r.headers()
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
