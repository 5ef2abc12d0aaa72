package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
	"github.com/matzehuels/roomgrid/pkg/layout"
	"github.com/matzehuels/roomgrid/pkg/observability"
)

const (
	// fineSteps is how many fine pointer steps make up one cell.
	fineSteps = 4
	// cursorInset keeps the pointer inside the last cell of the canvas.
	cursorInset = 1e-6
)

// Editor styles
var (
	editorEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	editorCursorStyle = lipgloss.NewStyle().Reverse(true)
	editorPanelStyle  = lipgloss.NewStyle().PaddingLeft(2)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// EditorModel - Interactive layout editor
// =============================================================================

// EditorModel is the bubbletea model of the terminal layout editor. The
// terminal shows one character per grid cell; the pointer itself moves in
// canvas pixels so that unsnapped placement is possible.
type EditorModel struct {
	ctx    context.Context
	state  *layout.State
	items  []catalog.Item
	colors map[string]lipgloss.Style

	selected int        // index into items
	cursor   grid.Point // pointer position on the canvas
	moving   uuid.UUID  // placement following the pointer, or uuid.Nil

	report *grid.Report
	stale  bool // placements changed since report was computed
	status string
	err    error
}

// NewEditorModel creates an editor over st offering the given items.
func NewEditorModel(ctx context.Context, st *layout.State, items []catalog.Item) EditorModel {
	colors := make(map[string]lipgloss.Style, len(items))
	for i, it := range items {
		colors[it.Name] = lipgloss.NewStyle().Foreground(itemColors[i%len(itemColors)])
	}
	return EditorModel{ctx: ctx, state: st, items: items, colors: colors}
}

// State returns the edited layout.
func (m EditorModel) State() *layout.State { return m.state }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil
	cell := m.state.Grid().CellSizePx

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.moving == uuid.Nil {
			return m, tea.Quit
		}
		m.release()
	case "up", "k":
		m.step(0, -cell)
	case "down", "j":
		m.step(0, cell)
	case "left", "h":
		m.step(-cell, 0)
	case "right", "l":
		m.step(cell, 0)
	case "K":
		m.step(0, -cell/fineSteps)
	case "J":
		m.step(0, cell/fineSteps)
	case "H":
		m.step(-cell/fineSteps, 0)
	case "L":
		m.step(cell/fineSteps, 0)
	case "tab":
		if len(m.items) > 0 {
			m.selected = (m.selected + 1) % len(m.items)
		}
	case "shift+tab":
		if len(m.items) > 0 {
			m.selected = (m.selected + len(m.items) - 1) % len(m.items)
		}
	case "enter", " ":
		if m.moving != uuid.Nil {
			m.release()
		} else {
			m.drop()
		}
	case "m":
		m.pickUp()
	case "x", "delete", "backspace":
		m.remove()
	case "s":
		on := m.state.ToggleSnap()
		m.status = "Snap " + onOff(on)
	case "c":
		m.computeCoverage()
	case "C":
		m.state.Clear()
		m.moving = uuid.Nil
		m.touch("Cleared all placements")
	}
	return m, nil
}

// step moves the pointer, keeping it on the canvas, and drags the picked-up
// placement along.
func (m *EditorModel) step(dx, dy float64) {
	canvas := m.state.Canvas()
	m.cursor.X = max(0, min(m.cursor.X+dx, canvas.W-cursorInset))
	m.cursor.Y = max(0, min(m.cursor.Y+dy, canvas.H-cursorInset))

	if m.moving == uuid.Nil {
		return
	}
	p, err := m.state.Move(m.moving, m.pointer())
	if err != nil {
		m.err = err
		return
	}
	m.stale = true
	m.status = fmt.Sprintf("Moving %s to %s", p.Item.Name, p.Origin)
}

func (m *EditorModel) pointer() layout.Pointer {
	return layout.Pointer{Client: m.cursor}
}

func (m *EditorModel) drop() {
	if len(m.items) == 0 {
		m.err = errors.New(errors.ErrCodeItemNotFound, "catalog is empty")
		return
	}
	item := m.items[m.selected]
	p, err := m.state.Drop(item, m.pointer())
	if err != nil {
		m.err = err
		return
	}
	observability.Layout().OnPlace(m.ctx, item.Name, m.state.Snap())
	m.touch(fmt.Sprintf("Placed %s at %s", item.Name, p.Origin))
}

func (m *EditorModel) pickUp() {
	p, ok := m.placementAtCursor()
	if !ok {
		m.status = "Nothing to move here"
		return
	}
	m.moving = p.ID
	m.status = "Moving " + p.Item.Name + "; enter to release"
}

func (m *EditorModel) release() {
	p, err := m.state.Get(m.moving)
	m.moving = uuid.Nil
	if err != nil {
		m.err = err
		return
	}
	observability.Layout().OnPlace(m.ctx, p.Item.Name, m.state.Snap())
	m.status = fmt.Sprintf("Released %s at %s", p.Item.Name, p.Origin)
}

func (m *EditorModel) remove() {
	p, ok := m.placementAtCursor()
	if !ok {
		m.status = "Nothing to remove here"
		return
	}
	if _, err := m.state.Remove(p.ID); err != nil {
		m.err = err
		return
	}
	if m.moving == p.ID {
		m.moving = uuid.Nil
	}
	observability.Layout().OnRemove(m.ctx, p.Item.Name)
	m.touch("Removed " + p.Item.Name)
}

func (m *EditorModel) computeCoverage() {
	start := time.Now()
	r, err := m.state.Coverage()
	if err != nil {
		m.err = err
		return
	}
	observability.Layout().OnCoverage(m.ctx, r.TotalCells, r.CoveredCells, time.Since(start))
	m.report = &r
	m.stale = false
	m.status = fmt.Sprintf("%d of %d spaces covered", r.CoveredCells, r.TotalCells)
}

// touch records a change to the placements.
func (m *EditorModel) touch(status string) {
	m.stale = m.report != nil
	m.status = status
}

// placementAtCursor returns the topmost placement covering the pointer's cell.
func (m EditorModel) placementAtCursor() (layout.Placement, bool) {
	cellSize := m.state.Grid().CellSizePx
	at := grid.CellAt(m.cursor, cellSize)
	ps := m.state.Placements()
	for _, p := range slices.Backward(ps) {
		start, end := p.Footprint().Span(cellSize)
		if at.X >= start.X && at.X < end.X && at.Y >= start.Y && at.Y < end.Y {
			return p, true
		}
	}
	return layout.Placement{}, false
}

// occupancy maps each covered cell to the topmost placement on it.
func (m EditorModel) occupancy() map[grid.Cell]layout.Placement {
	spec := m.state.Grid()
	occ := make(map[grid.Cell]layout.Placement)
	for _, p := range m.state.Placements() {
		start, end := p.Footprint().Span(spec.CellSizePx)
		for x := max(start.X, 0); x < min(end.X, spec.Columns); x++ {
			for y := max(start.Y, 0); y < min(end.Y, spec.Rows); y++ {
				occ[grid.Cell{X: x, Y: y}] = p
			}
		}
	}
	return occ
}

func (m EditorModel) View() string {
	spec := m.state.Grid()
	occ := m.occupancy()
	cursor := grid.CellAt(m.cursor, spec.CellSizePx)

	var canvas strings.Builder
	for y := 0; y < spec.Rows; y++ {
		for x := 0; x < spec.Columns; x++ {
			c := grid.Cell{X: x, Y: y}
			glyph := editorEmptyStyle.Render("·")
			if p, ok := occ[c]; ok {
				style := m.colors[p.Item.Name]
				if p.ID == m.moving {
					style = style.Bold(true).Underline(true)
				}
				glyph = style.Render(initial(p.Item.Name))
			}
			if c == cursor {
				glyph = editorCursorStyle.Render(glyph)
			}
			canvas.WriteString(glyph)
		}
		canvas.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvas.String(), editorPanelStyle.Render(m.panel()))
}

func (m EditorModel) panel() string {
	spec := m.state.Grid()
	var b strings.Builder

	b.WriteString(styleTitle.Render(appName))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("%dx%d · %gpx cells · snap %s",
		spec.Columns, spec.Rows, spec.CellSizePx, onOff(m.state.Snap()))))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("pointer " + m.cursor.String()))
	b.WriteString("\n\n")

	b.WriteString(styleHeader.Render("Items"))
	b.WriteString("\n")
	if len(m.items) == 0 {
		b.WriteString(styleDim.Render("  (empty catalog)\n"))
	}
	for i, it := range m.items {
		marker := "  "
		style := listNormalStyle
		if i == m.selected {
			marker = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(marker + m.colors[it.Name].Render(initial(it.Name)) + " " + style.Render(it.Label()) + "\n")
	}
	b.WriteString("\n")

	if m.report != nil {
		b.WriteString(coverageTable(*m.report).Render())
		b.WriteString("\n")
		if m.stale {
			b.WriteString(styleWarning.Render("out of date, press c"))
			b.WriteString("\n")
		}
	}

	switch {
	case m.err != nil:
		b.WriteString(editorErrorStyle.Render(errors.UserMessage(m.err)))
	case m.status != "":
		b.WriteString(styleValue.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(styleDim.Render("arrows move · HJKL fine · tab item · enter drop\nm move · x remove · s snap · c coverage · C clear · q quit"))
	return b.String()
}

// initial returns the first letter of name, upper-cased, as its glyph.
func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
