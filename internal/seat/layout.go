package seat

import "sahelbus/internal/domain"

// Status of a single cell in a bus grid. The transient "selected"
// state shown while a passenger is picking seats lives in the client
// only and is never part of server-side layouts.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
)

// Layout is a rectangular seating grid. The baseline layout stored on
// a bus keeps every cell available; reservation state is overlaid on
// copies by Project.
type Layout struct {
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	SeatMap [][]Status `json:"seatMap"`
}

// NewLayout builds a layout with every seat available.
func NewLayout(rows, columns int) (Layout, error) {
	if rows <= 0 || columns <= 0 || columns > maxColumns {
		return Layout{}, domain.ValidationError{Field: "layout", Msg: "rows and columns must be positive, columns at most 26"}
	}
	grid := make([][]Status, rows)
	for r := range grid {
		grid[r] = make([]Status, columns)
		for c := range grid[r] {
			grid[r][c] = StatusAvailable
		}
	}
	return Layout{Rows: rows, Columns: columns, SeatMap: grid}, nil
}

// At returns the status of one cell, bounds-checked.
func (l Layout) At(row, column int) (Status, error) {
	if row < 0 || row >= l.Rows || column < 0 || column >= l.Columns {
		return "", domain.OutOfRangeError{Row: row, Column: column}
	}
	return l.SeatMap[row][column], nil
}

// Contains reports whether the zero-based position falls inside the grid.
func (l Layout) Contains(row, column int) bool {
	return row >= 0 && row < l.Rows && column >= 0 && column < l.Columns
}

// Clone deep-copies the grid so overlays never touch the baseline.
func (l Layout) Clone() Layout {
	grid := make([][]Status, l.Rows)
	for r := range grid {
		grid[r] = make([]Status, l.Columns)
		copy(grid[r], l.SeatMap[r])
	}
	return Layout{Rows: l.Rows, Columns: l.Columns, SeatMap: grid}
}

// Capacity is the number of cells in the grid.
func (l Layout) Capacity() int {
	return l.Rows * l.Columns
}
