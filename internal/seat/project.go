package seat

import "sahelbus/internal/domain"

// Project overlays the seat labels of active reservations onto a copy
// of the baseline layout. The baseline itself is never modified; two
// calls with the same inputs yield identical layouts.
//
// A label that decodes outside the grid means the ledger holds a
// reservation that cannot exist on this bus. That is corruption, not
// contention, so Project fails instead of skipping the seat.
func Project(tripID int64, baseline Layout, reservedLabels []string) (Layout, error) {
	out := baseline.Clone()
	for _, label := range reservedLabels {
		row, column, err := Decode(label)
		if err != nil {
			return Layout{}, domain.InventoryCorruptionError{TripID: tripID, Label: label, Err: err}
		}
		if !out.Contains(row, column) {
			return Layout{}, domain.InventoryCorruptionError{
				TripID: tripID,
				Label:  label,
				Err:    domain.OutOfRangeError{Row: row, Column: column},
			}
		}
		out.SeatMap[row][column] = StatusReserved
	}
	return out, nil
}
