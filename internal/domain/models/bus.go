package models

import "sahelbus/internal/seat"

// Bus describes one vehicle in the fleet. Layout is the baseline grid
// with every seat available; it is read-only once trips reference the
// bus, reservation state only ever lands on projected copies.
type Bus struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Capacity  int         `json:"capacity"`
	Layout    seat.Layout `json:"layout"`
	Amenities []string    `json:"amenities"`
	IsActive  bool        `json:"isActive"`
}
