package models

// Route is static reference data for one direction of an intercity
// connection. Price is in ouguiya (MRU), duration in minutes.
type Route struct {
	ID                int64  `json:"id"`
	From              string `json:"from"`
	To                string `json:"to"`
	DistanceKm        int    `json:"distance"`
	EstimatedDuration int    `json:"estimatedDuration"`
	Price             int64  `json:"price"`
	IsActive          bool   `json:"isActive"`
}
