package repository

// Pairing represents a pairings row. Quality is nil for an empty cell.
type Pairing struct {
	RowID    int
	WineType string
	Cuisine  string
	Quality  *float64
}
