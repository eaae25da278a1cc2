package dto

// ImportResponse reports the outcome of a backup import.
type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
