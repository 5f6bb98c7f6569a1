package models

// Plan represents a purchasable subscription tier (basic, premium, enterprise).
// Plans are defined at process start and never mutated.
type Plan struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}
