package domain

import "time"

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type OutfitItem struct {
	Product  Product  `json:"product"`
	Position Position `json:"position"`
	Scale    float64  `json:"scale"`
	Rotation float64  `json:"rotation"`
	Layer    int      `json:"layer"`
}

type SavedOutfit struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Items     []OutfitItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}
