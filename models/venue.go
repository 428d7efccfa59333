// Package models defines the structures exchanged with the MLB Stats API
// and the flat records derived from them.
package models

// Venue is a stadium entry as returned by the venues endpoints.
type Venue struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Location  VenueLocation  `json:"location"`
	FieldInfo VenueFieldInfo `json:"fieldInfo"`
}

// VenueLocation carries a venue's city, state, and coordinates.
type VenueLocation struct {
	City               string      `json:"city"`
	State              string      `json:"state"`
	DefaultCoordinates Coordinates `json:"defaultCoordinates"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// VenueFieldInfo describes the playing field (dimensions, orientation,
// roof type).
type VenueFieldInfo struct {
	Description string `json:"description"`
}
