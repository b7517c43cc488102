package domain

import "time"

// Meta holds the identity fields every persisted record carries.
// It is embedded so that ID and CreatedAt flatten into the record's JSON.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Metadata returns the record's identity fields for the store to fill in.
func (m *Meta) Metadata() *Meta {
	return m
}
