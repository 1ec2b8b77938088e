package main

import "context"

// Advert identifiers bounds.
const (
	MinAdvertID = 100000
	MaxAdvertID = 999999
)

// Advert represents a classified advertisement entity.
type Advert struct {
	ID          int     `json:"id"`
	Title       string  `json:"title" validate:"required,max=256"`
	Description string  `json:"description" validate:"max=4096"`
	Category    string  `json:"category" validate:"required,max=128"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// SnapshotStore defines the operations of a snapshot backend.
// A snapshot is always read and written as a whole.
type SnapshotStore interface {
	Load(ctx context.Context) ([]Advert, error)
	Save(ctx context.Context, adverts []Advert) error
	Close() error
}
