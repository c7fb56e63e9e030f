// Package catalog holds the authoritative, read-only product collection
// and answers queries over it. The store is immutable after load and safe
// for concurrent reads without synchronization.
package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

// Product is a single catalog record. Products are never mutated after
// the store is built.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Category    string            `json:"category"`
	Image       string            `json:"image"`
	Color       string            `json:"color,omitempty"`
	Material    string            `json:"material,omitempty"`
	Rating      *float64          `json:"rating,omitempty"`
	Pros        []string          `json:"pros,omitempty"`
	Cons        []string          `json:"cons,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
}

// RatingOrZero returns the rating, treating an absent rating as 0.
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Store is the immutable in-memory product collection.
type Store struct {
	byID  map[string]Product
	order []Product
}

// NewStore builds a Store from the given products. Duplicate ids, empty
// ids, negative prices and ratings outside [0,5] are rejected at load
// time; the store is authoritative afterwards.
func NewStore(products []Product) (*Store, error) {
	byID := make(map[string]Product, len(products))
	order := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has an empty id", p.Name)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has a negative price", p.ID)
		}
		if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
			return nil, fmt.Errorf("product %q has a rating outside [0,5]", p.ID)
		}
		byID[p.ID] = p
		order = append(order, p)
	}
	return &Store{byID: byID, order: order}, nil
}

// FindByID retrieves a single product by its unique identifier.
// Returns ErrNotFound if no product exists with the given id.
func (s *Store) FindByID(id string) (Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// All returns every product in load order. The result is a fresh slice on
// every call.
func (s *Store) All() []Product {
	out := make([]Product, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of products in the store.
func (s *Store) Len() int {
	return len(s.order)
}
