package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Product is a catalog entry. The client never mutates it; it is refreshed
// wholesale from the backend.
type Product struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Model         string   `json:"model"`
	Year          int      `json:"year"`
	Price         float64  `json:"price"`
	Type          string   `json:"type"`
	Description   string   `json:"description,omitempty"`
	Images        []string `json:"images,omitempty"`
	AverageRating float64  `json:"averageRating"`
	Reviews       []Review `json:"reviews,omitempty"`
}

func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: product without _id", ErrInvalidPayload)
	}
	return nil
}

func (p Product) Clone() Product {
	p.Images = append([]string(nil), p.Images...)
	p.Reviews = append([]Review(nil), p.Reviews...)
	return p
}

// Review is one rating left on a product.
type Review struct {
	Rating       int       `json:"rating"`
	Review       string    `json:"review"`
	ReviewerName string    `json:"reviewerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

// ReviewInput is the body of POST /products/{id}/ratings.
type ReviewInput struct {
	Rating       int    `json:"rating"`
	Review       string `json:"review"`
	ReviewerName string `json:"reviewerName,omitempty"`
}

// Products is the list payload of GET /products.
type Products []Product

func (ps Products) Validate() error {
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProductRef points at a product either by bare id or by an embedded
// snapshot; the backend sends one or the other depending on whether it
// populated the reference.
type ProductRef struct {
	ID      string
	Product *Product
}

// RefID builds a reference holding only an id.
func RefID(id string) ProductRef {
	return ProductRef{ID: id}
}

// RefProduct builds a reference holding a snapshot.
func RefProduct(p Product) ProductRef {
	return ProductRef{ID: p.ID, Product: &p}
}

func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.Product != nil {
		return json.Marshal(r.Product)
	}
	return json.Marshal(r.ID)
}

func (r *ProductRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ProductRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = ProductRef{ID: id}
		return nil
	}
	var p Product
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("product reference: %w", err)
	}
	*r = ProductRef{ID: p.ID, Product: &p}
	return nil
}

// Price returns the snapshot price, or 0 when only the id is known.
func (r ProductRef) Price() float64 {
	if r.Product == nil {
		return 0
	}
	return r.Product.Price
}

// Label is a short human readable name for listings.
func (r ProductRef) Label() string {
	if r.Product != nil && r.Product.Name != "" {
		return r.Product.Name
	}
	return r.ID
}

func (r ProductRef) clone() ProductRef {
	if r.Product != nil {
		p := r.Product.Clone()
		r.Product = &p
	}
	return r
}
