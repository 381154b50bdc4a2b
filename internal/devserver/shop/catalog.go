package shop

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

// AddProduct stores p, assigning an id when it has none.
func (s *Shop) AddProduct(_ context.Context, p models.Product) (models.Product, error) {
	if strings.TrimSpace(p.Name) == "" || p.Price < 0 {
		return models.Product{}, fmt.Errorf("%w: product needs a name and a non-negative price", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = s.newID()
	}
	if _, exists := s.products[p.ID]; exists {
		return models.Product{}, fmt.Errorf("%w: product %s", common.ErrorAlreadyExists, p.ID)
	}
	p = p.Clone()
	p.AverageRating = averageRating(p.Reviews)
	s.products[p.ID] = &p
	s.productOrder = append(s.productOrder, p.ID)
	return p.Clone(), nil
}

// Products lists the catalog in insertion order. A non-empty productType
// keeps only products of that type (case-insensitive).
func (s *Shop) Products(_ context.Context, productType string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		p := s.products[id]
		if productType != "" && !strings.EqualFold(p.Type, productType) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Product returns one catalog entry.
func (s *Shop) Product(_ context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.product(id)
	if err != nil {
		return models.Product{}, err
	}
	return p.Clone(), nil
}

func (s *Shop) product(id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", common.ErrorNotFound, id)
	}
	return p, nil
}

// Rate appends a review by the shopper and recomputes the average rating.
// The reviewer name defaults to the shopper's profile name.
func (s *Shop) Rate(_ context.Context, userID, productID string, in models.ReviewInput) (models.Product, error) {
	text := strings.TrimSpace(in.Review)
	if in.Rating < 1 || in.Rating > 5 || text == "" {
		return models.Product{}, fmt.Errorf("%w: rating must be 1..5 with a review text", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.user(userID)
	if err != nil {
		return models.Product{}, err
	}
	p, err := s.product(productID)
	if err != nil {
		return models.Product{}, err
	}

	name := strings.TrimSpace(in.ReviewerName)
	if name == "" {
		name = acc.principal.Name
	}
	p.Reviews = append(p.Reviews, models.Review{
		Rating:       in.Rating,
		Review:       text,
		ReviewerName: name,
		CreatedAt:    s.now(),
	})
	p.AverageRating = averageRating(p.Reviews)
	return p.Clone(), nil
}

// averageRating is the mean rating rounded to one decimal.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
