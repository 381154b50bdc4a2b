package stores

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

type CatalogSnapshot struct {
	Products  []models.Product
	Status    Status
	LastError string
}

// Filter narrows the catalog. Zero values match everything.
type Filter struct {
	Query    string
	Brands   []string
	Models   []string
	Years    []int
	MaxPrice float64
}

func (f Filter) match(p models.Product) bool {
	if q := strings.TrimSpace(f.Query); q != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.Models) > 0 && !slices.Contains(f.Models, p.Model) {
		return false
	}
	if len(f.Years) > 0 && !slices.Contains(f.Years, p.Year) {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

// Facets lists the distinct values filters can choose from.
type Facets struct {
	Brands   []string
	Models   []string
	Years    []int
	MaxPrice float64
}

// CatalogStore mirrors the product list. The list is only ever replaced as a
// whole; single product reads are cached next to it.
type CatalogStore struct {
	mu       sync.RWMutex
	products []models.Product
	details  map[string]models.Product
	tracker

	api client.Requester
	log logging.Logger
}

func NewCatalogStore(api client.Requester, log logging.Logger) *CatalogStore {
	return &CatalogStore{
		api:     api,
		log:     log.With("store", "catalog"),
		details: make(map[string]models.Product),
	}
}

func (s *CatalogStore) Snapshot() CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CatalogSnapshot{Products: cloneProducts(s.products), Status: s.status, LastError: s.lastErr}
}

func (s *CatalogStore) FetchAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var products models.Products
	err := s.api.Do(ctx, client.Get(credentials.ScopeNone, "/products"), &products)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "catalog.fetch", err)
		return nil, err
	}
	s.products = cloneProducts(products)
	s.succeed()
	return cloneProducts(products), nil
}

// FetchProduct reads one product with its reviews.
func (s *CatalogStore) FetchProduct(ctx context.Context, id string) (models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return models.Product{}, ErrMissingID
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var p models.Product
	err := s.api.Do(ctx, client.Get(credentials.ScopeNone, client.Path("products", id)), &p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "catalog.product", err)
		return models.Product{}, err
	}
	s.details[p.ID] = p.Clone()
	s.succeed()
	return p.Clone(), nil
}

// Product returns the freshest known copy of id: the detail read if there
// was one, else the list entry.
func (s *CatalogStore) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.details[id]; ok {
		return p.Clone(), true
	}
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}

// Similar returns up to n listed products of the same type as p, excluding p.
func (s *CatalogStore) Similar(p models.Product, n int) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, other := range s.products {
		if len(out) >= n {
			break
		}
		if other.ID != p.ID && other.Type == p.Type {
			out = append(out, other.Clone())
		}
	}
	return out
}

// SubmitReview rates a product as the logged-in shopper. The cached detail
// is replaced by the product the backend returns.
func (s *CatalogStore) SubmitReview(ctx context.Context, productID string, in models.ReviewInput) (models.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return models.Product{}, ErrMissingID
	}
	in.Review = strings.TrimSpace(in.Review)
	if in.Rating < 1 || in.Rating > 5 || in.Review == "" {
		return models.Product{}, ErrInvalidReview
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var p models.Product
	err := s.api.Do(ctx, client.Post(credentials.ScopeUser, client.Path("products", productID, "ratings"), in), &p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "catalog.review", err)
		return models.Product{}, err
	}
	s.details[p.ID] = p.Clone()
	s.succeed()
	s.log.Debug(ctx, "review submitted", "product", p.ID, "rating", in.Rating)
	return p.Clone(), nil
}

// Filter applies f to the current list, keeping catalog order.
func (s *CatalogStore) Filter(f Filter) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if f.match(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s *CatalogStore) Facets() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var f Facets
	for _, p := range s.products {
		if p.Brand != "" && !slices.Contains(f.Brands, p.Brand) {
			f.Brands = append(f.Brands, p.Brand)
		}
		if p.Model != "" && !slices.Contains(f.Models, p.Model) {
			f.Models = append(f.Models, p.Model)
		}
		if p.Year > 0 && !slices.Contains(f.Years, p.Year) {
			f.Years = append(f.Years, p.Year)
		}
		f.MaxPrice = max(f.MaxPrice, p.Price)
	}
	slices.Sort(f.Brands)
	slices.Sort(f.Models)
	slices.SortFunc(f.Years, func(a, b int) int { return cmp.Compare(b, a) })
	return f
}

func cloneProducts(ps []models.Product) []models.Product {
	if ps == nil {
		return nil
	}
	out := make([]models.Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}
