package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/search"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	CreateEntries(ctx context.Context, entries []*Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (*Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ListEntries(ctx context.Context, kind *Kind) ([]*Entry, error)
}

// SKUSource issues catalog SKUs ("PRD-007") from the settings sequence.
type SKUSource interface {
	NextSKU(ctx context.Context) (string, error)
}

type Service struct {
	repo   Repository
	skus   SKUSource
	policy StockPolicy
}

func NewService(repo Repository, skus SKUSource, policy StockPolicy) *Service {
	return &Service{repo: repo, skus: skus, policy: policy}
}

// Policy returns the stock policy the service derives statuses with.
func (s *Service) Policy() StockPolicy {
	return s.policy
}

type CreateParams struct {
	SKU           string // generated from the settings sequence when empty
	Name          string
	Category      string
	Kind          Kind
	UnitPrice     decimal.Decimal
	StockQuantity int64
	MinStockLevel *int64
}

// ListFilter narrows List results. Kind is applied by the store; Query and
// Status are applied in memory over the loaded list, which keeps the
// filtering rules in the search package and the resolver.
type ListFilter struct {
	Kind   *Kind
	Query  string
	Status *StockStatus
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	e, err := s.entryFromParams(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// CreateBatch inserts imported entries in one store transaction.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Entry, error) {
	if len(params) == 0 {
		return nil, nil
	}

	entries := make([]*Entry, len(params))

	for i, p := range params {
		e, err := s.entryFromParams(ctx, p)
		if err != nil {
			return nil, err
		}

		entries[i] = e
	}

	if err := s.repo.CreateEntries(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *Service) entryFromParams(ctx context.Context, params CreateParams) (*Entry, error) {
	e := &Entry{
		SKU:           params.SKU,
		Name:          params.Name,
		Category:      params.Category,
		Kind:          params.Kind,
		UnitPrice:     params.UnitPrice,
		StockQuantity: params.StockQuantity,
		MinStockLevel: params.MinStockLevel,
	}

	// Validate before issuing a SKU so rejected input never consumes one.
	if err := validateEntry(e); err != nil {
		return nil, err
	}

	if e.SKU == "" {
		sku, err := s.skus.NextSKU(ctx)
		if err != nil {
			return nil, fmt.Errorf("issuing SKU: %w", err)
		}

		e.SKU = sku
	}

	return e, nil
}

func validateEntry(e *Entry) error {
	switch {
	case e.UnitPrice.IsNegative():
		return fmt.Errorf("unit price %s: %w", e.UnitPrice, ErrNegativeValue)
	case e.StockQuantity < 0:
		return fmt.Errorf("stock quantity %d: %w", e.StockQuantity, ErrNegativeValue)
	case e.MinStockLevel != nil && *e.MinStockLevel < 0:
		return fmt.Errorf("min stock level %d: %w", *e.MinStockLevel, ErrNegativeValue)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) Update(ctx context.Context, e *Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}

	return s.repo.UpdateEntry(ctx, e)
}

// AdjustStock applies a stock delta (received goods, corrections) and
// returns the updated entry.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (*Entry, error) {
	return s.repo.AdjustStock(ctx, id, delta)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	entries, err := s.repo.ListEntries(ctx, filter.Kind)
	if err != nil {
		return nil, err
	}

	var facets []search.Predicate[*Entry]
	if filter.Status != nil {
		facets = append(facets, StockFacet(s.policy, *filter.Status))
	}

	return search.Filter(entries, filter.Query, (*Entry).SearchFields, facets...), nil
}

// BelowMinimum returns the entries whose derived status is low or out of
// stock, for the dashboard alert.
func (s *Service) BelowMinimum(ctx context.Context) ([]*Entry, error) {
	entries, err := s.repo.ListEntries(ctx, nil)
	if err != nil {
		return nil, err
	}

	below := search.Filter(entries, "", (*Entry).SearchFields,
		func(e *Entry) bool { return s.policy.StatusOf(e) != StatusInStock })

	return below, nil
}
