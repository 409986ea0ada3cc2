package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

// Cataloger is the slice of the catalog service the importer needs.
type Cataloger interface {
	CreateBatch(ctx context.Context, params []catalog.CreateParams) ([]*catalog.Entry, error)
}

// CategorySuggester fills in categories for rows that arrive without one.
type CategorySuggester interface {
	Suggest(ctx context.Context, productName string) (string, error)
}

type Service struct {
	parser     *Parser
	catalog    Cataloger
	categories CategorySuggester
}

func NewService(parser *Parser, cat Cataloger, categories CategorySuggester) *Service {
	return &Service{parser: parser, catalog: cat, categories: categories}
}

type Result struct {
	Imported    int
	Categorized int
}

// Import parses a product sheet and inserts the rows in one batch. Rows
// without a category get one from learned name mappings when available.
func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return Result{}, err
	}

	var categorized int

	for i := range params {
		if params[i].Category != "" {
			continue
		}

		category, err := s.categories.Suggest(ctx, params[i].Name)
		if err != nil {
			return Result{}, fmt.Errorf("suggesting category: %w", err)
		}

		if category != "" {
			params[i].Category = category
			categorized++
		}
	}

	if _, err := s.catalog.CreateBatch(ctx, params); err != nil {
		return Result{}, err
	}

	return Result{Imported: len(params), Categorized: categorized}, nil
}
