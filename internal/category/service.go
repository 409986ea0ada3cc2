// Package category suggests catalog categories from product names, based on
// mappings learned from earlier entries. CSV imports use it to fill rows
// that arrive without a category.
package category

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	FindCategory(ctx context.Context, productName string) (string, error)
	CreateMapping(ctx context.Context, namePattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given product name.
// Returns empty string if no mapping applies.
func (s *Service) Suggest(ctx context.Context, productName string) (string, error) {
	return s.repo.FindCategory(ctx, productName)
}

// Learn remembers a new mapping between a name pattern and a category.
func (s *Service) Learn(ctx context.Context, namePattern, category string) error {
	return s.repo.CreateMapping(ctx, namePattern, category)
}
