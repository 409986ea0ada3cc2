package settings

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, s *Settings) error
	// NextInvoiceSeq returns the current prefix and sequence value, then
	// advances the sequence. Atomic, so two concurrent drafts never share a
	// number.
	NextInvoiceSeq(ctx context.Context) (prefix string, seq int64, err error)
	// NextProductSeq does the same for catalog SKUs.
	NextProductSeq(ctx context.Context) (prefix string, seq int64, err error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) Update(ctx context.Context, settings *Settings) error {
	return s.repo.UpdateSettings(ctx, settings)
}

// NextInvoiceNumber issues the next invoice number, e.g. "INV-042".
func (s *Service) NextInvoiceNumber(ctx context.Context) (string, error) {
	prefix, seq, err := s.repo.NextInvoiceSeq(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

// NextSKU issues the next catalog SKU, e.g. "PRD-009".
func (s *Service) NextSKU(ctx context.Context) (string, error) {
	prefix, seq, err := s.repo.NextProductSeq(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%03d", prefix, seq), nil
}
