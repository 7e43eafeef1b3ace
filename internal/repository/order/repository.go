package order

import (
	"context"

	"commerce-crm-sync/internal/domain"
)

// Repository fetches orders from the commerce platform.
//
// GetByID returns domain.ErrNotFound when the platform has no such order and a
// *domain.UpstreamError for any other failure. It makes a single attempt.
type Repository interface {
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
}
