package crm

import (
	"context"

	"commerce-crm-sync/internal/domain"
)

// Repository is the CRM side of an order sync.
//
// Lookups follow a first-match-wins policy: when a search returns several
// records, the first one is reused and the rest are ignored. Nothing is updated
// or deleted. CreateDeal and AttachProduct always create, so repeating a sync
// duplicates deals and attachments. All failures are *domain.UpstreamError.
type Repository interface {
	// FindOrCreateContact searches people by email and creates one from the
	// customer's name, email and phone when nothing matches.
	FindOrCreateContact(ctx context.Context, customer domain.Customer) (*domain.Contact, error)
	// FindOrCreateProduct searches products by SKU and creates one with a single
	// price in the configured currency when nothing matches.
	FindOrCreateProduct(ctx context.Context, item domain.LineItem) (*domain.Product, error)
	CreateDeal(ctx context.Context, contactID int64, title string) (*domain.Deal, error)
	AttachProduct(ctx context.Context, attachment domain.Attachment) (*domain.Attachment, error)
}
