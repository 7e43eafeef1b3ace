package ordersync

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"commerce-crm-sync/internal/domain"
	crmrepo "commerce-crm-sync/internal/repository/crm"
	orderrepo "commerce-crm-sync/internal/repository/order"
	"commerce-crm-sync/internal/telemetry"
)

// ErrMissingEmail is returned when the order has no customer email to key the contact on.
var ErrMissingEmail = fmt.Errorf("%w: customer email is missing", domain.ErrValidation)

// Result summarises a completed sync.
type Result struct {
	OrderID     string
	ContactID   int64
	DealID      int64
	ProductIDs  []int64
	Attachments []domain.Attachment
}

// Service replicates a commerce order into the CRM.
type Service struct {
	orders orderrepo.Repository
	crm    crmrepo.Repository
	logger *zap.Logger
}

// New creates a Service.
func New(orders orderrepo.Repository, crm crmrepo.Repository, logger *zap.Logger) *Service {
	return &Service{
		orders: orders,
		crm:    crm,
		logger: logger.Named("ordersync"),
	}
}

// Sync fetches the order, resolves its contact and products, then creates a deal
// and attaches every product to it. Stages run in order and the first failure
// ends the sync. Nothing already written to the CRM is rolled back.
func (s *Service) Sync(ctx context.Context, orderID string) (*Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "ordersync.sync", attribute.String("order_id", orderID))
	defer span.End()
	log := s.logger.With(zap.String("order_id", orderID))

	res, err := s.sync(ctx, log, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	log.Info("order synced",
		zap.Int64("contact_id", res.ContactID),
		zap.Int64("deal_id", res.DealID),
		zap.Int("products", len(res.ProductIDs)),
	)
	return res, nil
}

func (s *Service) sync(ctx context.Context, log *zap.Logger, orderID string) (*Result, error) {
	order, err := s.fetch(ctx, orderID)
	if err != nil {
		log.Warn("fetch order failed", zap.Error(err))
		return nil, err
	}

	if order.Customer == nil || strings.TrimSpace(order.Customer.Email) == "" {
		log.Warn("order customer has no email")
		return nil, ErrMissingEmail
	}

	contact, err := s.resolveContact(ctx, *order.Customer)
	if err != nil {
		log.Error("resolve contact failed", zap.Error(err))
		return nil, fmt.Errorf("resolve contact: %w", err)
	}

	products, err := s.resolveProducts(ctx, order.LineItems)
	if err != nil {
		log.Error("resolve products failed", zap.Error(err))
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	deal, err := s.createDeal(ctx, contact.ID, order.DealTitle())
	if err != nil {
		log.Error("create deal failed", zap.Int64("contact_id", contact.ID), zap.Error(err))
		return nil, fmt.Errorf("create deal: %w", err)
	}

	attachments, err := s.attachProducts(ctx, deal.ID, products, order.LineItems)
	if err != nil {
		// the deal and any finished attachments stay in the CRM
		log.Error("attach products failed", zap.Int64("deal_id", deal.ID), zap.Error(err))
		return nil, fmt.Errorf("attach products: %w", err)
	}

	productIDs := make([]int64, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}
	return &Result{
		OrderID:     order.ID,
		ContactID:   contact.ID,
		DealID:      deal.ID,
		ProductIDs:  productIDs,
		Attachments: attachments,
	}, nil
}

func (s *Service) fetch(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "ordersync.fetch")
	defer span.End()

	order, err := s.orders.GetByID(ctx, orderID)
	telemetry.RecordError(span, err)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("line_items", len(order.LineItems)))
	return order, nil
}

func (s *Service) resolveContact(ctx context.Context, customer domain.Customer) (*domain.Contact, error) {
	ctx, span := telemetry.StartSpan(ctx, "ordersync.resolve_contact")
	defer span.End()

	contact, err := s.crm.FindOrCreateContact(ctx, customer)
	telemetry.RecordError(span, err)
	return contact, err
}

// resolveProducts runs one lookup per line item concurrently. The first error is
// returned once every call has finished; peers are not cancelled.
func (s *Service) resolveProducts(ctx context.Context, items []domain.LineItem) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ordersync.resolve_products", attribute.Int("count", len(items)))
	defer span.End()

	products := make([]domain.Product, len(items))
	var g errgroup.Group
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			p, err := s.crm.FindOrCreateProduct(ctx, item)
			if err != nil {
				return fmt.Errorf("line item %q: %w", item.SKU, err)
			}
			products[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return products, nil
}

func (s *Service) createDeal(ctx context.Context, contactID int64, title string) (*domain.Deal, error) {
	ctx, span := telemetry.StartSpan(ctx, "ordersync.create_deal", attribute.Int64("contact_id", contactID))
	defer span.End()

	deal, err := s.crm.CreateDeal(ctx, contactID, title)
	telemetry.RecordError(span, err)
	return deal, err
}

// attachProducts pairs products[i] with items[i] and attaches them concurrently.
func (s *Service) attachProducts(ctx context.Context, dealID int64, products []domain.Product, items []domain.LineItem) ([]domain.Attachment, error) {
	ctx, span := telemetry.StartSpan(ctx, "ordersync.attach_products",
		attribute.Int64("deal_id", dealID),
		attribute.Int("count", len(products)),
	)
	defer span.End()

	attachments := make([]domain.Attachment, len(products))
	var g errgroup.Group
	for i, product := range products {
		i, product := i, product
		g.Go(func() error {
			a, err := s.crm.AttachProduct(ctx, domain.Attachment{
				DealID:    dealID,
				ProductID: product.ID,
				Quantity:  items[i].Quantity,
				ItemPrice: items[i].Price,
			})
			if err != nil {
				return fmt.Errorf("product %d: %w", product.ID, err)
			}
			attachments[i] = *a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return attachments, nil
}
