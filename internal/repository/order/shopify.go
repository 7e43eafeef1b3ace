package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"commerce-crm-sync/internal/config"
	"commerce-crm-sync/internal/domain"
)

const (
	platform        = "shopify"
	maxResponseSize = 10 << 20
)

type shopifyRepo struct {
	cfg    config.Shopify
	client *http.Client
	logger *zap.Logger
}

// NewShopify returns a Repository backed by the Shopify Admin REST API.
func NewShopify(cfg config.Shopify, client *http.Client, logger *zap.Logger) Repository {
	if client == nil {
		client = http.DefaultClient
	}
	return &shopifyRepo{
		cfg:    cfg,
		client: client,
		logger: logger.Named("shopify"),
	}
}

func (r *shopifyRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/orders/%s.json",
		r.cfg.StoreURL(), r.cfg.APIVersion, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, r.fail(orderID, &domain.UpstreamError{Platform: platform, Op: "get order", Err: err})
	}
	req.SetBasicAuth(r.cfg.APIKey, r.cfg.APIPassword)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, r.fail(orderID, &domain.UpstreamError{Platform: platform, Op: "get order", Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, r.fail(orderID, &domain.UpstreamError{Platform: platform, Op: "get order", StatusCode: resp.StatusCode, Err: err})
	}

	if resp.StatusCode == http.StatusNotFound {
		r.logger.Info("order not found", zap.String("order_id", orderID))
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb shopifyErrorBody
		_ = json.Unmarshal(body, &eb)
		msg := eb.message()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, r.fail(orderID, &domain.UpstreamError{Platform: platform, Op: "get order", StatusCode: resp.StatusCode, Message: msg})
	}

	var env shopifyOrderEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, r.fail(orderID, &domain.UpstreamError{
			Platform: platform, Op: "get order", StatusCode: resp.StatusCode,
			Message: "decode response: " + err.Error(), Err: err,
		})
	}
	if env.Order == nil {
		r.logger.Info("order not found", zap.String("order_id", orderID))
		return nil, domain.ErrNotFound
	}

	out := env.Order.toDomain()
	return &out, nil
}

func (r *shopifyRepo) fail(orderID string, err *domain.UpstreamError) error {
	r.logger.Error("fetch order failed", zap.String("order_id", orderID), zap.Error(err))
	return err
}
