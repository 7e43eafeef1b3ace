package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"commerce-crm-sync/internal/config"
	"commerce-crm-sync/internal/domain"
)

const (
	platform        = "pipedrive"
	maxResponseSize = 10 << 20
)

type pipedriveRepo struct {
	cfg    config.Pipedrive
	client *http.Client
	logger *zap.Logger
}

// NewPipedrive returns a Repository backed by the Pipedrive REST API.
func NewPipedrive(cfg config.Pipedrive, client *http.Client, logger *zap.Logger) Repository {
	if client == nil {
		client = http.DefaultClient
	}
	return &pipedriveRepo{
		cfg:    cfg,
		client: client,
		logger: logger.Named("pipedrive"),
	}
}

func (r *pipedriveRepo) FindOrCreateContact(ctx context.Context, customer domain.Customer) (*domain.Contact, error) {
	hit, err := r.searchFirst(ctx, "search person", "/persons/search", customer.Email, "email")
	if err != nil {
		return nil, err
	}
	if hit != nil {
		return &domain.Contact{ID: hit.ID, Name: hit.Name, Email: customer.Email}, nil
	}

	var created personResponse
	err = r.do(ctx, "create person", http.MethodPost, "/persons", nil, personRequest{
		Name:  customer.FullName(),
		Email: customer.Email,
		Phone: customer.Phone,
	}, &created)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("person created", zap.Int64("person_id", created.ID))
	return &domain.Contact{ID: created.ID, Name: created.Name, Email: customer.Email}, nil
}

func (r *pipedriveRepo) FindOrCreateProduct(ctx context.Context, item domain.LineItem) (*domain.Product, error) {
	hit, err := r.searchFirst(ctx, "search product", "/products/search", item.SKU, "code")
	if err != nil {
		return nil, err
	}
	if hit != nil {
		return &domain.Product{ID: hit.ID, Name: hit.Name, Code: hit.Code}, nil
	}

	var created productResponse
	err = r.do(ctx, "create product", http.MethodPost, "/products", nil, productRequest{
		Name: item.Name,
		Code: item.SKU,
		Prices: []productPrice{{
			Currency: r.cfg.Currency,
			Price:    item.Price.InexactFloat64(),
		}},
	}, &created)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("product created", zap.Int64("product_id", created.ID), zap.String("sku", item.SKU))
	return &domain.Product{ID: created.ID, Name: created.Name, Code: created.Code}, nil
}

func (r *pipedriveRepo) CreateDeal(ctx context.Context, contactID int64, title string) (*domain.Deal, error) {
	var created dealResponse
	err := r.do(ctx, "create deal", http.MethodPost, "/deals", nil, dealRequest{
		Title:    title,
		PersonID: contactID,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &domain.Deal{ID: created.ID, Title: created.Title, PersonID: contactID}, nil
}

func (r *pipedriveRepo) AttachProduct(ctx context.Context, a domain.Attachment) (*domain.Attachment, error) {
	var created dealProductResponse
	path := "/deals/" + strconv.FormatInt(a.DealID, 10) + "/products"
	err := r.do(ctx, "attach product", http.MethodPost, path, nil, dealProductRequest{
		ProductID: a.ProductID,
		ItemPrice: a.ItemPrice.InexactFloat64(),
		Quantity:  a.Quantity,
	}, &created)
	if err != nil {
		return nil, err
	}
	out := a
	out.ID = created.ID
	return &out, nil
}

// searchFirst returns the first search hit, or nil when nothing matches.
func (r *pipedriveRepo) searchFirst(ctx context.Context, op, path, term, field string) (*searchHit, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("fields", field)

	var data *searchData
	if err := r.do(ctx, op, http.MethodGet, path, q, nil, &data); err != nil {
		return nil, err
	}
	if data == nil || len(data.Items) == 0 {
		return nil, nil
	}
	return &data.Items[0].Item, nil
}

func (r *pipedriveRepo) do(ctx context.Context, op, method, path string, query url.Values, in, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", r.cfg.APIToken)
	endpoint := r.cfg.BaseURL + path + "?" + query.Encode()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return r.fail(&domain.UpstreamError{Platform: platform, Op: op, Err: err})
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return r.fail(&domain.UpstreamError{Platform: platform, Op: op, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return r.fail(&domain.UpstreamError{Platform: platform, Op: op, Err: redactToken(err)})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return r.fail(&domain.UpstreamError{Platform: platform, Op: op, StatusCode: resp.StatusCode, Err: err})
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return r.fail(&domain.UpstreamError{Platform: platform, Op: op, StatusCode: resp.StatusCode, Message: msg})
	}
	if decodeErr != nil {
		return r.fail(&domain.UpstreamError{
			Platform: platform, Op: op, StatusCode: resp.StatusCode,
			Message: "decode response: " + decodeErr.Error(), Err: decodeErr,
		})
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return r.fail(&domain.UpstreamError{Platform: platform, Op: op, StatusCode: resp.StatusCode, Message: msg})
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return r.fail(&domain.UpstreamError{
				Platform: platform, Op: op, StatusCode: resp.StatusCode,
				Message: "decode data: " + err.Error(), Err: err,
			})
		}
	}
	return nil
}

func (r *pipedriveRepo) fail(err *domain.UpstreamError) error {
	r.logger.Error("pipedrive call failed", zap.String("op", err.Op), zap.Int("status", err.StatusCode), zap.Error(err))
	return err
}

// redactToken strips the query string from *url.Error so the api token never reaches logs or callers.
func redactToken(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if u, perr := url.Parse(ue.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
		}
	}
	return err
}
