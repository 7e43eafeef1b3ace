package order

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"commerce-crm-sync/internal/domain"
)

type shopifyOrderEnvelope struct {
	Order *shopifyOrder `json:"order"`
}

type shopifyOrder struct {
	ID        json.Number       `json:"id"`
	Name      string            `json:"name"`
	Customer  *shopifyCustomer  `json:"customer"`
	LineItems []shopifyLineItem `json:"line_items"`
}

type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type shopifyLineItem struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// shopifyErrorBody covers both the string and the field-map forms of "errors".
type shopifyErrorBody struct {
	Errors json.RawMessage `json:"errors"`
}

func (b shopifyErrorBody) message() string {
	if len(b.Errors) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Errors, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(b.Errors))
}

func (o shopifyOrder) toDomain() domain.Order {
	out := domain.Order{
		ID:        o.ID.String(),
		Name:      o.Name,
		LineItems: make([]domain.LineItem, 0, len(o.LineItems)),
	}
	if o.Customer != nil {
		out.Customer = &domain.Customer{
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Email:     strings.TrimSpace(o.Customer.Email),
			Phone:     o.Customer.Phone,
		}
	}
	for _, li := range o.LineItems {
		name := li.Name
		if name == "" {
			name = li.Title
		}
		out.LineItems = append(out.LineItems, domain.LineItem{
			SKU:      li.SKU,
			Name:     name,
			Price:    li.Price,
			Quantity: li.Quantity,
		})
	}
	return out
}
