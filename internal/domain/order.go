package domain

import "github.com/shopspring/decimal"

// Order is a read-only snapshot of a commerce order.
type Order struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Customer  *Customer  `json:"customer,omitempty"`
	LineItems []LineItem `json:"lineItems"`
}

// LineItem is a single order line. SKU identifies the product in the CRM.
type LineItem struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// DealTitle is the title given to the CRM deal created for the order.
func (o Order) DealTitle() string {
	return "Order " + o.ID
}
