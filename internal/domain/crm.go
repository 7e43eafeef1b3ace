package domain

import "github.com/shopspring/decimal"

// Contact is a CRM person resolved from an order customer.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Deal is a CRM deal owned by a contact.
type Deal struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	PersonID int64  `json:"personId"`
}

// Attachment links a product to a deal with a quantity.
type Attachment struct {
	ID        int64           `json:"id"`
	DealID    int64           `json:"dealId"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	ItemPrice decimal.Decimal `json:"itemPrice"`
}
