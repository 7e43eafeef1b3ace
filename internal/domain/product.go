package domain

// Product is a CRM product. Code holds the commerce SKU.
type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
