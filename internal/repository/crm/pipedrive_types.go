package crm

import "encoding/json"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type searchData struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ResultScore float64   `json:"result_score"`
	Item        searchHit `json:"item"`
}

type searchHit struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Code   string   `json:"code"`
	Emails []string `json:"emails"`
}

type personRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type personResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productPrice struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

type productRequest struct {
	Name   string         `json:"name"`
	Code   string         `json:"code"`
	Prices []productPrice `json:"prices"`
}

type productResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type dealRequest struct {
	Title    string `json:"title"`
	PersonID int64  `json:"person_id"`
}

// person_id comes back as an object, so only id and title are read.
type dealResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type dealProductRequest struct {
	ProductID int64   `json:"product_id"`
	ItemPrice float64 `json:"item_price"`
	Quantity  int     `json:"quantity"`
}

type dealProductResponse struct {
	ID        int64 `json:"id"`
	DealID    int64 `json:"deal_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
