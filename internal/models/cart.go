package models

import "time"

// OrderItem is one cart line. AuthorGUID may be empty on lines the order
// service returns; it has to be resolved from the catalog before an upsert
// can be built.
type OrderItem struct {
	CatalogItemID string     `json:"catalog_item_id"`
	Title         string     `json:"title,omitempty"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	LineTotal     float64    `json:"line_total"`
	AuthorGUID    string     `json:"author_guid,omitempty"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
}

type Order struct {
	Total float64     `json:"total"`
	Items []OrderItem `json:"items"`
}

// DisplayTotal prefers the server-reported total when it is positive and
// falls back to summing line totals otherwise. Some backend responses omit
// or zero out the aggregate, and a cart with items must never show 0.
func (o *Order) DisplayTotal() float64 {
	if o.Total > 0 {
		return o.Total
	}

	var sum float64
	for _, item := range o.Items {
		sum += item.LineTotal
	}

	return sum
}

type SetQuantityRequest struct {
	CatalogItemID string `json:"catalog_item_id" validate:"required"`
	Quantity      int    `json:"quantity"`
}
