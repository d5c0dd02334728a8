package models

import "time"

type PurchaseItem struct {
	CatalogItemID string     `json:"catalog_item_id"`
	Title         string     `json:"title,omitempty"`
	AuthorGUID    string     `json:"author_guid,omitempty"`
	AuthorName    string     `json:"author_name,omitempty"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	LineTotal     float64    `json:"line_total"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
}

// PurchaseRecord is a read-only past order. Title and author name fields are
// filled in client-side after the detail fetch; they are never written back
// to the order service.
type PurchaseRecord struct {
	PurchaseID int64          `json:"purchase_id"`
	Date       time.Time      `json:"date"`
	Total      float64        `json:"total"`
	FullName   string         `json:"full_name,omitempty"`
	Email      string         `json:"email,omitempty"`
	Address    string         `json:"address,omitempty"`
	RFC        string         `json:"rfc,omitempty"`
	CURP       string         `json:"curp,omitempty"`
	Items      []PurchaseItem `json:"items,omitempty"`
}

// DisplayTotal mirrors Order.DisplayTotal for historical records.
func (p *PurchaseRecord) DisplayTotal() float64 {
	if p.Total > 0 {
		return p.Total
	}

	var sum float64
	for _, item := range p.Items {
		sum += item.LineTotal
	}

	return sum
}
