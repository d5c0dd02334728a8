package models

import "time"

type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	PublicationDate time.Time `json:"publication_date"`
	AuthorGUID      string    `json:"author_guid"`
	UnitPrice       float64   `json:"unit_price,omitempty"`
}

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required"`
	PublicationDate string `json:"publication_date" validate:"required"`
	AuthorGUID      string `json:"author_guid" validate:"required"`
}
