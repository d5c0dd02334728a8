package gateway

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// CatalogClient wraps the remote book catalog service.
type CatalogClient interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	CreateBook(ctx context.Context, book *models.Book) error
}

type catalogClient struct {
	*client
}

func NewCatalogClient(baseURL string, timeout time.Duration) CatalogClient {
	return &catalogClient{client: newClient(baseURL, "catalog", timeout)}
}

// bookWire is the catalog service's own field naming. The gateway is the
// only place that sees it; everything above works with models.Book.
type bookWire struct {
	ID               string  `json:"libreriaMaterialId"`
	Titulo           string  `json:"titulo"`
	FechaPublicacion string  `json:"fechaPublicacion"`
	AutorLibro       string  `json:"autorLibro"`
	Precio           float64 `json:"precio"`
}

func (w *bookWire) toModel() models.Book {
	return models.Book{
		ID:              w.ID,
		Title:           w.Titulo,
		PublicationDate: parseUpstreamTime(w.FechaPublicacion),
		AuthorGUID:      w.AutorLibro,
		UnitPrice:       w.Precio,
	}
}

func (c *catalogClient) ListBooks(ctx context.Context) ([]models.Book, error) {
	var wires []bookWire
	if err := c.doJSON(ctx, http.MethodGet, "", nil, &wires); err != nil {
		return nil, err
	}

	books := make([]models.Book, 0, len(wires))
	for i := range wires {
		books = append(books, wires[i].toModel())
	}

	return books, nil
}

func (c *catalogClient) GetBook(ctx context.Context, id string) (*models.Book, error) {
	var wire bookWire
	if err := c.doJSON(ctx, http.MethodGet, "/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}

	book := wire.toModel()

	return &book, nil
}

func (c *catalogClient) CreateBook(ctx context.Context, book *models.Book) error {
	payload := map[string]any{
		"titulo":           book.Title,
		"fechaPublicacion": book.PublicationDate.UTC().Format(time.RFC3339),
		"autorLibro":       book.AuthorGUID,
	}

	return c.doJSON(ctx, http.MethodPost, "", payload, nil)
}

// parseUpstreamTime tolerates the two timestamp shapes the backends emit:
// RFC3339 and the zone-less local format.
func parseUpstreamTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}

	if t, err := time.Parse(TimestampLayout, value); err == nil {
		return t
	}

	return time.Time{}
}
