package gateway

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// AuthorClient wraps the remote author directory.
type AuthorClient interface {
	ListAuthors(ctx context.Context) ([]models.Author, error)
	GetAuthor(ctx context.Context, id string) (*models.Author, error)
	SearchByName(ctx context.Context, name string) ([]models.Author, error)
	CreateAuthor(ctx context.Context, author *models.Author) error
}

type authorClient struct {
	*client
}

func NewAuthorClient(baseURL string, timeout time.Duration) AuthorClient {
	return &authorClient{client: newClient(baseURL, "authors", timeout)}
}

// The directory has grown three spellings of the author identifier; GUID
// resolution tries them in order of preference.
type authorWire struct {
	AutorLibroID    string `json:"autorLibroId"`
	AutorLibroGuid  string `json:"autorLibroGuid"`
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	NombreCompleto  string `json:"nombreCompleto"`
	FechaNacimiento string `json:"fechaNacimiento"`
}

func (w *authorWire) toModel() models.Author {
	guid := w.AutorLibroGuid
	if guid == "" {
		guid = w.ID
	}
	if guid == "" {
		guid = w.AutorLibroID
	}

	author := models.Author{
		ID:        w.AutorLibroID,
		GUID:      guid,
		FirstName: w.Nombre,
		LastName:  w.Apellido,
		FullName:  w.NombreCompleto,
	}

	if t := parseUpstreamTime(w.FechaNacimiento); !t.IsZero() {
		author.BirthDate = &t
	}

	return author
}

func (c *authorClient) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var wires []authorWire
	if err := c.doJSON(ctx, http.MethodGet, "", nil, &wires); err != nil {
		return nil, err
	}

	authors := make([]models.Author, 0, len(wires))
	for i := range wires {
		authors = append(authors, wires[i].toModel())
	}

	return authors, nil
}

func (c *authorClient) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	var wire authorWire
	if err := c.doJSON(ctx, http.MethodGet, "/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}

	author := wire.toModel()

	return &author, nil
}

func (c *authorClient) SearchByName(ctx context.Context, name string) ([]models.Author, error) {
	var wires []authorWire

	path := "/Nombre?nombre=" + url.QueryEscape(name)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wires); err != nil {
		return nil, err
	}

	authors := make([]models.Author, 0, len(wires))
	for i := range wires {
		authors = append(authors, wires[i].toModel())
	}

	return authors, nil
}

func (c *authorClient) CreateAuthor(ctx context.Context, author *models.Author) error {
	payload := map[string]any{
		"nombre":   author.FirstName,
		"apellido": author.LastName,
	}

	if author.BirthDate != nil {
		payload["fechaNacimiento"] = author.BirthDate.UTC().Format(time.RFC3339)
	}

	return c.doJSON(ctx, http.MethodPost, "", payload, nil)
}
