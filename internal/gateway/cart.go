package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// UpsertItem is the input for the order service's create-or-replace call.
// Same catalog item id replaces quantity and price rather than incrementing.
type UpsertItem struct {
	CatalogItemID string
	Quantity      int
	AuthorGUID    string
	UnitPrice     float64
	LineTotal     float64
	PurchaseDate  time.Time
}

// PurchaseSubmission carries buyer details atomically with purchase intent,
// plus a snapshot of the items and total being bought.
type PurchaseSubmission struct {
	Buyer models.BuyerDetails
	Items []models.OrderItem
	Total float64
}

// CartClient wraps the remote cart/order service.
type CartClient interface {
	GetOrder(ctx context.Context) (*models.Order, error)
	UpsertItem(ctx context.Context, item UpsertItem) error
	DeleteItem(ctx context.Context, catalogItemID string) error
	Purchase(ctx context.Context, submission PurchaseSubmission) error
	History(ctx context.Context) ([]models.PurchaseRecord, error)
	HistoryByID(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error)
	PurchaseDetail(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error)
	ReceiptPDF(ctx context.Context, purchaseID int64) ([]byte, error)
}

type cartClient struct {
	*client
}

func NewCartClient(baseURL string, timeout time.Duration) CartClient {
	return &cartClient{client: newClient(baseURL, "cart", timeout)}
}

type orderItemWire struct {
	LibreriaMaterialID string  `json:"libreriaMaterialId"`
	Cantidad           int     `json:"cantidad"`
	PrecioUnitario     float64 `json:"precioUnitario"`
	PrecioTotal        float64 `json:"precioTotal"`
	AutorLibroGuid     string  `json:"autorLibroGuid,omitempty"`
	FechaCompra        string  `json:"fechaCompra,omitempty"`
}

func (w *orderItemWire) toModel() models.OrderItem {
	item := models.OrderItem{
		CatalogItemID: w.LibreriaMaterialID,
		Quantity:      w.Cantidad,
		UnitPrice:     w.PrecioUnitario,
		LineTotal:     w.PrecioTotal,
		AuthorGUID:    w.AutorLibroGuid,
	}

	if t := parseUpstreamTime(w.FechaCompra); !t.IsZero() {
		item.PurchaseDate = &t
	}

	return item
}

func orderItemToWire(item models.OrderItem) orderItemWire {
	wire := orderItemWire{
		LibreriaMaterialID: item.CatalogItemID,
		Cantidad:           item.Quantity,
		PrecioUnitario:     item.UnitPrice,
		PrecioTotal:        item.LineTotal,
		AutorLibroGuid:     item.AuthorGUID,
	}

	if item.PurchaseDate != nil {
		wire.FechaCompra = item.PurchaseDate.Format(TimestampLayout)
	}

	return wire
}

type orderWire struct {
	Total float64         `json:"total"`
	Items []orderItemWire `json:"items"`
}

func (c *cartClient) GetOrder(ctx context.Context) (*models.Order, error) {
	var wire orderWire
	if err := c.doJSON(ctx, http.MethodGet, "/orden", nil, &wire); err != nil {
		return nil, err
	}

	order := &models.Order{
		Total: wire.Total,
		Items: make([]models.OrderItem, 0, len(wire.Items)),
	}

	for i := range wire.Items {
		order.Items = append(order.Items, wire.Items[i].toModel())
	}

	return order, nil
}

func (c *cartClient) UpsertItem(ctx context.Context, item UpsertItem) error {
	payload := map[string]any{
		"libreriaMaterialId": item.CatalogItemID,
		"cantidad":           item.Quantity,
		"autorLibroGuid":     item.AuthorGUID,
		"precioUnitario":     item.UnitPrice,
		"precioTotal":        item.LineTotal,
		"fechaCompra":        item.PurchaseDate.Format(TimestampLayout),
	}

	return c.doJSON(ctx, http.MethodPost, "/agregar", payload, nil)
}

func (c *cartClient) DeleteItem(ctx context.Context, catalogItemID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/eliminar/"+url.PathEscape(catalogItemID), nil, nil)
}

func (c *cartClient) Purchase(ctx context.Context, submission PurchaseSubmission) error {
	items := make([]orderItemWire, 0, len(submission.Items))
	for _, item := range submission.Items {
		items = append(items, orderItemToWire(item))
	}

	// The non-selected identity field goes out as an empty string, matching
	// the contract the order service already accepts.
	payload := map[string]any{
		"nombreCompleto": submission.Buyer.FullName,
		"email":          submission.Buyer.Email,
		"direccion":      submission.Buyer.Address,
		"rfc":            submission.Buyer.RFC,
		"curp":           submission.Buyer.CURP,
		"items":          items,
		"total":          submission.Total,
	}

	return c.doJSON(ctx, http.MethodPost, "/comprar", payload, nil)
}

type purchaseWire struct {
	CompraID       int64           `json:"compraId"`
	Fecha          string          `json:"fecha"`
	Total          float64         `json:"total"`
	NombreCompleto string          `json:"nombreCompleto"`
	Email          string          `json:"email"`
	Direccion      string          `json:"direccion"`
	RFC            string          `json:"rfc"`
	CURP           string          `json:"curp"`
	Items          []orderItemWire `json:"items"`
}

func (w *purchaseWire) toModel() models.PurchaseRecord {
	record := models.PurchaseRecord{
		PurchaseID: w.CompraID,
		Date:       parseUpstreamTime(w.Fecha),
		Total:      w.Total,
		FullName:   w.NombreCompleto,
		Email:      w.Email,
		Address:    w.Direccion,
		RFC:        w.RFC,
		CURP:       w.CURP,
	}

	for i := range w.Items {
		item := w.Items[i].toModel()
		record.Items = append(record.Items, models.PurchaseItem{
			CatalogItemID: item.CatalogItemID,
			AuthorGUID:    item.AuthorGUID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     item.LineTotal,
			PurchaseDate:  item.PurchaseDate,
		})
	}

	return record
}

func (c *cartClient) History(ctx context.Context) ([]models.PurchaseRecord, error) {
	var wires []purchaseWire
	if err := c.doJSON(ctx, http.MethodGet, "/historial", nil, &wires); err != nil {
		return nil, err
	}

	records := make([]models.PurchaseRecord, 0, len(wires))
	for i := range wires {
		records = append(records, wires[i].toModel())
	}

	return records, nil
}

func (c *cartClient) HistoryByID(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error) {
	var wire purchaseWire
	path := "/historial/" + strconv.FormatInt(purchaseID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	record := wire.toModel()

	return &record, nil
}

func (c *cartClient) PurchaseDetail(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error) {
	var wire purchaseWire
	path := "/orden/" + strconv.FormatInt(purchaseID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	record := wire.toModel()

	return &record, nil
}

func (c *cartClient) ReceiptPDF(ctx context.Context, purchaseID int64) ([]byte, error) {
	path := "/orden/" + strconv.FormatInt(purchaseID, 10) + "/pdf"

	return c.do(ctx, http.MethodGet, path, nil)
}
