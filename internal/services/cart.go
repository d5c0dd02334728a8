package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/enrich"
	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// CartService orchestrates the current order: it owns the authoritative
// view of the cart and the title cache used to decorate it. Every mutation
// ends with a refresh so the returned state is always the server's view,
// never a local patch.
type CartService struct {
	cart    gateway.CartClient
	catalog gateway.CatalogClient
	titles  *enrich.TitleCache

	// injectable for tests
	now func() time.Time
}

func NewCartService(cart gateway.CartClient, catalog gateway.CatalogClient) *CartService {
	return &CartService{
		cart:    cart,
		catalog: catalog,
		titles:  enrich.NewTitleCache(catalog),
		now:     time.Now,
	}
}

// Titles exposes the cart's enrichment cache so the history flow can share
// already-resolved titles.
func (s *CartService) Titles() *enrich.TitleCache {
	return s.titles
}

// Load fetches the current order and decorates item titles best-effort.
// On failure the caller gets an empty order alongside the error, so a view
// never renders stale items.
func (s *CartService) Load(ctx context.Context) (*models.Order, error) {
	order, err := s.cart.GetOrder(ctx)
	if err != nil {
		return &models.Order{Items: []models.OrderItem{}}, err
	}

	s.decorate(ctx, order)

	return order, nil
}

// SetQuantity replaces an item's quantity via the order service's upsert.
// Quantities below 1 are clamped to 1. The upsert payload needs the item's
// author reference; when the cart line does not carry one it is resolved
// from the catalog first, and a failed resolution aborts the operation
// before any upsert is issued.
func (s *CartService) SetQuantity(ctx context.Context, req *models.SetQuantityRequest) (*models.Order, error) {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	order, err := s.cart.GetOrder(ctx)
	if err != nil {
		return nil, err
	}

	var item *models.OrderItem

	for i := range order.Items {
		if order.Items[i].CatalogItemID == req.CatalogItemID {
			item = &order.Items[i]
			break
		}
	}

	if item == nil {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	authorGUID, err := s.resolveAuthorReference(ctx, item)
	if err != nil {
		return nil, err
	}

	upsert := gateway.UpsertItem{
		CatalogItemID: item.CatalogItemID,
		Quantity:      quantity,
		AuthorGUID:    authorGUID,
		UnitPrice:     item.UnitPrice,
		LineTotal:     roundMoney(item.UnitPrice * float64(quantity)),
		PurchaseDate:  s.now(),
	}

	if err := s.cart.UpsertItem(ctx, upsert); err != nil {
		return nil, err
	}

	return s.refresh(ctx)
}

// resolveAuthorReference is the first step of the upsert pipeline: use the
// GUID already on the cart line, otherwise look it up in the catalog. A
// purchase cannot proceed without this reference, so an unresolvable one is
// an explicit error, not a silent default.
func (s *CartService) resolveAuthorReference(ctx context.Context, item *models.OrderItem) (string, error) {
	if item.AuthorGUID != "" {
		return item.AuthorGUID, nil
	}

	book, err := s.catalog.GetBook(ctx, item.CatalogItemID)
	if err != nil {
		return "", errors.UpstreamError("Could not resolve the item's author reference").
			WithDetail(fmt.Sprintf("catalog lookup for item %s failed", item.CatalogItemID)).
			WithError(err)
	}

	if book.AuthorGUID == "" {
		return "", errors.UpstreamError("Could not resolve the item's author reference").
			WithDetail(fmt.Sprintf("catalog item %s carries no author reference", item.CatalogItemID))
	}

	return book.AuthorGUID, nil
}

// RemoveItem deletes one line and refreshes. Asking the user to confirm is
// the front end's concern, not this contract's.
func (s *CartService) RemoveItem(ctx context.Context, catalogItemID string) (*models.Order, error) {
	if err := s.cart.DeleteItem(ctx, catalogItemID); err != nil {
		return nil, err
	}

	return s.refresh(ctx)
}

// ClearAll deletes every current line sequentially. Parallel deletes would
// make a partial failure ambiguous, since the server recomputes state after
// each one.
func (s *CartService) ClearAll(ctx context.Context) (*models.Order, error) {
	order, err := s.cart.GetOrder(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.cart.DeleteItem(ctx, item.CatalogItemID); err != nil {
			return nil, err
		}
	}

	return s.refresh(ctx)
}

// Purchase submits buyer details atomically with purchase intent over a
// snapshot of the just-fetched order, keeping the window between last
// mutation and submission as small as one read. Buyer details are assumed
// validated by the checkout flow.
func (s *CartService) Purchase(ctx context.Context, buyer models.BuyerDetails) (*models.Order, error) {
	order, err := s.cart.GetOrder(ctx)
	if err != nil {
		return nil, err
	}

	if len(order.Items) == 0 {
		return nil, errors.BadRequestError("The cart is empty")
	}

	submission := gateway.PurchaseSubmission{
		Buyer: buyer,
		Items: order.Items,
		Total: order.DisplayTotal(),
	}

	if err := s.cart.Purchase(ctx, submission); err != nil {
		return nil, err
	}

	return s.refresh(ctx)
}

// refresh is the one re-fetch path every mutating operation ends in.
func (s *CartService) refresh(ctx context.Context) (*models.Order, error) {
	order, err := s.cart.GetOrder(ctx)
	if err != nil {
		return nil, err
	}

	s.decorate(ctx, order)

	return order, nil
}

func (s *CartService) decorate(ctx context.Context, order *models.Order) {
	ids := make([]string, 0, len(order.Items))
	for i := range order.Items {
		ids = append(ids, order.Items[i].CatalogItemID)
	}

	s.titles.Resolve(ctx, ids)

	for i := range order.Items {
		order.Items[i].Title = s.titles.Title(order.Items[i].CatalogItemID)
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
