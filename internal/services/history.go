package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/javiersolis/bookstore-admin-gateway/internal/enrich"
	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	"github.com/javiersolis/bookstore-admin-gateway/internal/receipt"
)

// HistoryService owns the purchase-history flow: the list, lazy per-order
// detail expansion with title/author enrichment, and receipts. It shares
// the title cache with the cart flow and builds its author index lazily on
// first need.
type HistoryService struct {
	cart    gateway.CartClient
	titles  *enrich.TitleCache
	authors *enrich.AuthorIndex
}

func NewHistoryService(cart gateway.CartClient, titles *enrich.TitleCache, authors *enrich.AuthorIndex) *HistoryService {
	return &HistoryService{cart: cart, titles: titles, authors: authors}
}

// FetchHistory returns past purchases, most recent first. The ordering is
// this gateway's contract; the server does not provide it.
func (s *HistoryService) FetchHistory(ctx context.Context) ([]models.PurchaseRecord, error) {
	records, err := s.cart.History(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records, nil
}

// ExpandDetail fetches one purchase's full record and enriches each item
// with its title and author display name. Enrichment failures leave the
// raw identifiers in place and never fail the expansion.
func (s *HistoryService) ExpandDetail(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error) {
	record, err := s.cart.PurchaseDetail(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	s.enrichItems(ctx, record)

	return record, nil
}

// SearchByID looks one purchase up by its numeric id. A missing purchase is
// a neutral no-results answer, not a failure banner.
func (s *HistoryService) SearchByID(ctx context.Context, rawID string) (*models.PurchaseRecord, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.ValidationError("Enter a valid purchase id")
	}

	record, err := s.cart.HistoryByID(ctx, id)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return nil, errors.NotFoundError("Purchase not found")
		}

		return nil, err
	}

	// Expand eagerly so a search result arrives ready to display; fall back
	// to the summary if the detail fetch fails.
	if detail, detailErr := s.ExpandDetail(ctx, record.PurchaseID); detailErr == nil {
		return detail, nil
	}

	return record, nil
}

// ReceiptResult is either the server-rendered PDF or the client-rendered
// printable HTML fallback.
type ReceiptResult struct {
	ContentType string
	Body        []byte
	Filename    string
}

// Receipt fetches the server-generated document for a purchase, and on any
// failure builds a standalone printable HTML document from the enriched
// record instead. The fallback is a hard requirement: the remote document
// endpoint is not guaranteed to exist.
func (s *HistoryService) Receipt(ctx context.Context, purchaseID int64) (*ReceiptResult, error) {
	filename := "compra_" + strconv.FormatInt(purchaseID, 10)

	if pdf, err := s.cart.ReceiptPDF(ctx, purchaseID); err == nil && len(pdf) > 0 {
		return &ReceiptResult{
			ContentType: "application/pdf",
			Body:        pdf,
			Filename:    filename + ".pdf",
		}, nil
	}

	record, err := s.ExpandDetail(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	html, err := receipt.Render(record)
	if err != nil {
		return nil, errors.InternalError("Failed to render the receipt").WithError(err)
	}

	return &ReceiptResult{
		ContentType: "text/html; charset=utf-8",
		Body:        html,
		Filename:    filename + ".html",
	}, nil
}

func (s *HistoryService) enrichItems(ctx context.Context, record *models.PurchaseRecord) {
	ids := make([]string, 0, len(record.Items))
	for i := range record.Items {
		ids = append(ids, record.Items[i].CatalogItemID)
	}

	s.titles.Resolve(ctx, ids)

	for i := range record.Items {
		item := &record.Items[i]
		item.Title = s.titles.Title(item.CatalogItemID)

		if item.AuthorGUID != "" {
			item.AuthorName = s.authors.DisplayName(ctx, item.AuthorGUID)
		}
	}
}
