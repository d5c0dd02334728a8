package gateway

import (
	"context"

	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	"github.com/stretchr/testify/mock"
)

// Shared test doubles for the gateway interfaces, used by the service tests.

type MockCatalogClient struct {
	mock.Mock
}

func NewMockCatalogClient() *MockCatalogClient {
	return &MockCatalogClient{}
}

func (m *MockCatalogClient) ListBooks(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if books, ok := args.Get(0).([]models.Book); ok {
		return books, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogClient) GetBook(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if book, ok := args.Get(0).(*models.Book); ok {
		return book, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogClient) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)

	return args.Error(0)
}

type MockAuthorClient struct {
	mock.Mock
}

func NewMockAuthorClient() *MockAuthorClient {
	return &MockAuthorClient{}
}

func (m *MockAuthorClient) ListAuthors(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	if authors, ok := args.Get(0).([]models.Author); ok {
		return authors, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthorClient) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	args := m.Called(ctx, id)
	if author, ok := args.Get(0).(*models.Author); ok {
		return author, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthorClient) SearchByName(ctx context.Context, name string) ([]models.Author, error) {
	args := m.Called(ctx, name)
	if authors, ok := args.Get(0).([]models.Author); ok {
		return authors, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthorClient) CreateAuthor(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)

	return args.Error(0)
}

type MockCartClient struct {
	mock.Mock
}

func NewMockCartClient() *MockCartClient {
	return &MockCartClient{}
}

func (m *MockCartClient) GetOrder(ctx context.Context) (*models.Order, error) {
	args := m.Called(ctx)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartClient) UpsertItem(ctx context.Context, item UpsertItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *MockCartClient) DeleteItem(ctx context.Context, catalogItemID string) error {
	args := m.Called(ctx, catalogItemID)

	return args.Error(0)
}

func (m *MockCartClient) Purchase(ctx context.Context, submission PurchaseSubmission) error {
	args := m.Called(ctx, submission)

	return args.Error(0)
}

func (m *MockCartClient) History(ctx context.Context) ([]models.PurchaseRecord, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]models.PurchaseRecord); ok {
		return records, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartClient) HistoryByID(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error) {
	args := m.Called(ctx, purchaseID)
	if record, ok := args.Get(0).(*models.PurchaseRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartClient) PurchaseDetail(ctx context.Context, purchaseID int64) (*models.PurchaseRecord, error) {
	args := m.Called(ctx, purchaseID)
	if record, ok := args.Get(0).(*models.PurchaseRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartClient) ReceiptPDF(ctx context.Context, purchaseID int64) ([]byte, error) {
	args := m.Called(ctx, purchaseID)
	if pdf, ok := args.Get(0).([]byte); ok {
		return pdf, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockIdentityClient struct {
	mock.Mock
}

func NewMockIdentityClient() *MockIdentityClient {
	return &MockIdentityClient{}
}

func (m *MockIdentityClient) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.AuthResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityClient) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.AuthResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityClient) RecoveryQuestion(ctx context.Context, username string) (*models.RecoveryQuestionResponse, error) {
	args := m.Called(ctx, username)
	if resp, ok := args.Get(0).(*models.RecoveryQuestionResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityClient) RecoveryAnswer(ctx context.Context, req *models.RecoveryAnswerRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.AuthResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}
