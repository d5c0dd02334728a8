package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	"github.com/javiersolis/bookstore-admin-gateway/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(token string) (context.Context, *session.Session) {
	sess := session.New(token)

	return session.NewContext(context.Background(), sess), sess
}

func TestBearerToken(t *testing.T) {
	t.Run("Attached From Session", func(t *testing.T) {
		// Arrange
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"total": 0, "items": []any{}})
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		_, err := client.GetOrder(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("Omitted For Anonymous Context", func(t *testing.T) {
		// Arrange
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"token": "t"})
		}))
		defer server.Close()

		client := gateway.NewIdentityClient(server.URL, 5*time.Second)

		// Act
		_, err := client.Login(context.Background(), &models.LoginRequest{Username: "u", Password: "p"})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestErrorClassification(t *testing.T) {
	t.Run("401 Invalidates The Session", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, sess := authedContext("tok-123")

		// Act
		_, err := client.GetOrder(ctx)

		// Assert
		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Session expired. Please sign in again.", appErr.Message)
		assert.True(t, sess.Expired())
		assert.Empty(t, sess.Token())
	})

	t.Run("404 Maps To NotFound", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, sess := authedContext("tok-123")

		// Act
		_, err := client.HistoryByID(ctx, 9)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.False(t, sess.Expired())
	})

	t.Run("500 With Title Body", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"title": "Algo salió mal"})
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		_, err := client.GetOrder(ctx)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
		assert.Contains(t, appErr.Detail, "Algo salió mal")
	})

	t.Run("400 With Mensaje Body", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"mensaje": "Datos inválidos"})
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		_, err := client.GetOrder(ctx)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Detail, "Datos inválidos")
	})

	t.Run("500 With JSON String Body", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode("boom")
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		_, err := client.GetOrder(ctx)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Detail, "boom")
	})

	t.Run("Connection Failure Maps To Upstream", func(t *testing.T) {
		// Arrange: a closed server guarantees a transport error.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := gateway.NewCartClient(server.URL, time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		_, err := client.GetOrder(ctx)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
	})
}

func TestCartClientWireFormat(t *testing.T) {
	t.Run("Upsert Sends Zone-Less Timestamp", func(t *testing.T) {
		// Arrange
		var gotPath string
		var gotPayload map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			json.NewDecoder(r.Body).Decode(&gotPayload)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		err := client.UpsertItem(ctx, gateway.UpsertItem{
			CatalogItemID: "item-1",
			Quantity:      3,
			AuthorGUID:    "guid-1",
			UnitPrice:     12.5,
			LineTotal:     37.5,
			PurchaseDate:  time.Date(2024, 3, 1, 13, 45, 30, 0, time.Local),
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/agregar", gotPath)
		assert.Equal(t, "item-1", gotPayload["libreriaMaterialId"])
		assert.Equal(t, float64(3), gotPayload["cantidad"])
		assert.Equal(t, "guid-1", gotPayload["autorLibroGuid"])
		assert.Equal(t, "2024-03-01T13:45:30", gotPayload["fechaCompra"])
	})

	t.Run("Purchase Sends Buyer Details And Empty Strings", func(t *testing.T) {
		// Arrange
		var gotPayload map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotPayload)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		err := client.Purchase(ctx, gateway.PurchaseSubmission{
			Buyer: models.BuyerDetails{
				FullName: "Ana Pérez",
				Email:    "ana@example.com",
				Address:  "Calle 1",
				IDType:   models.IDTypeRFC,
				RFC:      "ABCD800101XYZ",
			},
			Items: []models.OrderItem{{CatalogItemID: "a", Quantity: 1, UnitPrice: 10, LineTotal: 10}},
			Total: 10,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Ana Pérez", gotPayload["nombreCompleto"])
		assert.Equal(t, "Calle 1", gotPayload["direccion"])
		assert.Equal(t, "ABCD800101XYZ", gotPayload["rfc"])
		curp, present := gotPayload["curp"]
		assert.True(t, present)
		assert.Equal(t, "", curp)
	})

	t.Run("Order Decoded From Spanish Fields", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"total": 25.5,
				"items": []map[string]any{{
					"libreriaMaterialId": "item-1",
					"cantidad":           2,
					"precioUnitario":     12.75,
					"precioTotal":        25.5,
					"autorLibroGuid":     "guid-1",
					"fechaCompra":        "2024-03-01T13:45:30",
				}},
			})
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		order, err := client.GetOrder(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 25.5, order.Total)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "item-1", order.Items[0].CatalogItemID)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.Equal(t, "guid-1", order.Items[0].AuthorGUID)
		require.NotNil(t, order.Items[0].PurchaseDate)
	})

	t.Run("Delete Targets The Item Path", func(t *testing.T) {
		// Arrange
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := gateway.NewCartClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		err := client.DeleteItem(ctx, "item-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/eliminar/item-1", gotPath)
	})
}

func TestAuthorClientWireFormat(t *testing.T) {
	t.Run("Guid Resolution Prefers autorLibroGuid", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]any{
				{"autorLibroId": "1", "autorLibroGuid": "guid-a", "id": "id-a", "nombre": "A", "apellido": "B"},
				{"autorLibroId": "2", "id": "id-b", "nombre": "C", "apellido": "D"},
				{"autorLibroId": "3", "nombre": "E", "apellido": "F"},
			})
		}))
		defer server.Close()

		client := gateway.NewAuthorClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		authors, err := client.ListAuthors(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, authors, 3)
		assert.Equal(t, "guid-a", authors[0].GUID)
		assert.Equal(t, "id-b", authors[1].GUID)
		assert.Equal(t, "3", authors[2].GUID)
	})

	t.Run("Search Uses The Nombre Route", func(t *testing.T) {
		// Arrange
		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			json.NewEncoder(w).Encode([]map[string]any{})
		}))
		defer server.Close()

		client := gateway.NewAuthorClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		_, err := client.SearchByName(ctx, "García Márquez")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, gotURL, "/Nombre?nombre=")
	})
}

func TestIdentityClientWireFormat(t *testing.T) {
	t.Run("Login Sends Capitalized Fields", func(t *testing.T) {
		// Arrange
		var gotPayload map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotPayload)
			json.NewEncoder(w).Encode(map[string]any{
				"token":   "tok-xyz",
				"usuario": map[string]string{"Nombre": "ana"},
			})
		}))
		defer server.Close()

		client := gateway.NewIdentityClient(server.URL, 5*time.Second)

		// Act
		resp, err := client.Login(context.Background(), &models.LoginRequest{Username: "ana", Password: "secret"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ana", gotPayload["Nombre"])
		assert.Equal(t, "secret", gotPayload["Contraseña"])
		assert.Equal(t, "tok-xyz", resp.Token)
		assert.Equal(t, "ana", resp.Username)
		assert.True(t, resp.Success)
	})

	t.Run("Recovery Answer Uses Lowercase respuesta", func(t *testing.T) {
		// Arrange
		var gotPayload map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotPayload)
			json.NewEncoder(w).Encode(map[string]any{"token": "tok"})
		}))
		defer server.Close()

		client := gateway.NewIdentityClient(server.URL, 5*time.Second)

		// Act
		_, err := client.RecoveryAnswer(context.Background(), &models.RecoveryAnswerRequest{Username: "ana", Answer: "azul"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "azul", gotPayload["respuesta"])
		assert.Equal(t, "ana", gotPayload["Nombre"])
	})
}

func TestCatalogClientWireFormat(t *testing.T) {
	t.Run("Books Decoded From Spanish Fields", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]any{{
				"libreriaMaterialId": "item-1",
				"titulo":             "Ficciones",
				"fechaPublicacion":   "1944-01-01T00:00:00",
				"autorLibro":         "guid-1",
				"precio":             19.99,
			}})
		}))
		defer server.Close()

		client := gateway.NewCatalogClient(server.URL, 5*time.Second)
		ctx, _ := authedContext("tok-123")

		// Act
		books, err := client.ListBooks(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "item-1", books[0].ID)
		assert.Equal(t, "Ficciones", books[0].Title)
		assert.Equal(t, "guid-1", books[0].AuthorGUID)
		assert.Equal(t, 19.99, books[0].UnitPrice)
		assert.Equal(t, 1944, books[0].PublicationDate.Year())
	})
}
