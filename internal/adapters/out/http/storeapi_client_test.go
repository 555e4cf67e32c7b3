// internal/adapters/out/http/storeapi_client_test.go
package httpout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/query"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/order"
)

func TestFetchProductsEncodesQueryAndDecodesDjangoShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/", r.URL.Path)
		assert.Equal(t, "category=Toys&stock=inStock", r.URL.RawQuery)
		// numeric _id and decimal-as-string, as DRF serializes them
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id": 7, "productName": "Robot Kit", "price": "129.50", "rating": "4.5", "numReviews": 12, "stockCount": 3, "arrival_status": "newArrival"}]`))
	}))
	defer srv.Close()

	c := NewStoreAPIClient(srv.URL, StaticToken("t"), time.Second)
	products, err := c.FetchProducts(context.Background(), query.Request{
		Path:  "/api/products/",
		Query: "category=Toys&stock=inStock",
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(7), products[0].ID)
	assert.Equal(t, "Robot Kit", products[0].ProductName)
	assert.InDelta(t, 129.50, float64(products[0].Price), 1e-9)
	assert.Equal(t, 3, products[0].StockCount)
}

func TestFetchFacetDefinitionsMapsTagTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tag-types/", r.URL.Path)
		w.Write([]byte(`[{"id": 1, "name": "color", "color": "blue", "tags": [{"id": 10, "name": "red"}, {"id": 11, "name": "navy"}]}]`))
	}))
	defer srv.Close()

	c := NewStoreAPIClient(srv.URL, nil, time.Second)
	defs, err := c.FetchFacetDefinitions(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "color", defs[0].Name)
	assert.Equal(t, "blue", defs[0].ColorToken)
	require.Len(t, defs[0].Values, 2)
	assert.Equal(t, "red", defs[0].Values[0].Value)
}

func TestCreateOrderSendsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	var gotBody order.CreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders/create/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 99}`))
	}))
	defer srv.Close()

	c := NewStoreAPIClient(srv.URL, StaticToken("session-token"), time.Second)
	created, err := c.CreateOrder(context.Background(), order.CreateRequest{
		OrderItems:    []order.CreateItem{{ProductID: 7, Quantity: 2, Price: 129.50}},
		PaymentMethod: order.PaymentMethodCashOnDelivery,
		TotalPrice:    259,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, "Bearer session-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Cash on Delivery", gotBody.PaymentMethod)
	require.Len(t, gotBody.OrderItems, 1)
	assert.Equal(t, int64(7), gotBody.OrderItems[0].ProductID)
}

func TestCreateOrderSurfacesBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "No order items provided"}`))
	}))
	defer srv.Close()

	c := NewStoreAPIClient(srv.URL, StaticToken("t"), time.Second)
	_, err := c.CreateOrder(context.Background(), order.CreateRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "No order items provided", apiErr.Detail())
}

func TestFetchMyOrdersRequiresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id": 1, "status": "processing", "total_price": "42.00"}]`))
	}))
	defer srv.Close()

	c := NewStoreAPIClient(srv.URL, StaticToken("abc"), time.Second)
	summaries, err := c.FetchMyOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].ID)

	noToken := NewStoreAPIClient(srv.URL, nil, time.Second)
	_, err = noToken.FetchMyOrders(context.Background())
	require.Error(t, err)
}

func TestFetchOrderPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/42/", r.URL.Path)
		w.Write([]byte(`{"id": 42, "status": "delivered", "is_delivered": true, "total_price": 250}`))
	}))
	defer srv.Close()

	c := NewStoreAPIClient(srv.URL, StaticToken("t"), time.Second)
	o, err := c.FetchOrder(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID)
	assert.True(t, o.IsDelivered)
	assert.InDelta(t, 250, float64(o.TotalPrice), 1e-9)
}
