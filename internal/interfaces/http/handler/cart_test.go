package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/urbanthreads/cartservice/internal/application/cart"
	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/infrastructure/checkout"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/middleware"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/router"
)

// memoryCartRepository keeps carts in a map for handler tests
type memoryCartRepository struct {
	mu      sync.Mutex
	carts   map[uuid.UUID]*cart.Cart
	saveErr error
}

func newMemoryCartRepository() *memoryCartRepository {
	return &memoryCartRepository{carts: make(map[uuid.UUID]*cart.Cart)}
}

func (r *memoryCartRepository) Load(ctx context.Context, cartID uuid.UUID) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[cartID]; ok {
		return c, nil
	}
	return cart.NewCartWithID(cartID), nil
}

func (r *memoryCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.ID] = c
	return nil
}

// dropPublisher discards events; analytics flow is covered elsewhere
type dropPublisher struct{}

func (dropPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Warning *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"warning"`
}

func newTestRouter(repo cart.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.VisitorSession())

	cartService := appcart.NewService(repo, dropPublisher{}, nil)
	guard := checkout.NewInMemoryGuard()
	checkoutService := appcart.NewCheckoutService(repo, dropPublisher{}, guard, cart.DefaultPricingConfig(), shared.DefaultCheckoutGuardConfig(), nil)

	r := router.NewRouter(engine)
	r.Register(NewCartHandler(cartService))
	r.Register(NewCheckoutHandler(checkoutService))
	r.Setup()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestCartHandler_AddItem(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/cart/"+cartID.String()+"/items", gin.H{
		"name":       "Cool T-Shirt!!",
		"unit_price": "25.00",
		"image_ref":  "img/tee.jpg",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var resp appcart.MutationResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Changed)
	require.NotNil(t, resp.Event)
	assert.Equal(t, "COOLTSHIRT", resp.Event.ItemID)
	assert.Equal(t, 1, resp.Cart.ItemCount)
	assert.Equal(t, "25.00", resp.Cart.Subtotal)
}

func TestCartHandler_AddItemRejectsBadPrice(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/cart/"+cartID.String()+"/items", gin.H{
		"name":       "Classic Tee",
		"unit_price": "twenty-five",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_INVALID_INPUT", env.Error.Code)
}

func TestCartHandler_AddItemRejectsMissingFields(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/cart/"+cartID.String()+"/items", gin.H{
		"unit_price": "25.00",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_INVALID_JSON", env.Error.Code)
}

func TestCartHandler_RejectsMalformedCartID(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())

	w, env := doJSON(t, engine, http.MethodGet, "/api/v1/cart/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_BAD_REQUEST", env.Error.Code)
}

func TestCartHandler_RemoveMissingItemIsHarmless(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()

	w, env := doJSON(t, engine, http.MethodDelete, "/api/v1/cart/"+cartID.String()+"/items/Ghost", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var resp appcart.MutationResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.False(t, resp.Changed)
	assert.Nil(t, resp.Event)
}

func TestCartHandler_QuantityFlow(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()
	base := "/api/v1/cart/" + cartID.String()

	_, _ = doJSON(t, engine, http.MethodPost, base+"/items", gin.H{
		"name": "Classic Tee", "unit_price": "25.00",
	})

	w, env := doJSON(t, engine, http.MethodPatch, base+"/items/Classic%20Tee/quantity", gin.H{"delta": 2})
	require.Equal(t, http.StatusOK, w.Code)

	var resp appcart.MutationResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 3, resp.Cart.ItemCount)

	// Dropping to zero removes the whole line
	w, env = doJSON(t, engine, http.MethodPatch, base+"/items/Classic%20Tee/quantity", gin.H{"delta": -3})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 0, resp.Cart.ItemCount)
	require.NotNil(t, resp.Event)
	assert.Equal(t, cart.EventTypeItemRemoved, resp.Event.Kind)
}

func TestCartHandler_PersistenceFailureBecomesWarning(t *testing.T) {
	repo := newMemoryCartRepository()
	repo.saveErr = assert.AnError
	engine := newTestRouter(repo)
	cartID := uuid.New()

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/cart/"+cartID.String()+"/items", gin.H{
		"name": "Classic Tee", "unit_price": "25.00",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Warning)
	assert.Equal(t, "ERR_PERSISTENCE_FAILURE", env.Warning.Code)

	var resp appcart.MutationResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Cart.ItemCount)
}

func TestCheckoutHandler_FinalizePurchase(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()
	base := "/api/v1/cart/" + cartID.String()

	_, _ = doJSON(t, engine, http.MethodPost, base+"/items", gin.H{
		"name": "Summer Dress", "unit_price": "55.00",
	})

	w, env := doJSON(t, engine, http.MethodPost, base+"/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var resp appcart.PurchaseResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "55.00", resp.ItemsSubtotal)
	assert.Equal(t, "5.50", resp.Discount)
	assert.Equal(t, "49.50", resp.DiscountedSubtotal)
	assert.Equal(t, "3.47", resp.Tax)
	assert.Equal(t, "3.00", resp.Shipping)
	assert.Equal(t, "55.97", resp.Total)
	assert.NotEmpty(t, resp.TransactionID)

	// The purchase cleared the cart
	w, env = doJSON(t, engine, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot appcart.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	assert.Equal(t, 0, snapshot.ItemCount)
}

func TestCheckoutHandler_EmptyCartIsRejected(t *testing.T) {
	engine := newTestRouter(newMemoryCartRepository())
	cartID := uuid.New()

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/cart/"+cartID.String()+"/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_NO_ITEMS", env.Error.Code)
}
