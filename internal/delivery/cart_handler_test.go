package delivery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront_client/internal/delivery"
	"storefront_client/internal/domain"
	"storefront_client/internal/middleware"
	"storefront_client/internal/session"
	"storefront_client/internal/usecase"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// fakeSynchronizer is the view-facing contract under test; the handler only
// translates between HTTP and the synchronizer.
type fakeSynchronizer struct {
	cart    *domain.Cart
	lastErr error
	added   []int
}

func (f *fakeSynchronizer) LoadCart(ctx context.Context, userID int) (*domain.Cart, error) {
	return f.cart, f.lastErr
}

func (f *fakeSynchronizer) AddItem(ctx context.Context, userID, productID, quantity int) error {
	f.added = append(f.added, productID)
	return f.lastErr
}

func (f *fakeSynchronizer) UpdateItemQuantity(ctx context.Context, itemID, quantity int) error {
	return f.lastErr
}

func (f *fakeSynchronizer) RemoveItem(ctx context.Context, itemID int) error { return f.lastErr }
func (f *fakeSynchronizer) ClearCart(ctx context.Context) error              { return f.lastErr }
func (f *fakeSynchronizer) Cart() *domain.Cart                               { return f.cart }
func (f *fakeSynchronizer) Totals() domain.Totals                            { return domain.DeriveTotals(f.cart) }
func (f *fakeSynchronizer) Pending(productID int) bool                       { return false }

var _ usecase.CartSynchronizer = (*fakeSynchronizer)(nil)

func setupRouter(sync usecase.CartSynchronizer, sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("")
	group.Use(middleware.SessionRequired(sess, quietLogger()))
	group.Use(middleware.CustomerRequired(sess, quietLogger()))
	delivery.NewCartHandler(sync, sess, quietLogger()).RegisterRoutes(group)
	return router
}

func signedInSession(role domain.Role) *session.Session {
	sess := session.New()
	sess.Set(&domain.User{ID: 7, Username: "ana", Role: role}, "tok", "")
	return sess
}

func TestCartRoutesRequireSession(t *testing.T) {
	router := setupRouter(&fakeSynchronizer{}, session.New())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 without session, got %d", w.Code)
	}
}

func TestCartRoutesRejectSellers(t *testing.T) {
	router := setupRouter(&fakeSynchronizer{}, signedInSession(domain.RoleSeller))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("want 403 for seller, got %d", w.Code)
	}
}

func TestGetCartReportsEmptyForMissingCart(t *testing.T) {
	router := setupRouter(&fakeSynchronizer{}, signedInSession(domain.RoleCustomer))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Empty bool `json:"empty"`
		} `json:"Data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Data.Empty {
		t.Fatal("missing cart must render as empty")
	}
}

func TestAddItemPassesProductThrough(t *testing.T) {
	sync := &fakeSynchronizer{}
	router := setupRouter(sync, signedInSession(domain.RoleCustomer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":5,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(sync.added) != 1 || sync.added[0] != 5 {
		t.Fatalf("product not passed through: %v", sync.added)
	}
}

func TestAddItemWithoutProductIsBadRequest(t *testing.T) {
	router := setupRouter(&fakeSynchronizer{}, signedInSession(domain.RoleCustomer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestClearCartConflictSurfacesAs409(t *testing.T) {
	sync := &fakeSynchronizer{lastErr: &domain.CartError{Operation: "clear", Err: context.Canceled}}
	router := setupRouter(sync, signedInSession(domain.RoleCustomer))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d", w.Code)
	}
}
