package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront_client/internal/clients"
	"storefront_client/internal/domain"
)

// CartSynchronizer owns the in-memory snapshot of the current user's cart and
// keeps it aligned with the server through mutate-then-reload: every mutation
// is followed by a full refetch instead of a local patch, because the server
// computes line totals and cart totals and is the sole authority.
type CartSynchronizer interface {
	// LoadCart fetches the current cart. A user with no cart yet yields
	// (nil, nil), not an error; only transport and auth failures error.
	LoadCart(ctx context.Context, userID int) (*domain.Cart, error)
	// AddItem requests a server-side add then reloads. The per-product
	// pending flag is raised for the full duration so the view can disable
	// the one triggering control.
	AddItem(ctx context.Context, userID, productID, quantity int) error
	// UpdateItemQuantity changes an item's quantity then reloads. A quantity
	// of zero or below delegates to RemoveItem; the server never sees a
	// non-positive quantity.
	UpdateItemQuantity(ctx context.Context, itemID, quantity int) error
	RemoveItem(ctx context.Context, itemID int) error
	// ClearCart removes every item from the loaded cart then reloads. It is
	// a CartError when no cart has been created yet.
	ClearCart(ctx context.Context) error
	// Cart returns the last loaded snapshot, nil before the first load.
	Cart() *domain.Cart
	Totals() domain.Totals
	Pending(productID int) bool
}

var errOperationInFlight = errors.New("another cart operation is in flight")

type cartSynchronizer struct {
	api clients.CartAPI
	log *logrus.Logger

	mu      sync.Mutex
	busy    bool
	userID  int
	cart    *domain.Cart
	pending map[int]bool
}

func NewCartSynchronizer(api clients.CartAPI, logger *logrus.Logger) CartSynchronizer {
	return &cartSynchronizer{
		api:     api,
		log:     logger,
		pending: make(map[int]bool),
	}
}

func (s *cartSynchronizer) LoadCart(ctx context.Context, userID int) (*domain.Cart, error) {
	cart, err := s.api.GetCart(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			s.log.Infof("Cart: user %d has no cart yet, treating as empty", userID)
			s.mu.Lock()
			s.userID = userID
			s.cart = nil
			s.mu.Unlock()
			return nil, nil
		}
		s.log.Errorf("Cart: failed to load cart for user %d: %v", userID, err)
		return nil, err
	}

	s.mu.Lock()
	s.userID = userID
	s.cart = cart
	s.mu.Unlock()

	s.log.Debugf("Cart: loaded cart %d for user %d (%d items)", cart.ID, userID, len(cart.Items))
	return cart, nil
}

func (s *cartSynchronizer) AddItem(ctx context.Context, userID, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := s.begin("add item"); err != nil {
		return err
	}
	s.setPending(productID, true)
	defer s.setPending(productID, false)
	defer s.end()

	if _, err := s.api.AddToCart(ctx, userID, productID, quantity); err != nil {
		s.log.Errorf("Cart: add of product %d for user %d failed: %v", productID, userID, err)
		return &domain.CartError{Operation: "add item", Err: err}
	}
	return s.reload(ctx, userID, "add item")
}

func (s *cartSynchronizer) UpdateItemQuantity(ctx context.Context, itemID, quantity int) error {
	if quantity <= 0 {
		s.log.Infof("Cart: quantity %d for item %d maps to removal", quantity, itemID)
		return s.RemoveItem(ctx, itemID)
	}
	if err := s.begin("update item"); err != nil {
		return err
	}
	defer s.end()

	if _, err := s.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		s.log.Errorf("Cart: quantity update for item %d failed: %v", itemID, err)
		return &domain.CartError{Operation: "update item", Err: err}
	}
	return s.reload(ctx, s.currentUserID(), "update item")
}

func (s *cartSynchronizer) RemoveItem(ctx context.Context, itemID int) error {
	if err := s.begin("remove item"); err != nil {
		return err
	}
	defer s.end()

	if err := s.api.RemoveFromCart(ctx, itemID); err != nil {
		s.log.Errorf("Cart: removal of item %d failed: %v", itemID, err)
		return &domain.CartError{Operation: "remove item", Err: err}
	}
	return s.reload(ctx, s.currentUserID(), "remove item")
}

func (s *cartSynchronizer) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	cart := s.cart
	s.mu.Unlock()
	if cart == nil {
		return &domain.CartError{Operation: "clear", Err: errors.New("no cart has been created yet")}
	}

	if err := s.begin("clear"); err != nil {
		return err
	}
	defer s.end()

	if err := s.api.ClearCart(ctx, cart.ID); err != nil {
		s.log.Errorf("Cart: clear of cart %d failed: %v", cart.ID, err)
		return &domain.CartError{Operation: "clear", Err: err}
	}
	return s.reload(ctx, s.currentUserID(), "clear")
}

func (s *cartSynchronizer) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *cartSynchronizer) Totals() domain.Totals {
	return domain.DeriveTotals(s.Cart())
}

func (s *cartSynchronizer) Pending(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[productID]
}

// begin claims the single mutation slot. Mutations never race from one
// client instance: a second mutating call fails fast until the in-flight one
// has reloaded and unlocked.
func (s *cartSynchronizer) begin(operation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		s.log.Warnf("Cart: rejected %s, %v", operation, errOperationInFlight)
		return &domain.CartError{Operation: operation, Err: errOperationInFlight}
	}
	s.busy = true
	return nil
}

func (s *cartSynchronizer) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// reload refetches the authoritative cart after a successful mutation. On
// failure the previous snapshot is kept untouched and the error surfaces as
// the mutation's error.
func (s *cartSynchronizer) reload(ctx context.Context, userID int, operation string) error {
	cart, err := s.api.GetCart(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			s.mu.Lock()
			s.cart = nil
			s.mu.Unlock()
			return nil
		}
		s.log.Errorf("Cart: reload after %s failed, keeping previous snapshot: %v", operation, err)
		return &domain.CartError{Operation: operation, Err: err}
	}

	s.mu.Lock()
	s.userID = userID
	s.cart = cart
	s.mu.Unlock()
	return nil
}

func (s *cartSynchronizer) currentUserID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *cartSynchronizer) setPending(productID int, value bool) {
	s.mu.Lock()
	if value {
		s.pending[productID] = true
	} else {
		delete(s.pending, productID)
	}
	s.mu.Unlock()
}
