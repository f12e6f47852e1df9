package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront_client/internal/clients"
	"storefront_client/internal/domain"
)

// CheckoutOrchestrator converts a non-empty cart into an immutable checkout
// record and exposes the append-only checkout history.
type CheckoutOrchestrator interface {
	// Checkout submits the currently loaded cart. An empty or absent cart
	// fails with a ValidationError before any network call. On success the
	// server has emptied the cart and the synchronizer is reloaded.
	Checkout(ctx context.Context) (*domain.Checkout, error)
	// History returns the user's checkouts, most recent first. The server is
	// expected but not guaranteed to order them, so the client re-sorts.
	History(ctx context.Context, userID int) ([]domain.Checkout, error)
	State() domain.CheckoutState
}

type checkoutOrchestrator struct {
	api  clients.CheckoutAPI
	cart CartSynchronizer
	log  *logrus.Logger

	mu    sync.Mutex
	state domain.CheckoutState
}

func NewCheckoutOrchestrator(api clients.CheckoutAPI, cart CartSynchronizer, logger *logrus.Logger) CheckoutOrchestrator {
	return &checkoutOrchestrator{
		api:   api,
		cart:  cart,
		log:   logger,
		state: domain.CheckoutIdle,
	}
}

func (o *checkoutOrchestrator) Checkout(ctx context.Context) (*domain.Checkout, error) {
	cart := o.cart.Cart()
	if cart == nil || domain.DeriveTotals(cart).TotalItems == 0 {
		o.log.Warn("Checkout: rejected, cart is empty")
		return nil, &domain.ValidationError{Message: "empty cart"}
	}

	if err := o.submit(); err != nil {
		return nil, err
	}

	checkout, err := o.api.CheckoutCart(ctx, cart.ID)
	if err != nil {
		o.setState(domain.CheckoutFailed)
		o.log.Errorf("Checkout: submission of cart %d failed: %v", cart.ID, err)
		return nil, err
	}
	o.setState(domain.CheckoutCompleted)
	o.log.Infof("Checkout: completed checkout %d for cart %d (total %s)",
		checkout.ID, cart.ID, checkout.TotalAmount)

	// The server empties the cart as part of checkout; refetch rather than
	// assume.
	if _, err := o.cart.LoadCart(ctx, cart.UserID); err != nil {
		o.log.Warnf("Checkout: cart reload after checkout %d failed: %v", checkout.ID, err)
	}
	return checkout, nil
}

func (o *checkoutOrchestrator) History(ctx context.Context, userID int) ([]domain.Checkout, error) {
	checkouts, err := o.api.GetCheckoutHistory(ctx, userID)
	if err != nil {
		o.log.Errorf("Checkout: failed to fetch history for user %d: %v", userID, err)
		return nil, err
	}
	sort.SliceStable(checkouts, func(i, j int) bool {
		return checkouts[i].CheckoutDate.After(checkouts[j].CheckoutDate)
	})
	return checkouts, nil
}

func (o *checkoutOrchestrator) State() domain.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// submit moves the attempt into Submitting. A completed or failed attempt
// starts a fresh cycle; a second submission while one is in flight is
// rejected.
func (o *checkoutOrchestrator) submit() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == domain.CheckoutSubmitting {
		return &domain.ValidationError{Message: "a checkout is already in progress"}
	}
	o.state = domain.CheckoutSubmitting
	return nil
}

func (o *checkoutOrchestrator) setState(state domain.CheckoutState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}
