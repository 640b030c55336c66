package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"

	"resinshop/internal/gateway"
	"resinshop/internal/models"
	"resinshop/internal/repositories"
)

// CartService is the single source of truth for the active cart on this
// side: it holds the cart identity (persisted locally) and a mirror of
// the server's line items. State mutates only after the server confirms
// an operation; there are no optimistic updates and therefore nothing
// to roll back.
type CartService struct {
	api      gateway.CartAPI
	sessions repositories.SessionRepository

	// mu serializes cart mutations. It also makes lazy cart creation
	// exactly-once: concurrent first adds queue behind it and reuse the
	// id the first one obtained.
	mu     sync.Mutex
	cartID string
	items  []models.CartItem
}

// NewCartService creates a CartService, restoring a previously persisted
// cart id if one exists.
func NewCartService(api gateway.CartAPI, sessions repositories.SessionRepository) *CartService {
	s := &CartService{
		api:      api,
		sessions: sessions,
	}
	id, err := sessions.GetCartID()
	if err != nil {
		log.Printf("Failed to restore cart id, starting without one: %v", err)
		return s
	}
	s.cartID = id
	return s
}

// CartID returns the current cart id, or "" before the first add.
func (s *CartService) CartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}

// Items returns a copy of the mirrored line items.
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsEmpty reports whether the cart has no items.
func (s *CartService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// ensureCartLocked lazily creates the server-side cart. Callers must
// hold mu, which guarantees exactly one creation call no matter how
// many adds race for it.
func (s *CartService) ensureCartLocked(ctx context.Context) error {
	if s.cartID != "" {
		return nil
	}
	cart, err := s.api.CreateCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	s.cartID = cart.ID
	if err := s.sessions.SetCartID(cart.ID); err != nil {
		// The cart still works for this process; only restore after
		// restart is lost.
		log.Printf("Failed to persist cart id %s: %v", cart.ID, err)
	}
	return nil
}

// AddItem adds a resolved variant to the cart. Quantities below 1 are
// coerced to 1. The local mirror gains the line only after the server
// confirms it.
func (s *CartService) AddItem(ctx context.Context, variantID string, quantity int) (*models.CartItem, error) {
	if variantID == "" {
		return nil, fmt.Errorf("a resolved variant id is required to add to cart")
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartLocked(ctx); err != nil {
		return nil, err
	}

	item, err := s.api.AddItem(ctx, s.cartID, gateway.AddItemRequest{
		VariantID: variantID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add variant %s to cart: %w", variantID, err)
	}
	s.items = append(s.items, *item)
	return item, nil
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are removal
// requests, not errors.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cartID == "" {
		return fmt.Errorf("no active cart")
	}
	item, err := s.api.UpdateItemQuantity(ctx, s.cartID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update quantity for item %s: %w", itemID, err)
	}
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i] = *item
			break
		}
	}
	return nil
}

// RemoveItem removes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cartID == "" {
		return fmt.Errorf("no active cart")
	}
	if err := s.api.RemoveItem(ctx, s.cartID, itemID); err != nil {
		return fmt.Errorf("failed to remove item %s: %w", itemID, err)
	}
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes every line from the cart, server first.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if err := s.api.RemoveItem(ctx, s.cartID, item.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
	}
	s.resetLocked()
	return nil
}

// Reset drops the local cart state without server calls. Used after a
// successful order submission, when the server has consumed the cart.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *CartService) resetLocked() {
	s.items = nil
	s.cartID = ""
	if err := s.sessions.ClearCartID(); err != nil {
		log.Printf("Failed to clear persisted cart id: %v", err)
	}
}

// Refresh replaces the local mirror with the server's cart state.
func (s *CartService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cartID == "" {
		return nil
	}
	cart, err := s.api.GetCart(ctx, s.cartID)
	if err != nil {
		return fmt.Errorf("failed to refresh cart %s: %w", s.cartID, err)
	}
	s.items = cart.Items
	return nil
}

// Subtotal sums snapshot price times quantity over all lines. Malformed
// snapshots contribute 0 so rendering never breaks on bad data.
func (s *CartService) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal float64
	for _, item := range s.items {
		subtotal += parseSnapshotPrice(item.Price) * float64(item.Quantity)
	}
	return subtotal
}

// parseSnapshotPrice parses a string-encoded decimal snapshot. Anything
// unparseable is worth 0. ParseFloat accepts "NaN" and "Inf", which
// would poison the whole sum, so those count as unparseable too.
func parseSnapshotPrice(s string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}
