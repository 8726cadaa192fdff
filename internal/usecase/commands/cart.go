package commands

import (
	"context"

	"island-eats/internal/domain/cart"
	"island-eats/internal/domain/menu"
	"island-eats/internal/pkg/errs"
	"island-eats/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrMenuItemNotFound = errs.New("menu item not found")
	ErrDropSoldOut      = errs.New("drop sold out")
)

type CartCommands interface {
	AddItem(ctx context.Context, userID uuid.UUID, itemID int32) (cart.Cart, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, itemID, quantity int32) (cart.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID int32) (cart.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartCommandsImpl struct {
	carts       CartStore
	catalog     *menu.Catalog
	dropQueries queries.DropQueries
}

func NewCartCommands(carts CartStore, catalog *menu.Catalog, dropQueries queries.DropQueries) CartCommands {
	return &cartCommandsImpl{
		carts:       carts,
		catalog:     catalog,
		dropQueries: dropQueries,
	}
}

// AddItem rejects once the drop is sold out; there is no point building a
// cart that can never check out. The other mutations stay available so
// users can still trim an existing cart.
func (c *cartCommandsImpl) AddItem(ctx context.Context, userID uuid.UUID, itemID int32) (cart.Cart, error) {
	item, err := c.catalog.ByID(itemID)
	if err != nil {
		return cart.Cart{}, ErrMenuItemNotFound
	}

	status, err := c.dropQueries.Status(ctx)
	if err != nil {
		return cart.Cart{}, err
	}
	if status.SoldOut {
		return cart.Cart{}, ErrDropSoldOut
	}

	next := c.carts.Get(userID).Add(item)
	c.carts.Replace(userID, next)
	return next, nil
}

func (c *cartCommandsImpl) SetQuantity(ctx context.Context, userID uuid.UUID, itemID, quantity int32) (cart.Cart, error) {
	if _, err := c.catalog.ByID(itemID); err != nil {
		return cart.Cart{}, ErrMenuItemNotFound
	}

	next := c.carts.Get(userID).SetQuantity(itemID, quantity)
	c.carts.Replace(userID, next)
	return next, nil
}

func (c *cartCommandsImpl) RemoveItem(_ context.Context, userID uuid.UUID, itemID int32) (cart.Cart, error) {
	next := c.carts.Get(userID).Remove(itemID)
	c.carts.Replace(userID, next)
	return next, nil
}

func (c *cartCommandsImpl) Clear(_ context.Context, userID uuid.UUID) error {
	c.carts.Clear(userID)
	return nil
}
