//go:build unit || e2e

package builder

import (
	"island-eats/internal/domain/cart"
	"island-eats/internal/domain/menu"
)

// CartBuilder assembles carts from catalog item ids so tests never invent
// prices that disagree with the menu.
type CartBuilder struct {
	catalog *menu.Catalog
	cart    cart.Cart
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		catalog: menu.NewCatalog(),
		cart:    cart.New(),
	}
}

func (b *CartBuilder) WithItem(itemID int32, quantity int32) *CartBuilder {
	item, err := b.catalog.ByID(itemID)
	if err != nil {
		panic("cart builder: unknown menu item id")
	}
	b.cart = b.cart.Add(item)
	if quantity > 1 {
		b.cart = b.cart.SetQuantity(itemID, quantity)
	}
	return b
}

func (b *CartBuilder) Build() cart.Cart {
	return b.cart
}
