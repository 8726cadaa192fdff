package menu

import "errors"

var ErrItemNotFound = errors.New("menu item not found")

// Item is a purchasable menu entry. Prices are integer cents.
type Item struct {
	ID          int32
	Name        string
	PriceCents  int64
	Emoji       string
	Description string
}

// Catalog is the immutable set of items on sale for the drop. It is built
// once at process start and never mutated.
type Catalog struct {
	items   []Item
	combo   Item
	regular int64
}

func NewCatalog() *Catalog {
	items := []Item{
		{ID: 1, Name: "15 Wings", PriceCents: 2000, Emoji: "\U0001F357"},
		{ID: 2, Name: "Macaroni Pie", PriceCents: 1250, Emoji: "\U0001F9C0"},
		{ID: 3, Name: "Callaloo", PriceCents: 250, Emoji: "\U0001F96C"},
		{ID: 4, Name: "Juice", PriceCents: 750, Emoji: "\U0001F9C3"},
	}

	var regular int64
	for _, it := range items {
		regular += it.PriceCents
	}

	combo := Item{
		ID:          5,
		Name:        "Sunday Feast Combo",
		PriceCents:  3800,
		Emoji:       "\U0001F389",
		Description: "All items included!",
	}

	return &Catalog{
		items:   items,
		combo:   combo,
		regular: regular,
	}
}

// Items returns the individual menu items, excluding the combo.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Combo() Item {
	return c.combo
}

// ComboRegularPriceCents is the sum of the individual item prices, shown
// next to the combo as the crossed-out price.
func (c *Catalog) ComboRegularPriceCents() int64 {
	return c.regular
}

func (c *Catalog) ComboSavingsCents() int64 {
	return c.regular - c.combo.PriceCents
}

func (c *Catalog) ByID(id int32) (Item, error) {
	if id == c.combo.ID {
		return c.combo, nil
	}
	for _, it := range c.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}
