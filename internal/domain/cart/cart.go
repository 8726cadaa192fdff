package cart

import "island-eats/internal/domain/menu"

// Line is one cart entry: a menu item and how many of it the user wants.
// A cart holds at most one line per item id.
type Line struct {
	Item     menu.Item
	Quantity int32
}

func (l Line) SubtotalCents() int64 {
	return l.Item.PriceCents * int64(l.Quantity)
}

// Cart is an immutable value. Every operation returns a new Cart and leaves
// the receiver untouched, so a snapshot taken at any point stays stable no
// matter what happens to the live cart afterwards. Lines keep insertion
// order; the total is always derived from the lines, never stored.
type Cart struct {
	lines []Line
}

func New() Cart {
	return Cart{}
}

func Reconstruct(lines []Line) Cart {
	return Cart{lines: copyLines(lines)}
}

// Add puts one more of item into the cart: an existing line's quantity is
// incremented, otherwise a new line is appended. Never fails.
func (c Cart) Add(item menu.Item) Cart {
	next := copyLines(c.lines)
	for i := range next {
		if next[i].Item.ID == item.ID {
			next[i].Quantity++
			return Cart{lines: next}
		}
	}
	next = append(next, Line{Item: item, Quantity: 1})
	return Cart{lines: next}
}

// Remove drops the line for itemID. Removing an absent item is a no-op.
func (c Cart) Remove(itemID int32) Cart {
	next := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		if l.Item.ID != itemID {
			next = append(next, l)
		}
	}
	return Cart{lines: next}
}

// SetQuantity sets the line's quantity exactly. A quantity below 1 is
// equivalent to Remove. Setting quantity on an absent item is a no-op.
func (c Cart) SetQuantity(itemID int32, quantity int32) Cart {
	if quantity < 1 {
		return c.Remove(itemID)
	}
	next := copyLines(c.lines)
	for i := range next {
		if next[i].Item.ID == itemID {
			next[i].Quantity = quantity
			break
		}
	}
	return Cart{lines: next}
}

func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) Lines() []Line {
	return copyLines(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.SubtotalCents()
	}
	return total
}

func (c Cart) TotalQuantity() int32 {
	var total int32
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func copyLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
