package response

import (
	"island-eats/internal/domain/cart"
)

type CartLineResponse struct {
	ItemID        int32  `json:"itemId"`
	Name          string `json:"name"`
	Emoji         string `json:"emoji"`
	PriceCents    int64  `json:"priceCents"`
	Quantity      int32  `json:"quantity"`
	SubtotalCents int64  `json:"subtotalCents"`
}

type CartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	TotalQuantity int32              `json:"totalQuantity"`
	TotalCents    int64              `json:"totalCents"`
}

func FromCart(c cart.Cart) *CartResponse {
	lines := c.Lines()
	res := make([]CartLineResponse, len(lines))
	for i, l := range lines {
		res[i] = CartLineResponse{
			ItemID:        l.Item.ID,
			Name:          l.Item.Name,
			Emoji:         l.Item.Emoji,
			PriceCents:    l.Item.PriceCents,
			Quantity:      l.Quantity,
			SubtotalCents: l.SubtotalCents(),
		}
	}
	return &CartResponse{
		Lines:         res,
		TotalQuantity: c.TotalQuantity(),
		TotalCents:    c.TotalCents(),
	}
}
