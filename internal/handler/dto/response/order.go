package response

import (
	"time"

	"island-eats/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ItemID     int32  `json:"itemId"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int32  `json:"quantity"`
}

type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	DropID      string              `json:"dropId"`
	OrderNumber int32               `json:"orderNumber"`
	UserEmail   string              `json:"userEmail"`
	UserName    string              `json:"userName"`
	Items       []OrderItemResponse `json:"items"`
	TotalCents  int64               `json:"totalCents"`
	PlacedAt    time.Time           `json:"placedAt"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = OrderItemResponse{
			ItemID:     it.ItemID,
			Name:       it.Name,
			Emoji:      it.Emoji,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		}
	}
	return &OrderResponse{
		ID:          v.ID,
		DropID:      v.DropID,
		OrderNumber: v.OrderNumber,
		UserEmail:   v.UserEmail,
		UserName:    v.UserName,
		Items:       items,
		TotalCents:  v.TotalCents,
		PlacedAt:    v.PlacedAt,
	}
}

func FromOrderList(views []*queries.OrderView) []*OrderResponse {
	res := make([]*OrderResponse, len(views))
	for i, v := range views {
		res[i] = FromOrderView(v)
	}
	return res
}
