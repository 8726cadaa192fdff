package response

import (
	"island-eats/internal/domain/menu"
)

type MenuItemResponse struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
}

type MenuResponse struct {
	Items []MenuItemResponse `json:"items"`
	Combo ComboResponse      `json:"combo"`
}

type ComboResponse struct {
	ItemID            int32 `json:"itemId"`
	PriceCents        int64 `json:"priceCents"`
	RegularPriceCents int64 `json:"regularPriceCents"`
	SavingsCents      int64 `json:"savingsCents"`
}

func FromCatalog(catalog *menu.Catalog) *MenuResponse {
	items := catalog.Items()
	res := make([]MenuItemResponse, len(items))
	for i, it := range items {
		res[i] = MenuItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Emoji:       it.Emoji,
			Description: it.Description,
			PriceCents:  it.PriceCents,
		}
	}

	combo := catalog.Combo()
	return &MenuResponse{
		Items: res,
		Combo: ComboResponse{
			ItemID:            combo.ID,
			PriceCents:        combo.PriceCents,
			RegularPriceCents: catalog.ComboRegularPriceCents(),
			SavingsCents:      catalog.ComboSavingsCents(),
		},
	}
}
