package request

type AddCartItemRequest struct {
	ItemID int32 `json:"itemId" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity" binding:"min=0"`
}
