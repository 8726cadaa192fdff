package notify

// DropUpdatesChannel is the Postgres NOTIFY channel carrying drop counter
// changes. Payloads are DropUpdate JSON.
const DropUpdatesChannel = "drop_updates"

type DropUpdate struct {
	DropID      string `json:"drop_id"`
	TotalSlots  int32  `json:"total_slots"`
	OrdersCount int32  `json:"orders_count"`
}
