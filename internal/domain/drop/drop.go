package drop

import "errors"

var ErrSoldOut = errors.New("all order slots are filled")

// Drop is the fixed daily order capacity: a counter bounded by the slot
// total. The counter only ever goes up; a claimed slot is never returned.
type Drop struct {
	id          string
	totalSlots  int32
	ordersCount int32
}

func Reconstruct(id string, totalSlots, ordersCount int32) Drop {
	return Drop{
		id:          id,
		totalSlots:  totalSlots,
		ordersCount: ordersCount,
	}
}

func (d Drop) ID() string         { return d.id }
func (d Drop) TotalSlots() int32  { return d.totalSlots }
func (d Drop) OrdersCount() int32 { return d.ordersCount }

func (d Drop) SlotsRemaining() int32 {
	remaining := d.totalSlots - d.ordersCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (d Drop) Percentage() float64 {
	if d.totalSlots == 0 {
		return 0
	}
	return float64(d.ordersCount) / float64(d.totalSlots) * 100
}

func (d Drop) SoldOut() bool {
	return d.ordersCount >= d.totalSlots
}

// Claim consumes one slot and returns the order number it maps to (1-based).
// Returns ErrSoldOut without mutating when capacity is exhausted.
func (d *Drop) Claim() (int32, error) {
	if d.SoldOut() {
		return 0, ErrSoldOut
	}
	d.ordersCount++
	return d.ordersCount, nil
}
