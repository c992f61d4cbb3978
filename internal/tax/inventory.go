package tax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptotax-micro/backend/internal/apperrors"
	"github.com/cryptotax-micro/backend/internal/model"
)

// Inventory holds the open acquisition lots for each symbol, ordered by
// acquisition date ascending. Transactions arrive pre-sorted, so append
// order is acquisition order and same-day lots keep their input order.
// An Inventory belongs to a single calculation and is not safe for
// concurrent use.
type Inventory struct {
	lots map[string][]*model.Lot
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{lots: make(map[string][]*model.Lot)}
}

// AddLot appends a lot to its symbol's queue.
func (inv *Inventory) AddLot(lot *model.Lot) {
	inv.lots[lot.Symbol] = append(inv.lots[lot.Symbol], lot)
}

// AvailableQuantity returns the total open quantity for a symbol.
func (inv *Inventory) AvailableQuantity(symbol string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range inv.lots[symbol] {
		total = total.Add(lot.QuantityRemaining)
	}
	return total
}

// OpenLots returns the symbol's remaining open lots in acquisition order.
// Not part of the report, but inspectable by callers.
func (inv *Inventory) OpenLots(symbol string) []*model.Lot {
	return inv.lots[symbol]
}

// PeekNext returns the lot the next sale would draw from: the earliest
// acquired under FIFO, the latest under LIFO. Returns nil when the
// symbol has no open lots.
func (inv *Inventory) PeekNext(symbol string, method model.Method) *model.Lot {
	queue := inv.lots[symbol]
	if len(queue) == 0 {
		return nil
	}
	if method == model.LIFO {
		return queue[len(queue)-1]
	}
	return queue[0]
}

// Segment records a draw of quantity against a single lot.
type Segment struct {
	AcquiredDate  time.Time
	Quantity      decimal.Decimal
	UnitCostBasis decimal.Decimal
	SourceRow     int
}

// Consume draws quantity from the symbol's lots under the given method,
// splitting the final lot when it is only partially needed. It fails up
// front with ErrInsufficientInventory when the open quantity cannot cover
// the request; nothing is drawn in that case.
func (inv *Inventory) Consume(symbol string, quantity decimal.Decimal, method model.Method) ([]Segment, error) {
	available := inv.AvailableQuantity(symbol)
	if available.LessThan(quantity) {
		return nil, fmt.Errorf("%w: %s requires %s, %s available",
			apperrors.ErrInsufficientInventory, symbol, quantity, available)
	}

	var segments []Segment
	remaining := quantity
	for remaining.IsPositive() {
		lot := inv.PeekNext(symbol, method)
		draw := decimal.Min(remaining, lot.QuantityRemaining)

		segments = append(segments, Segment{
			AcquiredDate:  lot.AcquiredDate,
			Quantity:      draw,
			UnitCostBasis: lot.UnitCostBasis,
			SourceRow:     lot.SourceRow,
		})

		lot.QuantityRemaining = lot.QuantityRemaining.Sub(draw)
		if lot.QuantityRemaining.IsZero() {
			inv.removeNext(symbol, method)
		}
		remaining = remaining.Sub(draw)
	}
	return segments, nil
}

// removeNext pops the lot PeekNext would return.
func (inv *Inventory) removeNext(symbol string, method model.Method) {
	queue := inv.lots[symbol]
	if method == model.LIFO {
		queue = queue[:len(queue)-1]
	} else {
		queue = queue[1:]
	}
	if len(queue) == 0 {
		delete(inv.lots, symbol)
		return
	}
	inv.lots[symbol] = queue
}
