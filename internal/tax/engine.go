package tax

import (
	"fmt"
	"time"

	"github.com/cryptotax-micro/backend/internal/model"
)

// longTermHoldingDays is the holding period boundary: a gain is long-term
// only when held strictly more than this many whole days, so a lot sold
// on day 365 exactly is still short-term. Confirm against the target
// jurisdiction before changing.
const longTermHoldingDays = 365

// Engine matches sale transactions against an inventory of open lots
// under a single cost basis method. Construct a fresh Engine per
// calculation request; it carries no state across batches and must not
// be shared between goroutines.
type Engine struct {
	method    model.Method
	inventory *Inventory
	gains     []model.RealizedGain
}

// NewEngine creates an engine with an empty inventory.
func NewEngine(method model.Method) *Engine {
	return &Engine{
		method:    method,
		inventory: NewInventory(),
	}
}

// Inventory exposes the open lots left after Process, for inspection.
func (e *Engine) Inventory() *Inventory {
	return e.inventory
}

// Process steps through the validated, chronologically sorted batch one
// transaction at a time, mutating the inventory and collecting realized
// gains. Any failure aborts the whole calculation: a partially matched
// tax report is worse than an explicit error.
func (e *Engine) Process(transactions []model.Transaction) ([]model.RealizedGain, error) {
	for _, tx := range transactions {
		switch tx.Kind {
		case model.Buy:
			e.buy(tx)
		case model.Sell:
			if err := e.sell(tx); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unsupported transaction kind %q at row %d", tx.Kind, tx.Row)
		}
	}
	return e.gains, nil
}

// buy opens a lot. The acquisition fee is pro-rated per unit into the
// lot's cost basis.
func (e *Engine) buy(tx model.Transaction) {
	unitCost := tx.UnitPrice.Add(tx.Fee.Div(tx.Quantity))
	e.inventory.AddLot(&model.Lot{
		Symbol:            tx.Symbol,
		AcquiredDate:      tx.Date,
		QuantityRemaining: tx.Quantity,
		UnitCostBasis:     unitCost,
		SourceRow:         tx.Row,
	})
}

// sell consumes lots for the sale and emits one realized gain per lot
// segment touched. The sale fee is split evenly per unit and subtracted
// from proceeds. Proceeds and cost basis are rounded to cents per
// segment, so gains are exact differences of reported amounts.
func (e *Engine) sell(tx model.Transaction) error {
	feePerUnit := tx.Fee.Div(tx.Quantity)
	netUnitProceeds := tx.UnitPrice.Sub(feePerUnit)

	segments, err := e.inventory.Consume(tx.Symbol, tx.Quantity, e.method)
	if err != nil {
		return fmt.Errorf("sale at row %d on %s: %w", tx.Row, tx.Date.Format("2006-01-02"), err)
	}

	for _, seg := range segments {
		proceeds := seg.Quantity.Mul(netUnitProceeds).Round(2)
		costBasis := seg.Quantity.Mul(seg.UnitCostBasis).Round(2)

		days := daysBetween(seg.AcquiredDate, tx.Date)
		term := model.ShortTerm
		if days > longTermHoldingDays {
			term = model.LongTerm
		}

		e.gains = append(e.gains, model.RealizedGain{
			Symbol:       tx.Symbol,
			AcquiredDate: seg.AcquiredDate,
			SoldDate:     tx.Date,
			Quantity:     seg.Quantity,
			Proceeds:     proceeds,
			CostBasis:    costBasis,
			GainLoss:     proceeds.Sub(costBasis),
			Term:         term,
			DaysHeld:     days,
		})
	}
	return nil
}

// daysBetween counts whole days between two midnight-UTC dates.
func daysBetween(acquired, sold time.Time) int {
	return int(sold.Sub(acquired).Hours() / 24)
}
