package tax

import (
	"github.com/shopspring/decimal"

	"github.com/cryptotax-micro/backend/internal/model"
)

// Aggregate folds realized gains into a tax report, summing gain/loss by
// term and counting the input and sell transactions. Pure function of its
// input; the gains keep the order the engine emitted them in.
func Aggregate(method model.Method, transactions []model.Transaction, gains []model.RealizedGain) model.TaxReport {
	shortTerm := decimal.Zero
	longTerm := decimal.Zero
	for _, gain := range gains {
		if gain.Term == model.LongTerm {
			longTerm = longTerm.Add(gain.GainLoss)
		} else {
			shortTerm = shortTerm.Add(gain.GainLoss)
		}
	}

	sales := 0
	for _, tx := range transactions {
		if tx.Kind == model.Sell {
			sales++
		}
	}

	if gains == nil {
		gains = []model.RealizedGain{}
	}

	return model.TaxReport{
		Method:            method.String(),
		TotalTransactions: len(transactions),
		TotalSales:        sales,
		ShortTermGainLoss: shortTerm,
		LongTermGainLoss:  longTerm,
		TotalGainLoss:     shortTerm.Add(longTerm),
		RealizedGains:     gains,
	}
}
