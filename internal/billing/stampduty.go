// Package billing carries the billing rules the rendering layer must not
// re-derive, chiefly the virtual stamp duty on quotes.
package billing

import "github.com/shopspring/decimal"

// Italian "imposta di bollo" on documents above €77.47; the business rounds
// the threshold to whole euros and applies the standard €2.00 virtual stamp.
var (
	StampDutyThreshold = decimal.NewFromInt(77)
	StampDutyAmount    = decimal.New(200, -2) // 2.00
)

// StampDuty returns the surcharge owed on a quote of the given base amount:
// the fixed stamp above the threshold, zero at or below it.
func StampDuty(amount decimal.Decimal) decimal.Decimal {
	if amount.GreaterThan(StampDutyThreshold) {
		return StampDutyAmount
	}
	return decimal.Zero
}

// DisplayTotal is the amount the rendered quote shows: base plus stamp duty
// when due.
func DisplayTotal(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(StampDuty(amount))
}
