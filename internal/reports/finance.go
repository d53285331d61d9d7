package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bottegalab/gestionale/internal/models"
)

// MethodTotals partitions amounts by payment method. Grand is the sum of
// the buckets, so every record lands in exactly one bucket.
type MethodTotals struct {
	ByMethod map[models.PaymentMethod]decimal.Decimal `json:"byMethod"`
	Grand    decimal.Decimal                          `json:"grand"`
}

func methodTotals[T any](items []T, method func(T) models.PaymentMethod, amount func(T) decimal.Decimal) MethodTotals {
	out := MethodTotals{ByMethod: make(map[models.PaymentMethod]decimal.Decimal), Grand: decimal.Zero}
	for _, m := range models.AllMethods {
		out.ByMethod[m] = decimal.Zero
	}
	for _, it := range items {
		m := method(it)
		if _, ok := out.ByMethod[m]; !ok {
			m = models.MethodUnspecified
		}
		out.ByMethod[m] = out.ByMethod[m].Add(amount(it))
		out.Grand = out.Grand.Add(amount(it))
	}
	return out
}

func PaymentTotalsByMethod(payments []models.Payment) MethodTotals {
	return methodTotals(payments,
		func(p models.Payment) models.PaymentMethod { return p.Method },
		func(p models.Payment) decimal.Decimal { return p.Amount })
}

func CostTotalsByMethod(costs []models.OperationalCost) MethodTotals {
	return methodTotals(costs,
		func(c models.OperationalCost) models.PaymentMethod { return c.Method },
		func(c models.OperationalCost) decimal.Decimal { return c.Amount })
}

// Window selects the calendar period containing a reference date.
type Window int

const (
	WindowMonth Window = iota
	WindowQuarter
	WindowYear
)

// Contains reports whether d falls in the window around now.
func (w Window) Contains(d, now time.Time) bool {
	if d.Year() != now.Year() {
		return false
	}
	switch w {
	case WindowMonth:
		return d.Month() == now.Month()
	case WindowQuarter:
		return (int(d.Month())-1)/3 == (int(now.Month())-1)/3
	default:
		return true
	}
}

// CostsInWindow sums costs dated inside the current month/quarter/year.
func CostsInWindow(costs []models.OperationalCost, now time.Time, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		if w.Contains(c.Date, now) {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// NetProfit is total payments minus total costs.
func NetProfit(payments []models.Payment, costs []models.OperationalCost) decimal.Decimal {
	in := SumBy(payments, func(p models.Payment) decimal.Decimal { return p.Amount })
	out := SumBy(costs, func(c models.OperationalCost) decimal.Decimal { return c.Amount })
	return in.Sub(out)
}

// ConversionRate is the percentage of decided quotes that were approved.
// Quotes still "sent" are undecided and excluded; with nothing decided the
// rate is 0, not NaN.
func ConversionRate(quotes []models.Quote) float64 {
	approved, rejected := 0, 0
	for _, q := range quotes {
		switch q.Status {
		case models.QuoteApproved:
			approved++
		case models.QuoteRejected:
			rejected++
		}
	}
	if approved+rejected == 0 {
		return 0
	}
	return float64(approved) / float64(approved+rejected) * 100
}

// TopCostCategories is the top-n cost breakdown by category/sub-category.
func TopCostCategories(costs []models.OperationalCost, n int) []GroupTotal {
	return TopN(Totals(costs,
		func(c models.OperationalCost) string { return c.Category + " / " + c.SubCategory },
		func(c models.OperationalCost) decimal.Decimal { return c.Amount }), n)
}

// TopWorkshopRevenue ranks workshops by collected payments. Payments with
// no workshop reference (free-form description) group under their
// description, or "—" when that is empty too.
func TopWorkshopRevenue(payments []models.Payment, workshops []models.Workshop, n int) []GroupTotal {
	names := make(map[string]string, len(workshops))
	for _, w := range workshops {
		names[w.ID] = w.Name
	}
	return TopN(Totals(payments,
		func(p models.Payment) string {
			if name, ok := names[p.WorkshopID]; ok {
				return name
			}
			if p.Description != "" {
				return p.Description
			}
			return "—"
		},
		func(p models.Payment) decimal.Decimal { return p.Amount }), n)
}

// TopSupplierCosts ranks suppliers by operational spend; costs without a
// supplier are left out.
func TopSupplierCosts(costs []models.OperationalCost, suppliers []models.Supplier, n int) []GroupTotal {
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	withSupplier := make([]models.OperationalCost, 0, len(costs))
	for _, c := range costs {
		if c.SupplierID != "" {
			withSupplier = append(withSupplier, c)
		}
	}
	return TopN(Totals(withSupplier,
		func(c models.OperationalCost) string {
			if name, ok := names[c.SupplierID]; ok {
				return name
			}
			return c.SupplierID
		},
		func(c models.OperationalCost) decimal.Decimal { return c.Amount }), n)
}

// RevenueByLocation rolls workshop revenue up to the hosting location.
func RevenueByLocation(payments []models.Payment, workshops []models.Workshop, locations []models.Location) []GroupTotal {
	locOfWorkshop := make(map[string]string, len(workshops))
	for _, w := range workshops {
		locOfWorkshop[w.ID] = w.LocationID
	}
	locNames := make(map[string]string, len(locations))
	for _, l := range locations {
		locNames[l.ID] = l.Name
	}
	located := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if locOfWorkshop[p.WorkshopID] != "" {
			located = append(located, p)
		}
	}
	return Totals(located,
		func(p models.Payment) string {
			locID := locOfWorkshop[p.WorkshopID]
			if name, ok := locNames[locID]; ok {
				return name
			}
			return locID
		},
		func(p models.Payment) decimal.Decimal { return p.Amount })
}
