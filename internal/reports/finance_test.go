package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bottegalab/gestionale/internal/models"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func pay(workshopID, amount string, method models.PaymentMethod) models.Payment {
	return models.Payment{WorkshopID: workshopID, Amount: amt(amount), Method: method}
}

// The per-method buckets must partition the dataset: their sum equals the
// grand total computed over the unfiltered slice.
func TestPaymentTotalsByMethod_BucketsPartition(t *testing.T) {
	payments := []models.Payment{
		pay("w1", "100.00", models.MethodCash),
		pay("w1", "50.50", models.MethodTransfer),
		pay("w2", "25.00", models.MethodCard),
		pay("w2", "10.00", models.MethodCash),
		pay("w3", "7.25", models.MethodUnspecified),
	}
	got := PaymentTotalsByMethod(payments)

	sum := decimal.Zero
	for _, m := range models.AllMethods {
		sum = sum.Add(got.ByMethod[m])
	}
	if !sum.Equal(got.Grand) {
		t.Errorf("bucket sum %s != grand total %s", sum, got.Grand)
	}
	if want := amt("192.75"); !got.Grand.Equal(want) {
		t.Errorf("grand total: want %s, got %s", want, got.Grand)
	}
	if !got.ByMethod[models.MethodCash].Equal(amt("110.00")) {
		t.Errorf("cash bucket: want 110.00, got %s", got.ByMethod[models.MethodCash])
	}
}

func TestPaymentTotalsByMethod_Empty(t *testing.T) {
	got := PaymentTotalsByMethod(nil)
	if !got.Grand.IsZero() {
		t.Errorf("empty dataset grand total: want 0, got %s", got.Grand)
	}
	// All four buckets are present even when empty.
	if len(got.ByMethod) != len(models.AllMethods) {
		t.Errorf("want %d buckets, got %d", len(models.AllMethods), len(got.ByMethod))
	}
}

func TestConversionRate(t *testing.T) {
	mk := func(status models.QuoteStatus) models.Quote {
		return models.Quote{Status: status, Amount: amt("10")}
	}
	// All still "sent": nothing decided, rate is 0 rather than NaN.
	undecided := []models.Quote{mk(models.QuoteSent), mk(models.QuoteSent)}
	if got := ConversionRate(undecided); got != 0 {
		t.Errorf("undecided-only rate: want 0, got %v", got)
	}

	// 3 approved, 1 rejected, 2 sent → 75%; "sent" excluded from denominator.
	quotes := []models.Quote{
		mk(models.QuoteApproved), mk(models.QuoteApproved), mk(models.QuoteApproved),
		mk(models.QuoteRejected),
		mk(models.QuoteSent), mk(models.QuoteSent),
	}
	if got := ConversionRate(quotes); got != 75 {
		t.Errorf("rate: want 75, got %v", got)
	}
}

func TestWindowContains(t *testing.T) {
	now := date("2024-05-20")
	cases := []struct {
		d     string
		w     Window
		want  bool
	}{
		{"2024-05-01", WindowMonth, true},
		{"2024-04-30", WindowMonth, false},
		{"2024-04-01", WindowQuarter, true},  // Apr and May share Q2
		{"2024-03-31", WindowQuarter, false}, // Q1
		{"2024-12-31", WindowYear, true},
		{"2023-05-20", WindowYear, false},
	}
	for _, c := range cases {
		if got := c.w.Contains(date(c.d), now); got != c.want {
			t.Errorf("window %v contains %s: want %v, got %v", c.w, c.d, c.want, got)
		}
	}
}

func TestCostsInWindow(t *testing.T) {
	now := date("2024-05-20")
	costs := []models.OperationalCost{
		{Amount: amt("10.00"), Date: date("2024-05-02")},
		{Amount: amt("20.00"), Date: date("2024-04-10")},
		{Amount: amt("40.00"), Date: date("2023-05-20")},
	}
	if got := CostsInWindow(costs, now, WindowMonth); !got.Equal(amt("10.00")) {
		t.Errorf("month window: want 10.00, got %s", got)
	}
	if got := CostsInWindow(costs, now, WindowQuarter); !got.Equal(amt("30.00")) {
		t.Errorf("quarter window: want 30.00, got %s", got)
	}
	if got := CostsInWindow(costs, now, WindowYear); !got.Equal(amt("30.00")) {
		t.Errorf("year window: want 30.00, got %s", got)
	}
}

func TestNetProfit(t *testing.T) {
	payments := []models.Payment{pay("w1", "300.00", models.MethodCash)}
	costs := []models.OperationalCost{{Amount: amt("120.50")}}
	if got := NetProfit(payments, costs); !got.Equal(amt("179.50")) {
		t.Errorf("net profit: want 179.50, got %s", got)
	}
}

func TestTopCostCategories(t *testing.T) {
	costs := []models.OperationalCost{
		{Category: "Affitti", SubCategory: "Sale", Amount: amt("200.00")},
		{Category: "Affitti", SubCategory: "Sale", Amount: amt("150.00")},
		{Category: "Materiali", SubCategory: "Cancelleria", Amount: amt("80.00")},
		{Category: "Trasporti", SubCategory: "Carburante", Amount: amt("60.00")},
	}
	got := TopCostCategories(costs, 2)
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].Key != "Affitti / Sale" || !got[0].Total.Equal(amt("350.00")) || got[0].Count != 2 {
		t.Errorf("top row wrong: %+v", got[0])
	}
	if got[1].Key != "Materiali / Cancelleria" {
		t.Errorf("second row: want Materiali / Cancelleria, got %s", got[1].Key)
	}
}

func TestTopWorkshopRevenue_FreeFormFallback(t *testing.T) {
	workshops := []models.Workshop{{ID: "w1", Name: "Robotica"}}
	payments := []models.Payment{
		pay("w1", "100.00", models.MethodCash),
		{Description: "Buono regalo", Amount: amt("30.00"), Method: models.MethodCash},
	}
	got := TopWorkshopRevenue(payments, workshops, 5)
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].Key != "Robotica" {
		t.Errorf("top row: want Robotica, got %s", got[0].Key)
	}
	if got[1].Key != "Buono regalo" {
		t.Errorf("fallback row: want description key, got %s", got[1].Key)
	}
}

func TestRevenueByLocation(t *testing.T) {
	locations := []models.Location{
		{ID: "l1", Name: "Biblioteca"},
		{ID: "l2", Name: "Aula Verde"},
	}
	workshops := []models.Workshop{
		{ID: "w1", LocationID: "l1"},
		{ID: "w2", LocationID: "l1"},
		{ID: "w3", LocationID: "l2"},
	}
	payments := []models.Payment{
		pay("w1", "50.00", models.MethodCash),
		pay("w2", "70.00", models.MethodCard),
		pay("w3", "40.00", models.MethodCash),
		{Description: "fuori sede", Amount: amt("99.00")}, // no workshop, dropped
	}
	got := RevenueByLocation(payments, workshops, locations)
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].Key != "Biblioteca" || !got[0].Total.Equal(amt("120.00")) {
		t.Errorf("top location wrong: %+v", got[0])
	}
}
