package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bottegalab/gestionale/internal/config"
	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/reports"
	"github.com/bottegalab/gestionale/internal/store"
)

const defaultTopN = 5

type dashboard struct {
	PaymentsByMethod reports.MethodTotals `json:"paymentsByMethod"`
	CostsByMethod    reports.MethodTotals `json:"costsByMethod"`

	CostsThisMonth   decimal.Decimal `json:"costsThisMonth"`
	CostsThisQuarter decimal.Decimal `json:"costsThisQuarter"`
	CostsThisYear    decimal.Decimal `json:"costsThisYear"`

	NetProfit          decimal.Decimal `json:"netProfit"`
	QuoteConversion    float64         `json:"quoteConversion"`
	ActiveParents      int             `json:"activeParents"`
	TotalRegistrations int             `json:"totalRegistrations"`
}

// Dashboard returns the headline figures shown on the landing page.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	g := db.Conn()
	payments, err := store.List[models.Payment](g)
	if err != nil {
		storeError(w, "list payments", err)
		return
	}
	costs, err := store.List[models.OperationalCost](g)
	if err != nil {
		storeError(w, "list costs", err)
		return
	}
	quotes, err := store.List[models.Quote](g)
	if err != nil {
		storeError(w, "list quotes", err)
		return
	}
	parents, err := store.List[models.Parent](g)
	if err != nil {
		storeError(w, "list parents", err)
		return
	}
	registrations, err := store.List[models.Registration](g)
	if err != nil {
		storeError(w, "list registrations", err)
		return
	}

	now := time.Now()
	active := 0
	for _, p := range parents {
		if p.Status == models.StatusAttivo {
			active++
		}
	}

	writeJSON(w, http.StatusOK, dashboard{
		PaymentsByMethod:   reports.PaymentTotalsByMethod(payments),
		CostsByMethod:      reports.CostTotalsByMethod(costs),
		CostsThisMonth:     reports.CostsInWindow(costs, now, reports.WindowMonth),
		CostsThisQuarter:   reports.CostsInWindow(costs, now, reports.WindowQuarter),
		CostsThisYear:      reports.CostsInWindow(costs, now, reports.WindowYear),
		NetProfit:          reports.NetProfit(payments, costs),
		QuoteConversion:    reports.ConversionRate(quotes),
		ActiveParents:      active,
		TotalRegistrations: len(registrations),
	})
}

// respondReport delivers a tabular report as JSON, or as a download when
// ?format=csv / ?format=xlsx is requested.
func respondReport(w http.ResponseWriter, r *http.Request, name string, headers []string, totals []reports.GroupTotal) {
	rows := reports.GroupTotalRows(totals)
	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		if err := reports.WriteCSV(w, headers, rows); err != nil {
			config.Logger().WithError(err).Error("write csv")
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
		if err := reports.WriteXLSX(w, name, headers, rows); err != nil {
			config.Logger().WithError(err).Error("write xlsx")
		}
	default:
		writeJSON(w, http.StatusOK, totals)
	}
}

func topN(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("n")); err == nil && n > 0 {
		return n
	}
	return defaultTopN
}

func ReportCostCategories(w http.ResponseWriter, r *http.Request) {
	costs, err := store.List[models.OperationalCost](db.Conn())
	if err != nil {
		storeError(w, "list costs", err)
		return
	}
	respondReport(w, r, "costi-per-categoria",
		[]string{"Categoria", "Totale", "Voci"},
		reports.TopCostCategories(costs, topN(r)))
}

func ReportWorkshopRevenue(w http.ResponseWriter, r *http.Request) {
	g := db.Conn()
	payments, err := store.List[models.Payment](g)
	if err != nil {
		storeError(w, "list payments", err)
		return
	}
	workshops, err := store.List[models.Workshop](g)
	if err != nil {
		storeError(w, "list workshops", err)
		return
	}
	respondReport(w, r, "ricavi-per-laboratorio",
		[]string{"Laboratorio", "Totale", "Pagamenti"},
		reports.TopWorkshopRevenue(payments, workshops, topN(r)))
}

func ReportSupplierCosts(w http.ResponseWriter, r *http.Request) {
	g := db.Conn()
	costs, err := store.List[models.OperationalCost](g)
	if err != nil {
		storeError(w, "list costs", err)
		return
	}
	suppliers, err := store.List[models.Supplier](g)
	if err != nil {
		storeError(w, "list suppliers", err)
		return
	}
	respondReport(w, r, "costi-per-fornitore",
		[]string{"Fornitore", "Totale", "Voci"},
		reports.TopSupplierCosts(costs, suppliers, topN(r)))
}

func ReportLocationRevenue(w http.ResponseWriter, r *http.Request) {
	g := db.Conn()
	payments, err := store.List[models.Payment](g)
	if err != nil {
		storeError(w, "list payments", err)
		return
	}
	workshops, err := store.List[models.Workshop](g)
	if err != nil {
		storeError(w, "list workshops", err)
		return
	}
	locations, err := store.List[models.Location](g)
	if err != nil {
		storeError(w, "list locations", err)
		return
	}
	respondReport(w, r, "ricavi-per-luogo",
		[]string{"Luogo", "Totale", "Pagamenti"},
		reports.RevenueByLocation(payments, workshops, locations))
}

// ReportParticipants is richer than the grouped reports, so it has its own
// row shape for the export formats.
func ReportParticipants(w http.ResponseWriter, r *http.Request) {
	g := db.Conn()
	workshops, err := store.List[models.Workshop](g)
	if err != nil {
		storeError(w, "list workshops", err)
		return
	}
	registrations, err := store.List[models.Registration](g)
	if err != nil {
		storeError(w, "list registrations", err)
		return
	}
	payments, err := store.List[models.Payment](g)
	if err != nil {
		storeError(w, "list payments", err)
		return
	}
	costs, err := store.List[models.OperationalCost](g)
	if err != nil {
		storeError(w, "list costs", err)
		return
	}

	stats := reports.PerParticipant(workshops, registrations, payments, costs)

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "xlsx" {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	headers := []string{"Laboratorio", "Partecipanti", "Ricavi", "Costi", "Margine", "Ricavo per partecipante", "Margine per partecipante"}
	rows := make([][]string, 0, len(stats.Workshops))
	for _, e := range stats.Workshops {
		rows = append(rows, []string{
			e.WorkshopName,
			strconv.Itoa(e.Participants),
			e.Revenue.StringFixed(2),
			e.Cost.StringFixed(2),
			e.Profit.StringFixed(2),
			e.RevenuePerParticipant.StringFixed(2),
			e.ProfitPerParticipant.StringFixed(2),
		})
	}

	name := "economia-partecipanti"
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		if err := reports.WriteCSV(w, headers, rows); err != nil {
			config.Logger().WithError(err).Error("write csv")
		}
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	if err := reports.WriteXLSX(w, name, headers, rows); err != nil {
		config.Logger().WithError(err).Error("write xlsx")
	}
}
