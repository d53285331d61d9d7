package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/store"
)

const prospectQuote = `{"description":"Laboratorio estivo","amount":"100","date":"2026-03-01T00:00:00Z","status":"sent","potentialClient":{"clientType":"persona fisica","individual":{"name":"Paola","surname":"Bianchi"},"company":{},"contact":{"email":"paola@example.com"}}}`

func TestQuoteCreate_Prospect(t *testing.T) {
	api := openTestAPI(t)
	mustCreate(t, api, "/quotes", prospectQuote)
}

func TestQuoteCreate_RejectsBothRecipients(t *testing.T) {
	api := openTestAPI(t)
	parentID := mustCreate(t, api, "/parents", individualParent)

	both := `{"parentId":"` + parentID + `","description":"x","amount":"50","date":"2026-03-01T00:00:00Z","status":"sent","potentialClient":{"clientType":"persona fisica","individual":{"name":"Paola"},"company":{},"contact":{}}}`
	rec := doJSON(t, api, http.MethodPost, "/quotes", both)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	neither := `{"description":"x","amount":"50","date":"2026-03-01T00:00:00Z","status":"sent"}`
	rec = doJSON(t, api, http.MethodPost, "/quotes", neither)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQuoteDocument_AppliesStampDuty(t *testing.T) {
	api := openTestAPI(t)
	quoteID := mustCreate(t, api, "/quotes", prospectQuote)

	rec := doJSON(t, api, http.MethodGet, "/quotes/"+quoteID+"/document", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		RecipientName string          `json:"recipientName"`
		StampDuty     decimal.Decimal `json:"stampDuty"`
		Total         decimal.Decimal `json:"total"`
	}
	decodeInto(t, rec, &doc)
	if doc.RecipientName != "Paola Bianchi" {
		t.Errorf("recipient: expected Paola Bianchi, got %q", doc.RecipientName)
	}
	if !doc.StampDuty.Equal(mustDecimal(t, "2.00")) {
		t.Errorf("stampDuty: expected 2.00, got %s", doc.StampDuty)
	}
	if !doc.Total.Equal(mustDecimal(t, "102.00")) {
		t.Errorf("total: expected 102.00, got %s", doc.Total)
	}
}

func TestQuoteSetStatus_PartialUpdate(t *testing.T) {
	api := openTestAPI(t)
	quoteID := mustCreate(t, api, "/quotes", prospectQuote)

	rec := doJSON(t, api, http.MethodPut, "/quotes/"+quoteID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var q models.Quote
	decodeInto(t, rec, &q)
	if q.Status != models.QuoteApproved {
		t.Errorf("status: expected approved, got %q", q.Status)
	}
	// Only the status moved; the rest of the record is untouched.
	if q.Description != "Laboratorio estivo" {
		t.Errorf("description changed: %q", q.Description)
	}
	if q.PotentialClient == nil || q.PotentialClient.Individual.Name != "Paola" {
		t.Errorf("recipient changed: %+v", q.PotentialClient)
	}

	rec = doJSON(t, api, http.MethodPut, "/quotes/"+quoteID+"/status", `{"status":"boh"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestPaymentCreate_RejectsNonPositiveAmount(t *testing.T) {
	api := openTestAPI(t)
	parentID := mustCreate(t, api, "/parents", individualParent)
	body := `{"parentId":"` + parentID + `","description":"quota","amount":"0","paymentDate":"2026-02-01T00:00:00Z","method":"cash"}`
	rec := doJSON(t, api, http.MethodPost, "/payments", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "positivo") {
		t.Fatalf("expected amount error, got %s", rec.Body.String())
	}
}

func TestCostCreate_RejectsUnknownMethod(t *testing.T) {
	api := openTestAPI(t)
	body := `{"category":"Affitti","subCategory":"Sala","amount":"80","date":"2026-02-01T00:00:00Z","method":"bitcoin"}`
	rec := doJSON(t, api, http.MethodPost, "/costs", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReportCostCategoriesCSV(t *testing.T) {
	api := openTestAPI(t)
	cost := models.OperationalCost{Category: "Affitti", SubCategory: "Sala", Method: models.MethodCash}
	cost.Amount = mustDecimal(t, "80.50")
	if err := store.Add(db.Conn(), &cost); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, api, http.MethodGet, "/reports/costs/categories?format=csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".csv") {
		t.Errorf("expected a csv attachment, got %q", cd)
	}
	body := rec.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("expected UTF-8 BOM prefix")
	}
	if !strings.Contains(string(body), "Affitti / Sala;80.50;1") {
		t.Errorf("expected semicolon row, got %s", body)
	}
}

func TestBackupRoundTripOverHTTP(t *testing.T) {
	api := openTestAPI(t)
	mustCreate(t, api, "/parents", individualParent)

	rec := doJSON(t, api, http.MethodGet, "/backup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	exported := rec.Body.String()

	rec = doJSON(t, api, http.MethodPost, "/backup", exported)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	parents, err := store.List[models.Parent](db.Conn())
	if err != nil {
		t.Fatal(err)
	}
	if len(parents) != 1 {
		t.Fatalf("expected 1 parent after restore, got %d", len(parents))
	}
}

func TestBackupImport_RejectsPartialFile(t *testing.T) {
	api := openTestAPI(t)
	rec := doJSON(t, api, http.MethodPost, "/backup", `{"parents":[]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}
