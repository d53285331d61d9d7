package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/billing"
	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/store"

	"github.com/shopspring/decimal"
)

func checkAmount(amount decimal.Decimal) []string {
	if amount.LessThanOrEqual(decimal.Zero) {
		return []string{"l'importo deve essere positivo"}
	}
	return nil
}

func checkMethod(m models.PaymentMethod) []string {
	switch m {
	case models.MethodCash, models.MethodTransfer, models.MethodCard, models.MethodUnspecified:
		return nil
	}
	return []string{"metodo di pagamento non valido"}
}

func parentExists(id string) bool {
	_, err := store.Get[models.Parent](db.Conn(), id)
	return err == nil
}

// --- Payments ---

func PaymentsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Payment](w)
}

func checkPayment(p models.Payment) []string {
	problems := append(checkAmount(p.Amount), checkMethod(p.Method)...)
	if p.ParentID == "" {
		problems = append(problems, "il cliente è obbligatorio")
	} else if !parentExists(p.ParentID) {
		problems = append(problems, "il cliente indicato non esiste")
	}
	if p.WorkshopID == "" && p.Description == "" {
		problems = append(problems, "indicare il laboratorio oppure una descrizione")
	}
	if p.PaymentDate.IsZero() {
		problems = append(problems, "la data di pagamento è obbligatoria")
	}
	return problems
}

func PaymentCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if !readJSON(w, r, &p) {
		return
	}
	if problems := checkPayment(p); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	p.ID = ""
	createRecord(w, &p)
}

func PaymentUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Payment](w, r)
	if !ok {
		return
	}
	var p models.Payment
	if !readJSON(w, r, &p) {
		return
	}
	if problems := checkPayment(p); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	saveRecord(w, &p)
}

func PaymentDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.Payment](w, r)
}

// --- Operational costs ---

func CostsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.OperationalCost](w)
}

func checkCost(c models.OperationalCost) []string {
	problems := append(checkAmount(c.Amount), checkMethod(c.Method)...)
	if c.Category == "" {
		problems = append(problems, "la categoria è obbligatoria")
	}
	if c.Date.IsZero() {
		problems = append(problems, "la data è obbligatoria")
	}
	return problems
}

func CostCreate(w http.ResponseWriter, r *http.Request) {
	var c models.OperationalCost
	if !readJSON(w, r, &c) {
		return
	}
	if problems := checkCost(c); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	c.ID = ""
	createRecord(w, &c)
}

func CostUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.OperationalCost](w, r)
	if !ok {
		return
	}
	var c models.OperationalCost
	if !readJSON(w, r, &c) {
		return
	}
	if problems := checkCost(c); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	saveRecord(w, &c)
}

func CostDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.OperationalCost](w, r)
}

// --- Quotes ---

func QuotesList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Quote](w)
}

// checkQuote enforces the exactly-one-recipient invariant: either an
// existing client or an embedded prospect, never both, never neither.
func checkQuote(q models.Quote) []string {
	problems := checkAmount(q.Amount)
	switch {
	case q.ParentID != "" && q.PotentialClient != nil:
		problems = append(problems, "indicare un cliente esistente oppure un potenziale cliente, non entrambi")
	case q.ParentID == "" && q.PotentialClient == nil:
		problems = append(problems, "indicare il destinatario del preventivo")
	case q.ParentID != "" && !parentExists(q.ParentID):
		problems = append(problems, "il cliente indicato non esiste")
	}
	switch q.Status {
	case models.QuoteSent, models.QuoteApproved, models.QuoteRejected:
	default:
		problems = append(problems, "stato del preventivo non valido")
	}
	if q.Date.IsZero() {
		problems = append(problems, "la data è obbligatoria")
	}
	return problems
}

func QuoteCreate(w http.ResponseWriter, r *http.Request) {
	var q models.Quote
	if !readJSON(w, r, &q) {
		return
	}
	if problems := checkQuote(q); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	q.ID = ""
	createRecord(w, &q)
}

func QuoteUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Quote](w, r)
	if !ok {
		return
	}
	var q models.Quote
	if !readJSON(w, r, &q) {
		return
	}
	if problems := checkQuote(q); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	q.ID = id
	q.CreatedAt = existing.CreatedAt
	saveRecord(w, &q)
}

func QuoteDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.Quote](w, r)
}

type quoteStatusRequest struct {
	Status models.QuoteStatus `json:"status"`
}

// QuoteSetStatus records the outcome of a sent quote, a partial update so
// the operator can decide without resubmitting the whole record.
func QuoteSetStatus(w http.ResponseWriter, r *http.Request) {
	_, id, ok := loadForUpdate[models.Quote](w, r)
	if !ok {
		return
	}
	var req quoteStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	switch req.Status {
	case models.QuoteSent, models.QuoteApproved, models.QuoteRejected:
	default:
		writeError(w, http.StatusBadRequest, "dati non validi", "stato del preventivo non valido")
		return
	}
	if err := store.Update[models.Quote](db.Conn(), id, map[string]any{"status": req.Status}); err != nil {
		storeError(w, "update quote status", err)
		return
	}
	q, err := store.Get[models.Quote](db.Conn(), id)
	if err != nil {
		storeError(w, "get quote", err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// QuoteDocument returns the structured payload the external PDF renderer
// consumes, with the stamp-duty surcharge already applied.
func QuoteDocument(w http.ResponseWriter, r *http.Request) {
	q, _, ok := loadForUpdate[models.Quote](w, r)
	if !ok {
		return
	}

	var parent *models.Parent
	if q.ParentID != "" {
		p, err := store.Get[models.Parent](db.Conn(), q.ParentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			storeError(w, "get quote parent", err)
			return
		}
		if err == nil {
			parent = &p
		}
	}

	var profile models.CompanyProfile
	if err := db.Conn().First(&profile, "id = ?", companyProfileID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		storeError(w, "get company profile", err)
		return
	}

	writeJSON(w, http.StatusOK, billing.BuildQuoteDocument(q, parent, profile))
}

// --- Invoices ---

func InvoicesList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Invoice](w)
}

func checkInvoice(inv models.Invoice) []string {
	problems := append(checkAmount(inv.Amount), checkMethod(inv.Method)...)
	if inv.ParentID == "" {
		problems = append(problems, "il cliente è obbligatorio")
	} else if !parentExists(inv.ParentID) {
		problems = append(problems, "il cliente indicato non esiste")
	}
	if inv.SdiNumber == "" {
		problems = append(problems, "il numero SDI è obbligatorio")
	}
	if inv.IssueDate.IsZero() {
		problems = append(problems, "la data di emissione è obbligatoria")
	}
	return problems
}

func InvoiceCreate(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if !readJSON(w, r, &inv) {
		return
	}
	if problems := checkInvoice(inv); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	inv.ID = ""
	createRecord(w, &inv)
}

func InvoiceUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Invoice](w, r)
	if !ok {
		return
	}
	var inv models.Invoice
	if !readJSON(w, r, &inv) {
		return
	}
	if problems := checkInvoice(inv); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	inv.ID = id
	inv.CreatedAt = existing.CreatedAt
	saveRecord(w, &inv)
}

func InvoiceDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.Invoice](w, r)
}
