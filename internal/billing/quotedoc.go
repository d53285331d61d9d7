package billing

import (
	"github.com/shopspring/decimal"

	"github.com/bottegalab/gestionale/internal/models"
)

// QuoteDocument is the structured payload handed to the external PDF
// renderer: the quote, the resolved recipient and the issuing company,
// with the stamp-duty math already done.
type QuoteDocument struct {
	Quote   models.Quote          `json:"quote"`
	Company models.CompanyProfile `json:"company"`

	RecipientName    string               `json:"recipientName"`
	RecipientDetails models.ClientDetails `json:"recipientDetails"`

	Amount    decimal.Decimal `json:"amount"`
	StampDuty decimal.Decimal `json:"stampDuty"`
	Total     decimal.Decimal `json:"total"`
}

// BuildQuoteDocument resolves the quote's recipient: the referenced parent
// when parentId is set, the embedded prospect otherwise.
func BuildQuoteDocument(q models.Quote, parent *models.Parent, company models.CompanyProfile) QuoteDocument {
	doc := QuoteDocument{
		Quote:     q,
		Company:   company,
		Amount:    q.Amount,
		StampDuty: StampDuty(q.Amount),
		Total:     DisplayTotal(q.Amount),
	}
	switch {
	case parent != nil:
		doc.RecipientName = parent.DisplayName()
		doc.RecipientDetails = models.ClientDetails{
			ClientType: parent.ClientType,
			Individual: parent.Individual,
			Company:    parent.Company,
			Contact:    parent.Contact,
		}
	case q.PotentialClient != nil:
		doc.RecipientName = q.PotentialClient.DisplayName()
		doc.RecipientDetails = *q.PotentialClient
	}
	return doc
}
