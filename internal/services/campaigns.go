package services

import (
	"strings"

	"github.com/bottegalab/gestionale/internal/mail"
	"github.com/bottegalab/gestionale/internal/models"
)

// Audience filters parents down to the campaign's target statuses (all
// parents when no target is set) and drops anyone without an email.
func Audience(c models.Campaign, parents []models.Parent) []models.Parent {
	wanted := make(map[models.ParentStatus]bool, len(c.TargetStatus))
	for _, s := range c.TargetStatus {
		wanted[s] = true
	}
	out := make([]models.Parent, 0, len(parents))
	for _, p := range parents {
		if p.Contact.Email == "" {
			continue
		}
		if len(wanted) > 0 && !wanted[p.Status] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RenderCampaign substitutes the {PLACEHOLDER} tokens in subject and body
// for one recipient.
func RenderCampaign(c models.Campaign, p models.Parent) (subject, body string) {
	r := strings.NewReplacer(
		"{NOME_CLIENTE}", firstName(p),
		"{COGNOME_CLIENTE}", p.Individual.Surname,
		"{NOME_COMPLETO}", p.DisplayName(),
		"{NOME_AZIENDA}", p.Company.CompanyName,
	)
	return r.Replace(c.Subject), r.Replace(c.Body)
}

func firstName(p models.Parent) string {
	if p.ClientType == models.ClientCompany {
		return p.Company.CompanyName
	}
	return p.Individual.Name
}

// SendCampaign renders and sends to every recipient, returning how many
// messages went out and the first error encountered (remaining recipients
// are still attempted).
func SendCampaign(m mail.Service, c models.Campaign, parents []models.Parent) (int, error) {
	sent := 0
	var firstErr error
	for _, p := range Audience(c, parents) {
		subject, body := RenderCampaign(c, p)
		err := m.Send(mail.Message{
			To:      p.Contact.Email,
			ToName:  p.DisplayName(),
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent++
	}
	return sent, firstErr
}
