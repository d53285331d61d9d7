package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/config"
	"github.com/bottegalab/gestionale/internal/mail"
	"github.com/bottegalab/gestionale/internal/models"
)

// StartRenewalReminderLoop periodically mails parents whose children's
// workshop series are about to end, per the enabled reminder settings.
// Disabled unless REMINDERS_ENABLED=1.
func StartRenewalReminderLoop(g *gorm.DB, m mail.Service) {
	if config.Env("REMINDERS_ENABLED", "") != "1" {
		return
	}
	interval := time.Duration(config.EnvInt("REMINDER_INTERVAL_MINUTES", 60)) * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := RunRenewalReminders(g, m, time.Now()); err != nil {
				config.Logger().WithError(err).Error("renewal reminder run failed")
			}
		}
	}()
}

type renewalRow struct {
	RegistrationID string
	ChildName      string
	WorkshopName   string
	EndDate        time.Time
	ParentEmail    string
	ParentName     string
	ParentSurname  string
	CompanyName    string
}

// RunRenewalReminders does one pass: for every enabled setting, find the
// registrations whose workshop ends within the pre-warning window, skip
// those reminded less than a cadence ago, and mail the rest.
func RunRenewalReminders(g *gorm.DB, m mail.Service, now time.Time) error {
	var settings []models.ReminderSetting
	if err := g.Where("enabled = ?", true).Find(&settings).Error; err != nil {
		return err
	}

	for _, s := range settings {
		horizon := now.AddDate(0, 0, s.PreWarningDays)

		var rows []renewalRow
		err := g.Table("registrations r").
			Select(`r.id as registration_id,
			        children.name as child_name,
			        workshops.name as workshop_name,
			        workshops.end_date as end_date,
			        parents.email as parent_email,
			        parents.name as parent_name,
			        parents.surname as parent_surname,
			        parents.co_company_name as company_name`).
			Joins("JOIN children ON children.id = r.child_id").
			Joins("JOIN workshops ON workshops.id = r.workshop_id").
			Joins("JOIN parents ON parents.id = children.parent_id").
			Where("workshops.end_date >= ? AND workshops.end_date <= ?", now, horizon).
			Scan(&rows).Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			if row.ParentEmail == "" {
				continue
			}
			if sentRecently(g, s, row.RegistrationID, now) {
				continue
			}

			toName := row.ParentName + " " + row.ParentSurname
			if row.CompanyName != "" {
				toName = row.CompanyName
			}
			err := m.Send(mail.Message{
				To:      row.ParentEmail,
				ToName:  toName,
				Subject: fmt.Sprintf("Il laboratorio %q sta per concludersi", row.WorkshopName),
				Body: fmt.Sprintf(
					"Gentile cliente,\n\nil laboratorio %q a cui è iscritto/a %s terminerà il %s.\nContattaci per rinnovare l'iscrizione.\n",
					row.WorkshopName, row.ChildName, row.EndDate.Format("02/01/2006")),
			})
			if err != nil {
				config.Logger().WithError(err).WithField("registration", row.RegistrationID).
					Error("renewal reminder send failed")
				continue
			}
			log := models.ReminderLog{SettingID: s.ID, RegistrationID: row.RegistrationID, SentAt: now}
			if err := g.Create(&log).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func sentRecently(g *gorm.DB, s models.ReminderSetting, registrationID string, now time.Time) bool {
	cadence := s.Cadence
	if cadence <= 0 {
		cadence = 1
	}
	since := now.AddDate(0, 0, -cadence)
	var n int64
	g.Model(&models.ReminderLog{}).
		Where("setting_id = ? AND registration_id = ? AND sent_at > ?", s.ID, registrationID, since).
		Count(&n)
	return n > 0
}
