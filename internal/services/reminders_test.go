package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/models"
)

func seedEndingWorkshop(t *testing.T, g *gorm.DB, endsIn time.Duration, email string) models.Registration {
	t.Helper()
	p := models.Parent{
		ClientType: models.ClientIndividual,
		Individual: models.IndividualDetails{Name: "Anna", Surname: "Bianchi"},
		Contact:    models.ContactInfo{Email: email},
	}
	if err := g.Create(&p).Error; err != nil {
		t.Fatalf("create parent: %v", err)
	}
	c := models.Child{ParentID: p.ID, Name: "Luca"}
	if err := g.Create(&c).Error; err != nil {
		t.Fatalf("create child: %v", err)
	}
	w := models.Workshop{
		Name:    "Robotica",
		EndDate: time.Now().Add(endsIn),
	}
	if err := g.Create(&w).Error; err != nil {
		t.Fatalf("create workshop: %v", err)
	}
	r := models.Registration{ChildID: c.ID, WorkshopID: w.ID}
	if err := g.Create(&r).Error; err != nil {
		t.Fatalf("create registration: %v", err)
	}
	return r
}

func TestRunRenewalReminders(t *testing.T) {
	g := openTestDB(t)
	reg := seedEndingWorkshop(t, g, 3*24*time.Hour, "anna@example.com")

	// Outside the 7-day lookahead: no reminder.
	seedEndingWorkshop(t, g, 30*24*time.Hour, "late@example.com")

	s := models.ReminderSetting{Name: "Rinnovi", PreWarningDays: 7, Cadence: 3, Enabled: true}
	if err := g.Create(&s).Error; err != nil {
		t.Fatalf("create setting: %v", err)
	}

	spy := &mailSpy{}
	if err := RunRenewalReminders(g, spy, time.Now()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(spy.sent) != 1 {
		t.Fatalf("want 1 reminder, got %d", len(spy.sent))
	}
	if spy.sent[0].To != "anna@example.com" {
		t.Errorf("recipient: got %s", spy.sent[0].To)
	}

	var logs int64
	g.Model(&models.ReminderLog{}).Where("registration_id = ?", reg.ID).Count(&logs)
	if logs != 1 {
		t.Errorf("want 1 reminder log, got %d", logs)
	}
}

// A second run inside the cadence window must not re-send.
func TestRunRenewalReminders_CadenceSuppressesRepeat(t *testing.T) {
	g := openTestDB(t)
	seedEndingWorkshop(t, g, 6*24*time.Hour, "anna@example.com")

	s := models.ReminderSetting{Name: "Rinnovi", PreWarningDays: 7, Cadence: 3, Enabled: true}
	if err := g.Create(&s).Error; err != nil {
		t.Fatalf("create setting: %v", err)
	}

	spy := &mailSpy{}
	now := time.Now()
	if err := RunRenewalReminders(g, spy, now); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunRenewalReminders(g, spy, now.Add(24*time.Hour)); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(spy.sent) != 1 {
		t.Errorf("cadence not honored: %d sends", len(spy.sent))
	}

	// Past the cadence the reminder repeats.
	if err := RunRenewalReminders(g, spy, now.Add(4*24*time.Hour)); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if len(spy.sent) != 2 {
		t.Errorf("expected repeat after cadence, got %d sends", len(spy.sent))
	}
}

func TestRunRenewalReminders_DisabledSetting(t *testing.T) {
	g := openTestDB(t)
	seedEndingWorkshop(t, g, 3*24*time.Hour, "anna@example.com")

	s := models.ReminderSetting{Name: "Spento", PreWarningDays: 7, Cadence: 3, Enabled: false}
	if err := g.Create(&s).Error; err != nil {
		t.Fatalf("create setting: %v", err)
	}

	spy := &mailSpy{}
	if err := RunRenewalReminders(g, spy, time.Now()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(spy.sent) != 0 {
		t.Errorf("disabled setting sent %d reminders", len(spy.sent))
	}
}
