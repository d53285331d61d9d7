package backup

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// seedAll puts at least one record in every collection.
func seedAll(t *testing.T, g *gorm.DB) {
	t.Helper()
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	must(g.Create(&models.CompanyProfile{ID: "main", CompanyName: "Bottega Lab", VatNumber: "IT01234567890"}).Error)

	supplier := models.Supplier{Name: "Comune"}
	must(g.Create(&supplier).Error)

	location := models.Location{SupplierID: supplier.ID, Name: "Biblioteca", ShortName: "BBLT", Capacity: 20, RentalCost: decimal.New(5000, -2)}
	must(g.Create(&location).Error)

	workshop := models.Workshop{
		Code: "BBLT-LUN-15:00", Name: "Robotica", Type: models.TypeUnMese,
		LocationID: location.ID, StartDate: date, EndDate: date.AddDate(0, 0, 21),
		DayOfWeek: "Lunedì", StartTime: "15:00", EndTime: "16:00",
		Price: decimal.New(8000, -2),
	}
	must(g.Create(&workshop).Error)

	parent := models.Parent{
		ClientType: models.ClientIndividual, Status: models.StatusAttivo,
		Individual: models.IndividualDetails{Name: "Anna", Surname: "Bianchi", TaxCode: "BNCNNA80A41H501X"},
		Contact:    models.ContactInfo{Email: "anna@example.com"},
	}
	must(g.Create(&parent).Error)

	child := models.Child{ParentID: parent.ID, Name: "Luca", BirthDate: date.AddDate(-6, 0, 0)}
	must(g.Create(&child).Error)

	must(g.Create(&models.Registration{ChildID: child.ID, WorkshopID: workshop.ID, RegistrationDate: date}).Error)
	must(g.Create(&models.Payment{ParentID: parent.ID, WorkshopID: workshop.ID, Amount: decimal.New(8000, -2), PaymentDate: date, Method: models.MethodCash}).Error)
	must(g.Create(&models.OperationalCost{Category: "Affitti", SubCategory: "Sale", Amount: decimal.New(5000, -2), Date: date, Method: models.MethodTransfer, SupplierID: supplier.ID, WorkshopIDs: []string{workshop.ID}}).Error)
	must(g.Create(&models.Quote{ParentID: parent.ID, Description: "Campus estivo", Amount: decimal.New(20000, -2), Date: date, Status: models.QuoteSent}).Error)
	must(g.Create(&models.Invoice{ParentID: parent.ID, Amount: decimal.New(8000, -2), SdiNumber: "0000123", IssueDate: date, Method: models.MethodTransfer}).Error)
	must(g.Create(&models.Campaign{Name: "Rinnovi", Type: models.CampaignSollecito, Subject: "Ciao {NOME_CLIENTE}", Body: "..."}).Error)
	must(g.Create(&models.ReminderSetting{Name: "Fine corso", PreWarningDays: 7, Cadence: 3, Enabled: true}).Error)
}

// import(export(state)) must restore identical collections.
func TestRoundTrip(t *testing.T) {
	g := openTestDB(t)
	seedAll(t, g)

	snap, err := Export(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Restore into a fresh database and compare exports.
	g2 := openTestDB(t)
	if err := Import(g2, raw); err != nil {
		t.Fatalf("import: %v", err)
	}

	snap2, err := Export(g2)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	raw2, err := json.Marshal(snap2)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(raw) != string(raw2) {
		t.Errorf("round trip is not lossless:\n first: %s\nsecond: %s", raw, raw2)
	}
}

func TestImport_ReplacesExistingData(t *testing.T) {
	g := openTestDB(t)
	seedAll(t, g)
	snap, err := Export(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, _ := json.Marshal(snap)

	// Target DB has its own unrelated supplier that must disappear.
	g2 := openTestDB(t)
	if err := g2.Create(&models.Supplier{Name: "Residuo"}).Error; err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if err := Import(g2, raw); err != nil {
		t.Fatalf("import: %v", err)
	}

	var suppliers []models.Supplier
	g2.Find(&suppliers)
	if len(suppliers) != 1 || suppliers[0].Name != "Comune" {
		t.Errorf("import should replace, not merge: %+v", suppliers)
	}
}

func TestValidate_RejectsPartialFile(t *testing.T) {
	partial := `{"workshops": [], "parents": []}`
	err := Validate([]byte(partial))
	if err == nil {
		t.Fatal("partial backup accepted")
	}
	if !strings.Contains(err.Error(), "manca la collezione") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_AcceptsNullCollections(t *testing.T) {
	// Keys must be present; explicit nulls are fine (empty deployment).
	doc := `{"companyProfile":null,"workshops":[],"parents":[],"children":[],` +
		`"registrations":[],"payments":[],"costs":[],"quotes":[],"invoices":[],` +
		`"suppliers":[],"locations":[]}`
	if err := Validate([]byte(doc)); err != nil {
		t.Errorf("complete file rejected: %v", err)
	}
}

func TestImport_RejectsGarbage(t *testing.T) {
	if err := Import(openTestDB(t), []byte("not json")); err == nil {
		t.Fatal("garbage accepted")
	}
}
