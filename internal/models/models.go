package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkshopType string

const (
	TypeOpenDay    WorkshopType = "OpenDay"
	TypeEvento     WorkshopType = "Evento"
	TypeUnMese     WorkshopType = "1 Mese"
	TypeDueMesi    WorkshopType = "2 Mesi"
	TypeTreMesi    WorkshopType = "3 Mesi"
	TypeScolastico WorkshopType = "Scolastico"
	TypeCampus     WorkshopType = "Campus"
)

// Scolastico and Campus have no fixed cadence; their length comes from an
// explicit duration-in-months field on the workshop.
func (t WorkshopType) ManualDuration() bool {
	return t == TypeScolastico || t == TypeCampus
}

type ClientType string

const (
	ClientIndividual ClientType = "persona fisica"
	ClientCompany    ClientType = "persona giuridica"
)

type ParentStatus string

const (
	StatusAttivo   ParentStatus = "attivo"
	StatusSospeso  ParentStatus = "sospeso"
	StatusCessato  ParentStatus = "cessato"
	StatusProspect ParentStatus = "prospect"
)

type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodTransfer    PaymentMethod = "transfer"
	MethodCard        PaymentMethod = "card"
	MethodUnspecified PaymentMethod = "unspecified"
)

// AllMethods is the bucket order used by per-method report tables.
var AllMethods = []PaymentMethod{MethodCash, MethodTransfer, MethodCard, MethodUnspecified}

type QuoteStatus string

const (
	QuoteSent     QuoteStatus = "sent"
	QuoteApproved QuoteStatus = "approved"
	QuoteRejected QuoteStatus = "rejected"
)

type CampaignType string

const (
	CampaignSollecito CampaignType = "sollecito"
	CampaignSviluppo  CampaignType = "sviluppo"
)

// CompanyProfile is a singleton: one row, fixed ID "main".
type CompanyProfile struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	CompanyName string `json:"companyName"`
	VatNumber   string `json:"vatNumber"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TaxRegime   string `json:"taxRegime"`
}

// IndividualDetails and CompanyDetails are the two disjoint shapes a
// Parent (or a Quote's potential client) can take. Exactly one of them is
// populated, selected by ClientType.
type IndividualDetails struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	TaxCode string `json:"taxCode"`
}

type CompanyDetails struct {
	CompanyName string `json:"companyName"`
	VatNumber   string `json:"vatNumber"`
}

type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	ZipCode  string `json:"zipCode"`
	City     string `json:"city"`
	Province string `json:"province"`
}

type Parent struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ClientType ClientType   `json:"clientType"`
	Status     ParentStatus `json:"status"`

	Individual IndividualDetails `gorm:"embedded" json:"individual"`
	Company    CompanyDetails    `gorm:"embedded;embeddedPrefix:co_" json:"company"`

	Contact ContactInfo `gorm:"embedded" json:"contact"`
}

// DisplayName picks the human name for the active shape.
func (p Parent) DisplayName() string {
	if p.ClientType == ClientCompany {
		return p.Company.CompanyName
	}
	if p.Individual.Surname == "" {
		return p.Individual.Name
	}
	return p.Individual.Name + " " + p.Individual.Surname
}

type Child struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ParentID  string    `gorm:"index" json:"parentId"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birthDate"`
}

type Workshop struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Code       string       `gorm:"index" json:"code"`
	Name       string       `json:"name"`
	Type       WorkshopType `json:"type"`
	LocationID string       `gorm:"index" json:"locationId"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	DayOfWeek string    `json:"dayOfWeek"` // "Lunedì" .. "Domenica"
	StartTime string    `json:"startTime"` // "HH:mm"
	EndTime   string    `json:"endTime"`   // "HH:mm"

	DurationInMonths int `json:"durationInMonths,omitempty"`

	Price decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}

type Registration struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ChildID          string    `gorm:"index" json:"childId"`
	WorkshopID       string    `gorm:"index" json:"workshopId"`
	RegistrationDate time.Time `json:"registrationDate"`
}

type Payment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ParentID    string          `gorm:"index" json:"parentId"`
	WorkshopID  string          `gorm:"index" json:"workshopId"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
}

type OperationalCost struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date        time.Time       `json:"date"`
	Method      PaymentMethod   `json:"method"`

	SupplierID  string   `gorm:"index" json:"supplierId,omitempty"`
	LocationID  string   `gorm:"index" json:"locationId,omitempty"`
	WorkshopIDs []string `gorm:"serializer:json" json:"workshopIds,omitempty"`
}

// ClientDetails is the embedded prospect shape on a Quote for recipients
// that are not yet clients.
type ClientDetails struct {
	ClientType ClientType        `json:"clientType"`
	Individual IndividualDetails `json:"individual"`
	Company    CompanyDetails    `json:"company"`
	Contact    ContactInfo       `json:"contact"`
}

func (c ClientDetails) DisplayName() string {
	if c.ClientType == ClientCompany {
		return c.Company.CompanyName
	}
	if c.Individual.Surname == "" {
		return c.Individual.Name
	}
	return c.Individual.Name + " " + c.Individual.Surname
}

type Quote struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Exactly one of ParentID / PotentialClient is set.
	ParentID        string         `gorm:"index" json:"parentId,omitempty"`
	PotentialClient *ClientDetails `gorm:"serializer:json" json:"potentialClient,omitempty"`

	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date        time.Time       `json:"date"`
	Status      QuoteStatus     `json:"status"`
	Method      PaymentMethod   `json:"method,omitempty"`
}

type Invoice struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ParentID  string          `gorm:"index" json:"parentId"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	SdiNumber string          `json:"sdiNumber"` // stored verbatim, never computed
	IssueDate time.Time       `json:"issueDate"`
	Method    PaymentMethod   `json:"method"`
}

type Supplier struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name      string `json:"name"`
	VatNumber string `json:"vatNumber,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type Location struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	SupplierID string `gorm:"index" json:"supplierId"`
	Name       string `json:"name"`
	ShortName  string `json:"shortName"` // ≤4 chars, derived from Name
	Address    string `json:"address"`
	ZipCode    string `json:"zipCode,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`

	Capacity   int             `json:"capacity"`
	RentalCost decimal.Decimal `gorm:"type:decimal(12,2)" json:"rentalCost"`
	DistanceKm float64         `json:"distanceKm,omitempty"`
	Color      string          `json:"color,omitempty"`
}

// Campaign is an email template with {PLACEHOLDER} tokens, optionally
// narrowed to parents in given statuses.
type Campaign struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name         string         `json:"name"`
	Type         CampaignType   `json:"type"`
	Subject      string         `json:"subject"`
	Body         string         `json:"body"`
	TargetStatus []ParentStatus `gorm:"serializer:json" json:"targetStatus,omitempty"`
}

type ReminderSetting struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name           string `json:"name"`
	PreWarningDays int    `json:"preWarningDays"`
	Cadence        int    `json:"cadence"` // repeat every N days
	Enabled        bool   `json:"enabled"`
}

// ReminderLog records that a renewal reminder went out for a registration,
// so the cadence window survives restarts.
type ReminderLog struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`

	SettingID      string    `gorm:"index" json:"settingId"`
	RegistrationID string    `gorm:"index" json:"registrationId"`
	SentAt         time.Time `json:"sentAt"`
}
