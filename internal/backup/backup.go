// Package backup serializes the whole database to one JSON document (one
// top-level key per collection) and restores it. Import is all-or-nothing:
// files missing any required collection are rejected wholesale rather than
// merged, and import(export()) round-trips losslessly.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/store"
)

// Snapshot is the backup file layout. The Drive sync feature uploads and
// downloads exactly this document.
type Snapshot struct {
	CompanyProfile *models.CompanyProfile   `json:"companyProfile"`
	Workshops      []models.Workshop        `json:"workshops"`
	Parents        []models.Parent          `json:"parents"`
	Children       []models.Child           `json:"children"`
	Registrations  []models.Registration    `json:"registrations"`
	Payments       []models.Payment         `json:"payments"`
	Costs          []models.OperationalCost `json:"costs"`
	Quotes         []models.Quote           `json:"quotes"`
	Invoices       []models.Invoice         `json:"invoices"`
	Suppliers      []models.Supplier        `json:"suppliers"`
	Locations      []models.Location        `json:"locations"`

	// Later additions; older backup files without them still import.
	Campaigns        []models.Campaign        `json:"campaigns,omitempty"`
	ReminderSettings []models.ReminderSetting `json:"reminderSettings,omitempty"`
}

// ErrBadFile marks rejections of the uploaded document itself, as opposed
// to storage failures during the restore.
var ErrBadFile = errors.New("file di backup non valido")

// requiredKeys are the collections every backup file must carry.
var requiredKeys = []string{
	"companyProfile", "workshops", "parents", "children", "registrations",
	"payments", "costs", "quotes", "invoices", "suppliers", "locations",
}

func Export(g *gorm.DB) (Snapshot, error) {
	var snap Snapshot
	var err error

	var profiles []models.CompanyProfile
	if profiles, err = store.List[models.CompanyProfile](g); err != nil {
		return snap, err
	}
	if len(profiles) > 0 {
		snap.CompanyProfile = &profiles[0]
	}

	if snap.Workshops, err = store.List[models.Workshop](g); err != nil {
		return snap, err
	}
	if snap.Parents, err = store.List[models.Parent](g); err != nil {
		return snap, err
	}
	if snap.Children, err = store.List[models.Child](g); err != nil {
		return snap, err
	}
	if snap.Registrations, err = store.List[models.Registration](g); err != nil {
		return snap, err
	}
	if snap.Payments, err = store.List[models.Payment](g); err != nil {
		return snap, err
	}
	if snap.Costs, err = store.List[models.OperationalCost](g); err != nil {
		return snap, err
	}
	if snap.Quotes, err = store.List[models.Quote](g); err != nil {
		return snap, err
	}
	if snap.Invoices, err = store.List[models.Invoice](g); err != nil {
		return snap, err
	}
	if snap.Suppliers, err = store.List[models.Supplier](g); err != nil {
		return snap, err
	}
	if snap.Locations, err = store.List[models.Location](g); err != nil {
		return snap, err
	}
	if snap.Campaigns, err = store.List[models.Campaign](g); err != nil {
		return snap, err
	}
	if snap.ReminderSettings, err = store.List[models.ReminderSetting](g); err != nil {
		return snap, err
	}
	return snap, nil
}

// Validate checks that the raw document carries every required collection
// key before anything is written.
func Validate(raw []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	for _, k := range requiredKeys {
		if _, ok := keys[k]; !ok {
			return fmt.Errorf("%w: manca la collezione %q", ErrBadFile, k)
		}
	}
	return nil
}

// Import validates and then replaces every collection in one transaction.
func Import(g *gorm.DB, raw []byte) error {
	if err := Validate(raw); err != nil {
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	return Restore(g, snap)
}

func Restore(g *gorm.DB, snap Snapshot) error {
	return g.Transaction(func(tx *gorm.DB) error {
		var profiles []models.CompanyProfile
		if snap.CompanyProfile != nil {
			p := *snap.CompanyProfile
			if p.ID == "" {
				p.ID = "main"
			}
			profiles = append(profiles, p)
		}
		if err := store.Replace(tx, profiles); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Workshops); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Parents); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Children); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Registrations); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Payments); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Costs); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Quotes); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Invoices); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Suppliers); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Locations); err != nil {
			return err
		}
		if err := store.Replace(tx, snap.Campaigns); err != nil {
			return err
		}
		return store.Replace(tx, snap.ReminderSettings)
	})
}
