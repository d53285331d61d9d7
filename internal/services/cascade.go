package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/models"
)

var (
	ErrSupplierHasLocations = errors.New("il fornitore ha ancora luoghi associati")
	ErrLocationHasWorkshops = errors.New("il luogo ha ancora laboratori associati")
)

// ParentDeletePlan lists every record a parent deletion removes. Collecting
// the ids first and executing in one transaction replaces the old
// fire-and-hope sequence of per-record deletes: either everything goes or
// nothing does.
type ParentDeletePlan struct {
	ParentID        string   `json:"parentId"`
	ChildIDs        []string `json:"childIds"`
	RegistrationIDs []string `json:"registrationIds"`
}

func PlanParentDelete(g *gorm.DB, parentID string) (ParentDeletePlan, error) {
	plan := ParentDeletePlan{ParentID: parentID}

	var children []models.Child
	if err := g.Where("parent_id = ?", parentID).Find(&children).Error; err != nil {
		return plan, err
	}
	for _, c := range children {
		plan.ChildIDs = append(plan.ChildIDs, c.ID)
	}

	if len(plan.ChildIDs) > 0 {
		var regs []models.Registration
		if err := g.Where("child_id IN ?", plan.ChildIDs).Find(&regs).Error; err != nil {
			return plan, err
		}
		for _, r := range regs {
			plan.RegistrationIDs = append(plan.RegistrationIDs, r.ID)
		}
	}
	return plan, nil
}

func ExecuteParentDelete(g *gorm.DB, plan ParentDeletePlan) error {
	return g.Transaction(func(tx *gorm.DB) error {
		if len(plan.RegistrationIDs) > 0 {
			if err := tx.Delete(&models.Registration{}, "id IN ?", plan.RegistrationIDs).Error; err != nil {
				return err
			}
		}
		if len(plan.ChildIDs) > 0 {
			if err := tx.Delete(&models.Child{}, "id IN ?", plan.ChildIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Parent{}, "id = ?", plan.ParentID).Error
	})
}

// DeleteChild removes a child together with its registrations.
func DeleteChild(g *gorm.DB, childID string) error {
	return g.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Registration{}, "child_id = ?", childID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Child{}, "id = ?", childID).Error
	})
}

// DeleteWorkshop removes a workshop together with its registrations.
func DeleteWorkshop(g *gorm.DB, workshopID string) error {
	return g.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Registration{}, "workshop_id = ?", workshopID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workshop{}, "id = ?", workshopID).Error
	})
}

// DeleteSupplier refuses while locations still reference the supplier;
// the operator must reassign or remove them first.
func DeleteSupplier(g *gorm.DB, supplierID string) error {
	var n int64
	if err := g.Model(&models.Location{}).Where("supplier_id = ?", supplierID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrSupplierHasLocations
	}
	return g.Delete(&models.Supplier{}, "id = ?", supplierID).Error
}

// DeleteLocation refuses while workshops are still scheduled there.
func DeleteLocation(g *gorm.DB, locationID string) error {
	var n int64
	if err := g.Model(&models.Workshop{}).Where("location_id = ?", locationID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrLocationHasWorkshops
	}
	return g.Delete(&models.Location{}, "id = ?", locationID).Error
}
