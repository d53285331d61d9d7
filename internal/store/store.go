// Package store is the entity gateway: per-collection list/add/update/remove
// with no gateway-level filtering or pagination. All filtering happens in the
// computation layer over full in-memory slices.
package store

import "gorm.io/gorm"

// List returns every record in T's collection.
func List[T any](g *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	err := g.Find(&out).Error
	return out, err
}

func Get[T any](g *gorm.DB, id string) (T, error) {
	var rec T
	err := g.First(&rec, "id = ?", id).Error
	return rec, err
}

// Add inserts item and returns its id (assigned by the model hook when the
// caller left it empty).
func Add[T any](g *gorm.DB, item *T) error {
	return g.Create(item).Error
}

// Update applies a partial update to one record.
func Update[T any](g *gorm.DB, id string, updates map[string]any) error {
	var m T
	return g.Model(&m).Where("id = ?", id).Updates(updates).Error
}

// Save writes back a full record.
func Save[T any](g *gorm.DB, item *T) error {
	return g.Save(item).Error
}

func Remove[T any](g *gorm.DB, id string) error {
	var m T
	return g.Delete(&m, "id = ?", id).Error
}

// Replace swaps a collection wholesale. Backup import uses it so a restore
// is exact: no merging with whatever was there before.
func Replace[T any](g *gorm.DB, items []T) error {
	var m T
	if err := g.Where("1 = 1").Delete(&m).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return g.Create(&items).Error
}
