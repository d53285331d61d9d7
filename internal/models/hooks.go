package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collections are document-store style: every record carries an opaque
// string id, assigned on insert unless the caller (e.g. backup import)
// already set one.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (p *Parent) BeforeCreate(*gorm.DB) error          { ensureID(&p.ID); return nil }
func (c *Child) BeforeCreate(*gorm.DB) error           { ensureID(&c.ID); return nil }
func (w *Workshop) BeforeCreate(*gorm.DB) error        { ensureID(&w.ID); return nil }
func (r *Registration) BeforeCreate(*gorm.DB) error    { ensureID(&r.ID); return nil }
func (p *Payment) BeforeCreate(*gorm.DB) error         { ensureID(&p.ID); return nil }
func (c *OperationalCost) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
func (q *Quote) BeforeCreate(*gorm.DB) error           { ensureID(&q.ID); return nil }
func (i *Invoice) BeforeCreate(*gorm.DB) error         { ensureID(&i.ID); return nil }
func (s *Supplier) BeforeCreate(*gorm.DB) error        { ensureID(&s.ID); return nil }
func (l *Location) BeforeCreate(*gorm.DB) error        { ensureID(&l.ID); return nil }
func (c *Campaign) BeforeCreate(*gorm.DB) error        { ensureID(&c.ID); return nil }
func (r *ReminderSetting) BeforeCreate(*gorm.DB) error { ensureID(&r.ID); return nil }
func (l *ReminderLog) BeforeCreate(*gorm.DB) error     { ensureID(&l.ID); return nil }
