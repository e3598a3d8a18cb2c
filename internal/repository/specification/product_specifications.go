package specification

import "gorm.io/gorm"

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

type ByFingerprint struct {
	Fingerprint string
}

func (s ByFingerprint) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("fingerprint = ?", s.Fingerprint)
}

// PriceBetween bounds price inclusively. A zero Max means "no ceiling".
type PriceBetween struct {
	Min int
	Max int
}

func (s PriceBetween) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("price >= ?", s.Min)
	if s.Max > 0 {
		db = db.Where("price <= ?", s.Max)
	}
	return db
}
