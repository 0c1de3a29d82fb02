package db

import "gorm.io/gorm"

// Database hides the concrete gorm handle so repositories and tests can
// share one constructor regardless of the driver behind it.
type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

// FromGorm wraps an already-open gorm handle. Tests use this with an
// in-memory sqlite connection.
func FromGorm(gdb *gorm.DB) Database {
	return &GormDatabase{DB: gdb}
}
