package db

import "gorm.io/gorm"

type Database interface {
	GetDB() *gorm.DB
	// Transaction runs fn against a Database bound to a single transaction.
	// Returning an error from fn rolls the transaction back.
	Transaction(fn func(tx Database) error) error
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

func (g *GormDatabase) Transaction(fn func(tx Database) error) error {
	return g.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&GormDatabase{DB: tx})
	})
}
