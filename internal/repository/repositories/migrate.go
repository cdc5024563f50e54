package repositories

import "gorm.io/gorm"

// Migrate creates or updates the tables of every @migration model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Job{},
		&Employee{},
		&Truck{},
	)
}
