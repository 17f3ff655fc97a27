package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&User{},
		&MemberRequest{},
		&Stadium{},
		&Sector{},
		&Game{},
		&Ticket{},
	)
}

// DropTables is used by integration tests to start from a clean schema.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Ticket{},
		&Game{},
		&Sector{},
		&Stadium{},
		&MemberRequest{},
		&User{},
		&Member{},
	)
}
