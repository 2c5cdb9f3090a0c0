package repository

import (
	"novelshelf/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
