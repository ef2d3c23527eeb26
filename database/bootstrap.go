package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"rwh/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&entities.RainfallNormal{}); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	if err := seedRainfall(db); err != nil {
		log.Fatalf("seed rainfall: %v", err)
	}
	return db
}

// seedRainfall installs state-level annual normals (IMD long-period
// averages, rounded) so a fresh database can answer lookups before any
// dataset import. City rows take precedence over these when imported.
func seedRainfall(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.RainfallNormal{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []entities.RainfallNormal{
		{State: "tamil nadu", AnnualMM: 945, Zone: "semi-arid"},
		{State: "karnataka", AnnualMM: 1248, Zone: "tropical"},
		{State: "maharashtra", AnnualMM: 1181, Zone: "tropical"},
		{State: "kerala", AnnualMM: 2925, Zone: "tropical-wet"},
		{State: "rajasthan", AnnualMM: 575, Zone: "arid"},
		{State: "delhi", AnnualMM: 774, Zone: "semi-arid"},
		{State: "haryana", AnnualMM: 617, Zone: "semi-arid"},
		{State: "west bengal", AnnualMM: 1750, Zone: "humid-subtropical"},
		{State: "gujarat", AnnualMM: 846, Zone: "semi-arid"},
		{State: "uttar pradesh", AnnualMM: 938, Zone: "humid-subtropical"},
	}
	if err := db.Create(&seeds).Error; err != nil {
		return err
	}
	log.Printf("[db] seeded %d state rainfall normals", len(seeds))
	return nil
}
