package main

import (
	"log"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/catalog"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dsn"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	err = db.AutoMigrate(
		&ds.User{},
		&ds.Tenant{},
		&ds.OrgUser{},
		&ds.LicenseAssignment{},
		&ds.UsageRecord{},
		&ds.PriceQuotation{},
		&ds.Analysis{},
		&ds.Recommendation{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Database seeded successfully")
}

// seed loads the demo tenant and a price catalog for the three tiers.
// Safe to run repeatedly: it does nothing when a tenant already exists.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&ds.Tenant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already seeded, skipping")
		return nil
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	prices := []ds.PriceQuotation{
		{SkuID: catalog.SkuTop, Market: "US", Currency: "USD", Segment: "Corporate",
			UnitPrice: decimal.RequireFromString("57.00"), EffectiveStart: start, EffectiveEnd: end},
		{SkuID: catalog.SkuMid, Market: "US", Currency: "USD", Segment: "Corporate",
			UnitPrice: decimal.RequireFromString("36.00"), EffectiveStart: start, EffectiveEnd: end},
		{SkuID: catalog.SkuBase, Market: "US", Currency: "USD", Segment: "Corporate",
			UnitPrice: decimal.RequireFromString("10.00"), EffectiveStart: start, EffectiveEnd: end},
	}
	if err := db.Create(&prices).Error; err != nil {
		return err
	}

	tenant := ds.Tenant{
		ID:        uuid.New(),
		Name:      "Contoso Ltd",
		Market:    "US",
		Currency:  "USD",
		Segment:   "Corporate",
		CreatedAt: time.Now(),
	}
	if err := db.Create(&tenant).Error; err != nil {
		return err
	}

	periodEnd := time.Now().AddDate(0, 0, -1)

	demo := []struct {
		upn     string
		name    string
		enabled bool
		sku     string
		usage   ds.UsageRecord
	}{
		{"alice@contoso.com", "Alice Anderson", true, catalog.SkuTop, ds.UsageRecord{
			EmailsSent: 90, OneDriveFilesTouched: 40, SharePointFilesTouched: 45,
			TeamsChatMessages: 60, TeamsMeetingsAttended: 3, OfficeFilesTouched: 25,
		}},
		{"bob@contoso.com", "Bob Brown", true, catalog.SkuTop, ds.UsageRecord{
			EmailsSent: 20, OneDriveFilesTouched: 5, TeamsChatMessages: 10, OfficeFilesTouched: 8,
		}},
		{"carol@contoso.com", "Carol Clark", true, catalog.SkuMid, ds.UsageRecord{
			EmailsSent: 40, OneDriveFilesTouched: 15, TeamsChatMessages: 30,
		}},
		{"dave@contoso.com", "Dave Davis", false, catalog.SkuMid, ds.UsageRecord{}},
		{"erin@contoso.com", "Erin Evans", true, catalog.SkuMid, ds.UsageRecord{EmailsSent: 1}},
		{"frank@contoso.com", "Frank Foster", true, "", ds.UsageRecord{}},
	}

	for _, d := range demo {
		user := ds.OrgUser{
			ID:                uuid.New(),
			TenantID:          tenant.ID,
			UserPrincipalName: d.upn,
			DisplayName:       d.name,
			AccountEnabled:    d.enabled,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}

		if d.sku != "" {
			assignment := ds.LicenseAssignment{
				OrgUserID:  user.ID,
				SkuID:      d.sku,
				AssignedAt: tenant.CreatedAt,
			}
			if err := db.Create(&assignment).Error; err != nil {
				return err
			}
		}

		usage := d.usage
		usage.OrgUserID = user.ID
		usage.PeriodEnd = periodEnd
		if err := db.Create(&usage).Error; err != nil {
			return err
		}
	}

	return nil
}
