// seed-dev provisions a local development tenant with a demo project, a
// handful of material line items and a baseline schedule.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-dev
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/buildsite_backend/appctx"
	"bitbucket.org/mmdatafocus/buildsite_backend/config"
	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"bitbucket.org/mmdatafocus/buildsite_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	demoTenantName   = "Demo Builders LLC"
	demoProjectTitle = "Maple Street Residence"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	if err := models.AutoMigrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	// The guard scopes every query by tenant; the tenant lookup itself must
	// bypass it.
	ctx = appctx.Set(ctx, appctx.ContextKeySkipTenantScope, true)

	var tenant models.Tenant
	err := db.WithContext(ctx).Where("name = ?", demoTenantName).First(&tenant).Error
	if err == gorm.ErrRecordNotFound {
		tenant = models.Tenant{Name: demoTenantName}
		if err := db.WithContext(ctx).Create(&tenant).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create tenant: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created tenant", tenant.ID)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "failed to lookup tenant: %v\n", err)
		os.Exit(1)
	}

	ctx = utils.SetTenantIdInContext(context.Background(), tenant.ID)
	ctx = utils.SetUserNameInContext(ctx, "Seed")

	var existing models.BuildProject
	err = db.WithContext(ctx).Where("title = ?", demoProjectTitle).First(&existing).Error
	if err == nil {
		fmt.Println("demo project already seeded:", existing.ID)
		printToken(tenant.ID)
		return
	}
	if err != gorm.ErrRecordNotFound {
		fmt.Fprintf(os.Stderr, "failed to lookup project: %v\n", err)
		os.Exit(1)
	}

	area := decimal.NewFromInt(2400)
	budget := decimal.NewFromInt(450000)
	start := date(2026, 3, 2)
	end := date(2026, 9, 25)
	project := models.BuildProject{
		TenantId:          tenant.ID,
		Title:             demoProjectTitle,
		Status:            models.ProjectStatusActive,
		HomeAreaSqft:      &area,
		Budget:            &budget,
		BaselineStartDate: &start,
		BaselineEndDate:   &end,
	}
	if err := db.WithContext(ctx).Create(&project).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create project: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("created project", project.ID)

	materials := []models.MaterialLineItem{
		{
			Category:      models.MaterialCategoryFraming,
			Description:   "2x4 studs, 8 ft",
			Quantity:      decimal.NewFromInt(500),
			Unit:          models.UnitOfMeasure("EA"),
			WastageFactor: decimal.NewFromFloat(0.10),
			UnitCost:      decimal.NewFromFloat(3.25),
		},
		{
			Category:      models.MaterialCategoryConcrete,
			Description:   "Ready-mix 3000 PSI",
			Quantity:      decimal.NewFromInt(42),
			Unit:          models.UnitOfMeasure("CF"),
			WastageFactor: decimal.NewFromFloat(0.05),
			UnitCost:      decimal.NewFromFloat(145.00),
		},
		{
			Category:      models.MaterialCategoryRoofing,
			Description:   "Architectural shingles",
			Quantity:      decimal.NewFromInt(24),
			Unit:          models.UnitOfMeasure("SQ"),
			WastageFactor: decimal.NewFromFloat(0.15),
			UnitCost:      decimal.NewFromFloat(98.50),
		},
	}
	for i := range materials {
		materials[i].TenantId = tenant.ID
		materials[i].ProjectId = project.ID
		if err := db.WithContext(ctx).Create(&materials[i]).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create material: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("created", len(materials), "materials")

	milestones := []models.ScheduleMilestone{
		{Phase: models.MilestonePhaseSitework, Description: "Clear and grade", BaselineStartDate: date(2026, 3, 2), BaselineEndDate: date(2026, 3, 13)},
		{Phase: models.MilestonePhaseFoundation, Description: "Footings and slab", BaselineStartDate: date(2026, 3, 16), BaselineEndDate: date(2026, 4, 10)},
		{Phase: models.MilestonePhaseFraming, Description: "Frame and sheath", BaselineStartDate: date(2026, 4, 13), BaselineEndDate: date(2026, 5, 22)},
		{Phase: models.MilestonePhaseRoughIn, Description: "Mechanical rough-in", BaselineStartDate: date(2026, 5, 25), BaselineEndDate: date(2026, 6, 12)},
	}
	for i := range milestones {
		milestones[i].TenantId = tenant.ID
		milestones[i].ProjectId = project.ID
		if err := db.WithContext(ctx).Create(&milestones[i]).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create milestone: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("created", len(milestones), "milestones")

	printToken(tenant.ID)
}

func printToken(tenantID string) {
	token, err := utils.JwtGenerate(tenantID, "seed-user", "Seed", "admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		return
	}
	fmt.Println("dev token:", token)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
