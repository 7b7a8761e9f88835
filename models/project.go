package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Tenant struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type BuildProject struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	TenantId string `gorm:"type:char(36);index;not null" json:"tenant_id"`

	Title   string  `gorm:"size:255;not null" json:"title" binding:"required"`
	Address *string `gorm:"size:500" json:"address"`
	City    *string `gorm:"size:100" json:"city"`
	State   *string `gorm:"size:50" json:"state"`
	ZipCode *string `gorm:"size:20" json:"zip_code"`

	Status       ProjectStatus    `gorm:"size:20;not null;default:PLANNING" json:"status"`
	HomeAreaSqft *decimal.Decimal `gorm:"type:decimal(10,2)" json:"home_area_sqft"`
	Budget       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"budget"`

	BaselineStartDate *time.Time `gorm:"type:date" json:"baseline_start_date"`
	BaselineEndDate   *time.Time `gorm:"type:date" json:"baseline_end_date"`
	ActualStartDate   *time.Time `gorm:"type:date" json:"actual_start_date"`
	ActualEndDate     *time.Time `gorm:"type:date" json:"actual_end_date"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *BuildProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}
	return nil
}
