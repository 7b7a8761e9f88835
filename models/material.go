package models

import (
	"time"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialLineItem struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	TenantId  string `gorm:"type:char(36);index;not null" json:"tenant_id"`
	ProjectId string `gorm:"type:char(36);index;not null" json:"project_id" binding:"required"`

	Category    MaterialCategory `gorm:"size:20;not null;index" json:"category" binding:"required"`
	Description string           `gorm:"size:500;not null" json:"description" binding:"required"`

	Quantity      decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	Unit          UnitOfMeasure   `gorm:"size:10;not null" json:"unit" binding:"required"`
	WastageFactor decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0" json:"wastage_factor"`

	// Computed server-side on every save; never trusted from input.
	TotalQty  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"total_qty"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_cost"`
	TotalCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"`

	Vendor  *string `gorm:"size:255" json:"vendor"`
	CsiCode *string `gorm:"size:20" json:"csi_code"`
	Notes   *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *MaterialLineItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *MaterialLineItem) BeforeSave(tx *gorm.DB) error {
	return m.ComputeTotals()
}

// ComputeTotals recomputes total_qty and total_cost through the calculation
// engine. Quantity and wastage validation surface as CalculationError.
func (m *MaterialLineItem) ComputeTotals() error {
	totalQty, err := calculation.TakeoffTotalQty(m.Quantity.InexactFloat64(), m.WastageFactor.InexactFloat64())
	if err != nil {
		return err
	}
	totalCost, err := calculation.TotalCost(totalQty.InexactFloat64(), m.UnitCost.InexactFloat64())
	if err != nil {
		return err
	}
	m.TotalQty = totalQty
	m.TotalCost = totalCost
	return nil
}
