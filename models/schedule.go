package models

import (
	"time"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ScheduleMilestone struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	TenantId  string `gorm:"type:char(36);index;not null" json:"tenant_id"`
	ProjectId string `gorm:"type:char(36);index;not null" json:"project_id" binding:"required"`

	Phase       MilestonePhase `gorm:"size:20;not null;index" json:"phase" binding:"required"`
	Description string         `gorm:"size:500" json:"description"`

	BaselineStartDate time.Time  `gorm:"type:date;not null" json:"baseline_start_date" binding:"required"`
	BaselineEndDate   time.Time  `gorm:"type:date;not null" json:"baseline_end_date" binding:"required"`
	ActualStartDate   *time.Time `gorm:"type:date" json:"actual_start_date"`
	ActualEndDate     *time.Time `gorm:"type:date" json:"actual_end_date"`

	PercentComplete decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"percent_complete"`

	Notes *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *ScheduleMilestone) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

const dateLayout = "2006-01-02"

// VarianceDays returns the schedule variance against the baseline end date.
// Positive = ahead of schedule. asOfDate ("" = today) only applies while the
// milestone has no actual end date.
func (s *ScheduleMilestone) VarianceDays(asOfDate string) (int, error) {
	actual := ""
	if s.ActualEndDate != nil {
		actual = s.ActualEndDate.Format(dateLayout)
	}
	return calculation.ScheduleVarianceDays(s.BaselineEndDate.Format(dateLayout), actual, asOfDate)
}

// EarnedValue returns the budgeted cost of work performed for this milestone
// given the project budget attributable to it.
func (s *ScheduleMilestone) EarnedValue(budget decimal.Decimal) (decimal.Decimal, error) {
	return calculation.EarnedValue(budget.InexactFloat64(), s.PercentComplete.InexactFloat64())
}
