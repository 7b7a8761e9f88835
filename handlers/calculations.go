package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
	"github.com/gin-gonic/gin"
)

// Stateless calculation endpoints. Inputs come in as JSON numbers; results go
// out as decimal strings so no precision is lost on the wire.

type floorAreaRequest struct {
	LengthFt float64 `json:"length_ft" binding:"required"`
	WidthFt  float64 `json:"width_ft" binding:"required"`
}

func CalculateFloorArea(c *gin.Context) {
	var req floorAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "CalculateFloorArea", err)
		return
	}
	area, err := calculation.FloorArea(req.LengthFt, req.WidthFt)
	if err != nil {
		abortWithError(c, "CalculateFloorArea", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"area_sqft": area})
}

type volumeRequest struct {
	LengthFt float64 `json:"length_ft" binding:"required"`
	WidthFt  float64 `json:"width_ft" binding:"required"`
	HeightFt float64 `json:"height_ft" binding:"required"`
}

func CalculateVolume(c *gin.Context) {
	var req volumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "CalculateVolume", err)
		return
	}
	volume, err := calculation.Volume(req.LengthFt, req.WidthFt, req.HeightFt)
	if err != nil {
		abortWithError(c, "CalculateVolume", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"volume_cuft": volume})
}

type takeoffRequest struct {
	Quantity      float64 `json:"quantity"`
	WastageFactor float64 `json:"wastage_factor"`
	UnitCost      float64 `json:"unit_cost"`
}

// CalculateTakeoff composes total quantity with wastage and the resulting
// total cost in one call, the way a takeoff line is priced.
func CalculateTakeoff(c *gin.Context) {
	var req takeoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "CalculateTakeoff", err)
		return
	}
	totalQty, err := calculation.TakeoffTotalQty(req.Quantity, req.WastageFactor)
	if err != nil {
		abortWithError(c, "CalculateTakeoff", err)
		return
	}
	totalCost, err := calculation.TotalCost(totalQty.InexactFloat64(), req.UnitCost)
	if err != nil {
		abortWithError(c, "CalculateTakeoff", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_qty":  totalQty,
		"total_cost": totalCost,
	})
}

type costPerSqftRequest struct {
	TotalCost float64 `json:"total_cost"`
	AreaSqft  float64 `json:"area_sqft" binding:"required"`
}

func CalculateCostPerSqft(c *gin.Context) {
	var req costPerSqftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "CalculateCostPerSqft", err)
		return
	}
	perSqft, err := calculation.CostPerSqft(req.TotalCost, req.AreaSqft)
	if err != nil {
		abortWithError(c, "CalculateCostPerSqft", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cost_per_sqft": perSqft})
}

type earnedValueRequest struct {
	Budget          float64  `json:"budget"`
	PercentComplete float64  `json:"percent_complete"`
	ActualCost      *float64 `json:"actual_cost"`
}

// CalculateEarnedValue returns BCWP and, when actual_cost is supplied, the
// cost variance against it.
func CalculateEarnedValue(c *gin.Context) {
	var req earnedValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "CalculateEarnedValue", err)
		return
	}
	ev, err := calculation.EarnedValue(req.Budget, req.PercentComplete)
	if err != nil {
		abortWithError(c, "CalculateEarnedValue", err)
		return
	}
	resp := gin.H{"earned_value": ev}
	if req.ActualCost != nil {
		resp["cost_variance"] = calculation.CostVariance(ev.InexactFloat64(), *req.ActualCost)
	}
	c.JSON(http.StatusOK, resp)
}

type scheduleVarianceRequest struct {
	BaselineEndDate string `json:"baseline_end_date" binding:"required"`
	ActualEndDate   string `json:"actual_end_date"`
	AsOfDate        string `json:"as_of_date"`
}

func CalculateScheduleVariance(c *gin.Context) {
	var req scheduleVarianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "CalculateScheduleVariance", err)
		return
	}
	days, err := calculation.ScheduleVarianceDays(req.BaselineEndDate, req.ActualEndDate, req.AsOfDate)
	if err != nil {
		abortWithError(c, "CalculateScheduleVariance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variance_days": days})
}

type convertUnitsRequest struct {
	Value    float64 `json:"value"`
	FromUnit string  `json:"from_unit" binding:"required"`
	ToUnit   string  `json:"to_unit" binding:"required"`
}

func ConvertUnits(c *gin.Context) {
	var req convertUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "ConvertUnits", err)
		return
	}
	from, err := calculation.ParseUnitOfMeasure(req.FromUnit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := calculation.ParseUnitOfMeasure(req.ToUnit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	converted, err := calculation.Convert(req.Value, from, to)
	if err != nil {
		abortWithError(c, "ConvertUnits", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"value":     converted,
		"from_unit": from,
		"to_unit":   to,
	})
}
