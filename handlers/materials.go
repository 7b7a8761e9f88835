package handlers

import (
	"fmt"
	"io"
	"net/http"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
	"bitbucket.org/mmdatafocus/buildsite_backend/config"
	"bitbucket.org/mmdatafocus/buildsite_backend/importer"
	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func CreateMaterial(c *gin.Context) {
	tenantID, userID := identity(c)

	var material models.MaterialLineItem
	if err := c.ShouldBindJSON(&material); err != nil {
		abortWithError(c, "CreateMaterial", err)
		return
	}
	if _, err := models.ParseMaterialCategory(string(material.Category)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := calculation.ParseUnitOfMeasure(string(material.Unit)); err != nil {
		abortWithError(c, "CreateMaterial", err)
		return
	}
	if !material.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	// Verify the project belongs to the request tenant.
	var project models.BuildProject
	if err := db.First(&project, "id = ?", material.ProjectId).Error; err != nil {
		abortWithError(c, "CreateMaterial", err)
		return
	}

	material.ID = ""
	material.TenantId = tenantID

	err := db.Transaction(func(tx *gorm.DB) error {
		// BeforeSave recomputes total_qty/total_cost server-side.
		if err := tx.Create(&material).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogCreate(ctx, "MaterialLineItem", material.ID, snapshot(material))
		return err
	})
	if err != nil {
		abortWithError(c, "CreateMaterial", err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

func ListMaterials(c *gin.Context) {
	ctx := c.Request.Context()

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	query := config.GetDB().WithContext(ctx).Where("project_id = ?", projectID)
	if category := c.Query("category"); category != "" {
		parsed, err := models.ParseMaterialCategory(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("category = ?", parsed)
	}

	var materials []models.MaterialLineItem
	if err := query.Order("created_at").Find(&materials).Error; err != nil {
		abortWithError(c, "ListMaterials", err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

func GetMaterial(c *gin.Context) {
	ctx := c.Request.Context()

	var material models.MaterialLineItem
	if err := config.GetDB().WithContext(ctx).First(&material, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "GetMaterial", err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func UpdateMaterial(c *gin.Context) {
	tenantID, userID := identity(c)
	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var material models.MaterialLineItem
	if err := db.First(&material, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "UpdateMaterial", err)
		return
	}
	before := snapshot(material)

	var input models.MaterialLineItem
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, "UpdateMaterial", err)
		return
	}
	if _, err := models.ParseMaterialCategory(string(input.Category)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := calculation.ParseUnitOfMeasure(string(input.Unit)); err != nil {
		abortWithError(c, "UpdateMaterial", err)
		return
	}
	if !input.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
		return
	}

	material.Category = input.Category
	material.Description = input.Description
	material.Quantity = input.Quantity
	material.Unit = input.Unit
	material.WastageFactor = input.WastageFactor
	material.UnitCost = input.UnitCost
	material.Vendor = input.Vendor
	material.CsiCode = input.CsiCode
	material.Notes = input.Notes

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&material).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogUpdate(ctx, "MaterialLineItem", material.ID, before, snapshot(material))
		return err
	})
	if err != nil {
		abortWithError(c, "UpdateMaterial", err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func DeleteMaterial(c *gin.Context) {
	tenantID, userID := identity(c)
	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var material models.MaterialLineItem
	if err := db.First(&material, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "DeleteMaterial", err)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&material).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogDelete(ctx, "MaterialLineItem", material.ID, snapshot(material))
		return err
	})
	if err != nil {
		abortWithError(c, "DeleteMaterial", err)
		return
	}

	c.Status(http.StatusNoContent)
}

type bulkCreateMaterialsRequest struct {
	ProjectId string                    `json:"project_id" binding:"required"`
	Materials []models.MaterialLineItem `json:"materials" binding:"required"`
}

type bulkCreateResponse struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// BulkCreateMaterials commits valid rows and reports failures per row.
// This endpoint is deliberately partial-success, unlike the CSV import
// parse, which is all-or-nothing.
func BulkCreateMaterials(c *gin.Context) {
	tenantID, userID := identity(c)

	var req bulkCreateMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "BulkCreateMaterials", err)
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var project models.BuildProject
	if err := db.First(&project, "id = ?", req.ProjectId).Error; err != nil {
		abortWithError(c, "BulkCreateMaterials", err)
		return
	}

	resp := bulkCreateResponse{Errors: []string{}}
	for i := range req.Materials {
		material := req.Materials[i]
		material.ID = ""
		material.TenantId = tenantID
		material.ProjectId = req.ProjectId

		if _, err := models.ParseMaterialCategory(string(material.Category)); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("item %d: %s", i+1, err.Error()))
			continue
		}
		if !material.Quantity.IsPositive() {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("item %d: quantity must be greater than zero", i+1))
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&material).Error; err != nil {
				return err
			}
			_, err := models.NewAuditLogger(tx, tenantID, userID).
				LogCreate(ctx, "MaterialLineItem", material.ID, snapshot(material))
			return err
		})
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("item %d: %s", i+1, err.Error()))
			continue
		}
		resp.Created++
	}

	c.JSON(http.StatusOK, resp)
}

// ImportMaterialsCSV parses a CSV payload and creates the whole batch, or
// rejects it entirely with every row error listed.
func ImportMaterialsCSV(c *gin.Context) {
	tenantID, userID := identity(c)

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	content, err := readCSVPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var project models.BuildProject
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		abortWithError(c, "ImportMaterialsCSV", err)
		return
	}

	imp := &importer.MaterialImporter{}
	materials, err := imp.ParseCSV(content, projectID)
	if err != nil {
		abortWithError(c, "ImportMaterialsCSV", err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		audit := models.NewAuditLogger(tx, tenantID, userID)
		for i := range materials {
			materials[i].TenantId = tenantID
			if err := tx.Create(&materials[i]).Error; err != nil {
				return err
			}
			if _, err := audit.LogCreate(ctx, "MaterialLineItem", materials[i].ID, snapshot(materials[i])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, "ImportMaterialsCSV", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"imported": len(materials),
		"warnings": imp.Warnings,
	})
}

// ExportMaterials streams the project's materials as CSV, or XLSX with
// ?format=xlsx.
func ExportMaterials(c *gin.Context) {
	tenantID, userID := identity(c)

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var materials []models.MaterialLineItem
	if err := db.Where("project_id = ?", projectID).Order("created_at").Find(&materials).Error; err != nil {
		abortWithError(c, "ExportMaterials", err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	audit := models.NewAuditLogger(db, tenantID, userID)
	if _, err := audit.Log(ctx, models.AuditActionRead, "MaterialLineItem", projectID,
		models.AuditChanges{}, map[string]any{"export_format": format, "rows": len(materials)}); err != nil {
		abortWithError(c, "ExportMaterials", err)
		return
	}

	switch format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=materials.xlsx")
		if err := importer.WriteMaterialsXLSX(c.Writer, materials); err != nil {
			abortWithError(c, "ExportMaterials", err)
		}
	case "csv":
		out, err := importer.ExportMaterialsCSV(materials)
		if err != nil {
			abortWithError(c, "ExportMaterials", err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=materials.csv")
		c.Data(http.StatusOK, "text/csv", []byte(out))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
	}
}

type materialCategorySummary struct {
	Category  models.MaterialCategory `json:"category"`
	ItemCount int                     `json:"item_count"`
	TotalCost decimal.Decimal         `json:"total_cost"`
}

// MaterialsSummary aggregates cost per category for a project.
func MaterialsSummary(c *gin.Context) {
	ctx := c.Request.Context()

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	var rows []materialCategorySummary
	err := config.GetDB().WithContext(ctx).
		Model(&models.MaterialLineItem{}).
		Select("category, COUNT(id) AS item_count, SUM(total_cost) AS total_cost").
		Where("project_id = ?", projectID).
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		abortWithError(c, "MaterialsSummary", err)
		return
	}

	grandTotal := decimal.Zero
	for _, r := range rows {
		grandTotal = grandTotal.Add(r.TotalCost)
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":  projectID,
		"categories":  rows,
		"grand_total": grandTotal,
	})
}

func readCSVPayload(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		return "", fmt.Errorf("csv payload is required (multipart 'file' or raw body)")
	}
	return string(raw), nil
}
