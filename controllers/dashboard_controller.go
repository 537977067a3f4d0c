package controllers

import (
	"fmt"
	"strings"

	"github.com/Govind-619/inventory-manager/utils"
	"github.com/gin-gonic/gin"
)

// GetDashboard returns the item table, optionally filtered by ?category=<name>
func (h *Handler) GetDashboard(c *gin.Context) {
	utils.LogInfo("GetDashboard called")

	categoryName := c.Query("category")
	view, err := h.repo.Dashboard(c.Request.Context(), categoryName)
	if err != nil {
		fail(c, "build dashboard", err)
		return
	}

	utils.LogDebug("Dashboard %q: %d items, %d columns", categoryName, len(view.Items), len(view.Characteristics))
	utils.Success(c, view)
}

// ExportDashboard downloads the item table as a spreadsheet or PDF
func (h *Handler) ExportDashboard(c *gin.Context) {
	utils.LogInfo("ExportDashboard called")

	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != formatXLSX && format != formatPDF {
		utils.LogError("Invalid export format specified: %s", format)
		utils.BadRequest(c, "Format must be xlsx or pdf")
		return
	}

	categoryName := c.Query("category")
	view, err := h.repo.Dashboard(c.Request.Context(), categoryName)
	if err != nil {
		fail(c, "build dashboard", err)
		return
	}

	filename := exportFileName(view.CategoryName, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	switch format {
	case formatXLSX:
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = WriteDashboardXLSX(c.Writer, view)
	case formatPDF:
		c.Header("Content-Type", "application/pdf")
		err = WriteDashboardPDF(c.Writer, view)
	}
	if err != nil {
		utils.LogError("Failed to write %s export: %v", format, err)
		if !c.Writer.Written() {
			utils.InternalServerError(c, "Failed to generate export")
		}
		return
	}

	utils.LogInfo("Exported dashboard %q as %s (%d rows)", view.CategoryName, format, len(view.Rows))
}
