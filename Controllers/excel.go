package Controllers

import (
	"fmt"
	"strings"
	"time"

	"IranElaj/Models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Requests"

var exportHeaders = []string{"Date", "Name", "WhatsApp", "Specialties", "Condition", "Status", "Files"}

// ExportRequests streams every request, optionally filtered by ?status=, as an xlsx workbook.
func (h *Handler) ExportRequests(c *gin.Context) {
	requests, err := h.requests.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	file, err := BuildRequestsWorkbook(requests, c.DefaultQuery("locale", "en"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("requests-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("Failed to write export", zap.Error(err))
	}
}

func BuildRequestsWorkbook(requests []Models.MedicalRequest, locale string) (*excelize.File, error) {
	file := excelize.NewFile()
	if _, err := file.NewSheet(exportSheet); err != nil {
		return nil, err
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if index, err := file.GetSheetIndex(exportSheet); err == nil {
		file.SetActiveSheet(index)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i := range requests {
		if err := appendRequestRow(file, i+2, &requests[i], locale); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func appendRequestRow(file *excelize.File, row int, request *Models.MedicalRequest, locale string) error {
	ids := request.SpecialtyIDs()
	specialties := make([]string, 0, len(ids))
	for _, id := range ids {
		specialties = append(specialties, Models.SpecialtyName(id, locale))
	}
	paths := make([]string, 0, len(request.Files))
	for _, f := range request.Files {
		paths = append(paths, f.FilePath)
	}

	values := []interface{}{
		request.CreatedAt.Format("2006-01-02 15:04"),
		request.User.FullName,
		request.User.WhatsApp,
		strings.Join(specialties, ", "),
		request.Condition,
		request.Status.LocalizedName(locale),
		strings.Join(paths, "\n"),
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return file.SetSheetRow(exportSheet, cell, &values)
}
