package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/internal/repositories"
	"request-tracker/internal/services"
	"request-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetReport выгружает видимые актору заявки. format=xlsx отдаёт файл,
// иначе — обычный JSON-список.
func (ctrl *ReportController) GetReport(c echo.Context) error {
	filter := dto.ParseRequestFilter(c.Request().URL.Query())
	format := strings.ToLower(c.QueryParam("format"))

	rows, total, err := ctrl.reportService.GetReportRows(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if format == "xlsx" {
		return ctrl.respondWithXLSX(c, rows)
	}

	dtos := make([]dto.RequestDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dto.RequestToDTO(&rows[i].Request, &rows[i].Owner))
	}
	return utils.SuccessResponse(c, dtos, "Отчёт успешно сформирован", http.StatusOK, total)
}

var reportHeaders = []string{
	"№", "Тип", "Сбытовая организация", "Склад", "Приоритет", "Дата",
	"Статус", "Комментарий", "Ресурс", "OD-номера", "Владелец", "РФ/РУ", "Создана",
}

func rowToSlice(item repositories.RequestWithOwner) []interface{} {
	dateFmt := "02.01.2006"
	odNumbers := strings.ReplaceAll(item.Request.ODNumber.String, entities.ODNumberSeparator, ", ")

	return []interface{}{
		item.Request.OrderNumber,
		string(item.Request.Type),
		string(item.Request.SalesOrganization),
		item.Request.Warehouse,
		item.Request.Priority.String,
		item.Request.Date.Format(dateFmt),
		item.Request.Status.String(),
		item.Request.Comment,
		item.Request.Resource.String,
		odNumbers,
		item.Owner.Name + " " + item.Owner.Surname,
		item.Owner.RfRu.String,
		item.Request.CreatedAt.Format(dateFmt + " 15:04"),
	}
}

func (ctrl *ReportController) respondWithXLSX(c echo.Context, rows []repositories.RequestWithOwner) error {
	f := excelize.NewFile()
	sheet := "Отчёт по заявкам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "M1", style)

	for i, item := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 22)
	f.SetColWidth(sheet, "H", "H", 40)
	f.SetColWidth(sheet, "J", "K", 25)

	fileName := fmt.Sprintf("requests_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
