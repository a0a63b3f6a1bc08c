package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"deltica/internal/dto"
	"deltica/internal/services"
	"deltica/pkg/utils"
)

type ReportController struct {
	mainTableService *services.MainTableService
	logger           *zap.Logger
}

func NewReportController(mainTableService *services.MainTableService, logger *zap.Logger) *ReportController {
	return &ReportController{mainTableService: mainTableService, logger: logger}
}

// ExportRegistry выгружает активный реестр в xlsx.
func (c *ReportController) ExportRegistry(ctx echo.Context) error {
	data, err := c.mainTableService.GetAll(ctx.Request().Context())
	if err != nil {
		c.logger.Error("ExportRegistry: ошибка при получении реестра", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, data)
}

var registryHeaders = []string{
	"№", "Наименование", "Модель", "Тип", "Заводской номер", "Инвентарный номер", "Год выпуска",
	"Вид работ", "Номер в реестре", "Интервал (мес.)", "Дата поверки", "Срок поверки", "План поверки",
	"Состояние", "Статус", "Подразделение", "Ответственный", "Поверяющая организация",
	"Статья бюджета", "Код тарифа", "Тариф", "Количество", "Коэффициент", "Стоимость",
	"Номер счёта", "Оплачено", "Дата оплаты",
}

func registryRowToSlice(n int, item dto.MainTableResponseDTO) []interface{} {
	formatMoney := func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%.2f", *v)
	}

	return []interface{}{
		n, item.EquipmentName, item.EquipmentModel, item.EquipmentType,
		item.FactoryNumber, item.InventoryNumber, item.EquipmentYear,
		item.VerificationType, item.RegistryNumber, item.VerificationInterval,
		item.VerificationDate, item.VerificationDue, item.VerificationPlan,
		item.VerificationState, item.Status,
		item.Department, item.ResponsiblePerson, item.VerifierOrg,
		item.BudgetItem, item.CodeRate, formatMoney(item.CostRate), item.Quantity,
		item.Coefficient, formatMoney(item.TotalCost), item.InvoiceNumber,
		formatMoney(item.PaidAmount), item.PaymentDate,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.MainTableResponseDTO) error {
	f := excelize.NewFile()
	sheet := "Реестр оборудования"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &registryHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "AA1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := registryRowToSlice(i+1, item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "E", "F", 20)
	f.SetColWidth(sheet, "H", "M", 16)
	f.SetColWidth(sheet, "P", "R", 25)

	fileName := fmt.Sprintf("registry_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
