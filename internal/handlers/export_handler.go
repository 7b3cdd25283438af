package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/aninayuwoki/cobranza/internal/billing"
)

// Export streams the payment report as an .xlsx attachment: one row per
// student with the computed status columns.
func (h *StudentHandler) Export(c *gin.Context) {
	students, err := h.Store.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load students for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Reporte de Pagos"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)

	headers := []string{"ID", "Nombre", "Grado", "Fecha de inicio", "Cuota semanal", "Total pagado", "Monto esperado", "Balance", "Semanas transcurridas", "Semanas atrasadas", "Estado", "Último pago"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	now := time.Now()
	for i, s := range students {
		status := billing.ComputeStatus(s, now)
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Grade)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.StartDate)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), s.WeeklyAmount.Value)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.TotalPaid.Value)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), status.ExpectedAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), status.Balance)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), status.WeeksElapsed)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), status.WeeksDelinquent)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), status.StatusText)
		if s.LastPaymentDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), *s.LastPaymentDate)
		}
	}

	fileName := fmt.Sprintf("student_payments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write excel file"})
	}
}
