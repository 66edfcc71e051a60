package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// salesPeriodRange resolves the report window from query parameters.
// Period is day, week, month or custom; custom takes start_date and
// end_date (YYYY-MM-DD, at most 90 days apart).
func salesPeriodRange(c *gin.Context) (string, time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := nowFunc()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	case "custom":
		startStr := c.Query("start_date")
		endStr := c.Query("end_date")
		if startStr == "" || endStr == "" {
			utils.BadRequest(c, "Missing date range", "Both start_date and end_date are required for custom period")
			return "", time.Time{}, time.Time{}, false
		}
		var err error
		startDate, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			utils.BadRequest(c, "Invalid start date", "Start date must be in YYYY-MM-DD format")
			return "", time.Time{}, time.Time{}, false
		}
		endDate, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			utils.BadRequest(c, "Invalid end date", "End date must be in YYYY-MM-DD format")
			return "", time.Time{}, time.Time{}, false
		}
		endDate = endDate.Add(24 * time.Hour)
		if endDate.Before(startDate) {
			utils.BadRequest(c, "Invalid date range", "End date must be after start date")
			return "", time.Time{}, time.Time{}, false
		}
		if endDate.Sub(startDate) > 90*24*time.Hour {
			utils.BadRequest(c, "Invalid date range", "Date range cannot exceed 90 days")
			return "", time.Time{}, time.Time{}, false
		}
	default:
		utils.BadRequest(c, "Invalid period", "Period must be day, week, month, or custom")
		return "", time.Time{}, time.Time{}, false
	}

	return period, startDate, endDate, true
}

type salesSummary struct {
	TotalSales      int
	TotalRevenue    decimal.Decimal
	TotalItems      int
	TotalCustomers  int
	TotalDiscounts  decimal.Decimal
	TotalRefunds    decimal.Decimal
	NetRevenue      decimal.Decimal
	AverageOrderVal decimal.Decimal
}

func summarizeSales(orders []models.Order, refunds []models.RefundRequest) salesSummary {
	summary := salesSummary{
		TotalRevenue:    decimal.Zero,
		TotalDiscounts:  decimal.Zero,
		TotalRefunds:    decimal.Zero,
		NetRevenue:      decimal.Zero,
		AverageOrderVal: decimal.Zero,
	}
	customerSet := make(map[uint]bool)
	for _, order := range orders {
		summary.TotalSales++
		summary.TotalRevenue = summary.TotalRevenue.Add(order.FinalTotal)
		summary.TotalDiscounts = summary.TotalDiscounts.Add(order.Discount)
		customerSet[order.UserID] = true
		for _, item := range order.OrderItems {
			summary.TotalItems += item.Quantity
		}
	}
	for _, refund := range refunds {
		summary.TotalRefunds = summary.TotalRefunds.Add(refund.Amount)
	}
	summary.TotalCustomers = len(customerSet)
	if summary.TotalSales > 0 {
		summary.AverageOrderVal = utils.RoundMoney(summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.TotalSales))))
	}
	summary.NetRevenue = utils.RoundMoney(summary.TotalRevenue.Sub(summary.TotalRefunds))
	summary.TotalRevenue = utils.RoundMoney(summary.TotalRevenue)
	summary.TotalDiscounts = utils.RoundMoney(summary.TotalDiscounts)
	summary.TotalRefunds = utils.RoundMoney(summary.TotalRefunds)
	return summary
}

func salesReportData(c *gin.Context) (string, time.Time, time.Time, []models.Order, salesSummary, bool) {
	period, startDate, endDate, ok := salesPeriodRange(c)
	if !ok {
		return "", time.Time{}, time.Time{}, nil, salesSummary{}, false
	}

	var orders []models.Order
	if err := config.DB.Where("created_at >= ? AND created_at <= ? AND status != ?", startDate, endDate, models.OrderStatusCancelled).
		Preload("User").
		Preload("OrderItems").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return "", time.Time{}, time.Time{}, nil, salesSummary{}, false
	}

	var refunds []models.RefundRequest
	if err := config.DB.Where("completed_at >= ? AND completed_at <= ? AND status = ?", startDate, endDate, models.RefundStatusCompleted).
		Find(&refunds).Error; err != nil {
		utils.LogError("Failed to fetch refunds for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch refunds", nil)
		return "", time.Time{}, time.Time{}, nil, salesSummary{}, false
	}

	return period, startDate, endDate, orders, summarizeSales(orders, refunds), true
}

// GenerateSalesReport returns the sales summary and order list as JSON
func GenerateSalesReport(c *gin.Context) {
	utils.LogInfo("GenerateSalesReport called")

	period, startDate, endDate, orders, summary, ok := salesReportData(c)
	if !ok {
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		items = append(items, gin.H{
			"order_id":       order.ID,
			"user_id":        order.UserID,
			"username":       order.User.Username,
			"date":           order.CreatedAt.Format("2006-01-02 15:04"),
			"items":          len(order.OrderItems),
			"total":          utils.MoneyString(order.FinalTotal),
			"discount":       utils.MoneyString(order.Discount),
			"payment_method": order.PaymentMethod,
			"status":         order.Status,
		})
	}

	utils.Success(c, "Sales report generated successfully", gin.H{
		"period":     period,
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"summary": gin.H{
			"total_sales":     summary.TotalSales,
			"total_revenue":   utils.MoneyString(summary.TotalRevenue),
			"total_items":     summary.TotalItems,
			"total_customers": summary.TotalCustomers,
			"total_discounts": utils.MoneyString(summary.TotalDiscounts),
			"total_refunds":   utils.MoneyString(summary.TotalRefunds),
			"net_revenue":     utils.MoneyString(summary.NetRevenue),
			"avg_order_value": utils.MoneyString(summary.AverageOrderVal),
		},
		"orders": items,
	})
}

// DownloadSalesReportExcel streams the sales report as an xlsx workbook
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	period, startDate, endDate, orders, summary, ok := salesReportData(c)
	if !ok {
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("SHOPSPHERE - Sales Report")
	addrRow := sheet.AddRow()
	addrRow.AddCell().SetString("42 Market Road, City, Country")
	mailRow := sheet.AddRow()
	mailRow.AddCell().SetString("Email: support@shopsphere.local")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Order ID", "User ID", "User Name", "Date", "Items", "Total", "Discount", "Promotion", "Payment Mode", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetInt(int(order.UserID))
		row.AddCell().SetString(order.User.Username)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(len(order.OrderItems))
		row.AddCell().SetString(utils.MoneyString(order.FinalTotal))
		row.AddCell().SetString(utils.MoneyString(order.Discount))
		row.AddCell().SetString(order.PromotionCode)
		row.AddCell().SetString(order.PaymentMethod)
		row.AddCell().SetString(order.Status)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Sales", fmt.Sprintf("%d", summary.TotalSales)},
		{"Total Revenue", utils.MoneyString(summary.TotalRevenue)},
		{"Total Items", fmt.Sprintf("%d", summary.TotalItems)},
		{"Total Customers", fmt.Sprintf("%d", summary.TotalCustomers)},
		{"Total Discounts", utils.MoneyString(summary.TotalDiscounts)},
		{"Total Refunds", utils.MoneyString(summary.TotalRefunds)},
		{"Net Revenue", utils.MoneyString(summary.NetRevenue)},
		{"Avg. Order Value", utils.MoneyString(summary.AverageOrderVal)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("Excel report generated for period %s", period)
}

// DownloadSalesReportPDF streams the sales report as a landscape PDF,
// with a low stock section at the end for restocking decisions.
func DownloadSalesReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportPDF called")

	period, startDate, endDate, orders, summary, ok := salesReportData(c)
	if !ok {
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "SHOPSPHERE - Sales Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Order ID", "User ID", "User Name", "Date", "Items", "Total", "Discount", "Promotion", "Payment Mode", "Status"}
	colWidths := []float64{20, 20, 40, 32, 15, 25, 25, 30, 30, 30}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, order := range orders {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", order.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", order.UserID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, order.User.Username, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, order.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, fmt.Sprintf("%d", len(order.OrderItems)), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, utils.MoneyString(order.FinalTotal), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, utils.MoneyString(order.Discount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, order.PromotionCode, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, order.PaymentMethod, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[9], 8, order.Status, "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	summaryLines := []string{
		fmt.Sprintf("Total Sales: %d", summary.TotalSales),
		"Total Revenue: " + utils.MoneyString(summary.TotalRevenue),
		fmt.Sprintf("Total Items: %d", summary.TotalItems),
		fmt.Sprintf("Total Customers: %d", summary.TotalCustomers),
		"Total Discounts: " + utils.MoneyString(summary.TotalDiscounts),
		"Total Refunds: " + utils.MoneyString(summary.TotalRefunds),
		"Net Revenue: " + utils.MoneyString(summary.NetRevenue),
		"Avg. Order Value: " + utils.MoneyString(summary.AverageOrderVal),
	}
	for _, line := range summaryLines {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}

	// Low stock section
	var lowStock []models.Inventory
	if err := config.DB.Preload("Product").
		Where("current_stock <= reorder_point").
		Order("current_stock asc").
		Find(&lowStock).Error; err == nil && len(lowStock) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, "Low Stock")
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 11)
		stockHeaders := []string{"Product ID", "Product", "SKU", "Current Stock", "Reorder Point", "Status"}
		stockWidths := []float64{25, 70, 40, 30, 30, 30}
		for i, h := range stockHeaders {
			pdf.SetFillColor(200, 200, 200)
			pdf.CellFormat(stockWidths[i], 9, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, rec := range lowStock {
			pdf.CellFormat(stockWidths[0], 8, fmt.Sprintf("%d", rec.ProductID), "1", 0, "C", false, 0, "")
			pdf.CellFormat(stockWidths[1], 8, rec.Product.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(stockWidths[2], 8, rec.Product.SKU, "1", 0, "C", false, 0, "")
			pdf.CellFormat(stockWidths[3], 8, fmt.Sprintf("%d", rec.CurrentStock), "1", 0, "C", false, 0, "")
			pdf.CellFormat(stockWidths[4], 8, fmt.Sprintf("%d", rec.ReorderPoint), "1", 0, "C", false, 0, "")
			pdf.CellFormat(stockWidths[5], 8, utils.DeriveStockStatus(rec.CurrentStock, rec.ReorderPoint), "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate PDF report: %v", err)
		utils.InternalServerError(c, "Failed to generate PDF report", nil)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.pdf", period))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("PDF report generated for period %s", period)
}
