package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

const (
	pageMargin   = 15.0
	titleHeight  = 10.0
	rowHeight    = 7.0
	footerHeight = 9.0
	fontFamily   = "Helvetica"
)

type column struct {
	header string
	width  float64
	align  string
}

// Ширины подобраны под A4 портрет с полями 15 мм (180 мм полезной ширины)
var columns = []column{
	{header: "Period", width: 30, align: "L"},
	{header: "Service", width: 70, align: "L"},
	{header: "Orders", width: 20, align: "R"},
	{header: "Average", width: 30, align: "R"},
	{header: "Total", width: 30, align: "R"},
}

// Renderer отрисовывает строки отчета о продажах в PDF-таблицу
type Renderer struct {
	orientation string
	size        string
}

// NewRenderer создает рендерер для A4 портрет
func NewRenderer() *Renderer {
	return &Renderer{orientation: "P", size: "A4"}
}

// Render возвращает PDF-документ с таблицей строк и итогами на последней странице
func (r *Renderer) Render(title string, rows []domain.SalesReportRow) ([]byte, error) {
	doc := r.layout(title, rows)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Render: %w", err)
	}
	return buf.Bytes(), nil
}

// layout раскладывает таблицу по страницам. Автоперенос отключен: строки идут с фиксированным
// шагом, и перед строкой, которая не помещается, начинается новая страница с повтором заголовка.
func (r *Renderer) layout(title string, rows []domain.SalesReportRow) *fpdf.Fpdf {
	doc := fpdf.New(r.orientation, "mm", r.size, "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := doc.GetPageSize()
	bottom := pageHeight - pageMargin

	doc.AddPage()
	doc.SetFont(fontFamily, "B", 14)
	doc.CellFormat(0, titleHeight, tr(title), "", 1, "L", false, 0, "")
	doc.Ln(2)
	writeHeader(doc)

	orders := 0
	sales := decimal.Zero

	doc.SetFont(fontFamily, "", 10)
	for _, row := range rows {
		if doc.GetY()+rowHeight > bottom {
			doc.AddPage()
			writeHeader(doc)
			doc.SetFont(fontFamily, "", 10)
		}

		cells := []string{
			row.BucketStart.Format(domain.DateFormat),
			tr(row.ServiceName),
			strconv.Itoa(row.NumberOfOrders),
			row.AverageOrderValue.StringFixed(domain.MoneyScale),
			row.TotalSalesAmount.StringFixed(domain.MoneyScale),
		}
		for i, c := range columns {
			doc.CellFormat(c.width, rowHeight, cells[i], "1", 0, c.align, false, 0, "")
		}
		doc.Ln(rowHeight)

		orders += row.NumberOfOrders
		sales = sales.Add(row.TotalSalesAmount)
	}

	if doc.GetY()+footerHeight > bottom {
		doc.AddPage()
	}
	doc.Ln(2)
	doc.SetFont(fontFamily, "B", 10)
	doc.CellFormat(0, rowHeight,
		fmt.Sprintf("Grand total: %d orders, %s", orders, sales.StringFixed(domain.MoneyScale)),
		"", 1, "R", false, 0, "")

	return doc
}

func writeHeader(doc *fpdf.Fpdf) {
	doc.SetFont(fontFamily, "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, c := range columns {
		doc.CellFormat(c.width, rowHeight, c.header, "1", 0, "C", true, 0, "")
	}
	doc.Ln(rowHeight)
}
