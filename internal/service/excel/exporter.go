package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pharmadesk/internal/model"
)

const (
	// SheetName 导出工作表名
	SheetName = "Filtered"
	// FileName 建议下载文件名
	FileName = "filtered_stock.xlsx"
	// ContentType xlsx MIME 类型
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const expiryDateFormat = "yyyy-mm-dd"

// Exporter Excel导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 导出记录为单 sheet 工作簿
//
// 表头为原始列顺序 + Days_Left + Expiry_Status，不带索引列；
// 原始列中同名的派生列会被忽略，不会重复出现。
// 库存列写数值，效期列写日期，其余列写原始文本。相同输入得到相同字节。
func (e *Exporter) Export(headers []string, mapping model.ColumnMapping, records []model.InventoryRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers = withoutDerived(headers)

	header := make([]interface{}, 0, len(headers)+2)
	for _, h := range headers {
		header = append(header, h)
	}
	header = append(header, model.ColumnDaysLeft, model.ColumnExpiryStatus)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range records {
		row := exportRow(headers, mapping, r)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := e.styleExpiryColumn(f, headers, mapping.Expiry, len(records)); err != nil {
		return nil, err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers) + 2)
	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func withoutDerived(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if !model.IsDerivedColumn(h) {
			out = append(out, h)
		}
	}
	return out
}

func exportRow(headers []string, mapping model.ColumnMapping, r model.InventoryRecord) []interface{} {
	row := make([]interface{}, 0, len(headers)+2)
	for _, h := range headers {
		switch h {
		case mapping.Stock:
			row = append(row, r.Stock)
		case mapping.Expiry:
			if r.Expiry != nil {
				row = append(row, *r.Expiry)
			} else {
				row = append(row, nil)
			}
		default:
			row = append(row, r.Cell(h))
		}
	}

	if r.DaysLeft != nil {
		row = append(row, *r.DaysLeft)
	} else {
		row = append(row, nil)
	}
	return append(row, r.Status.Label())
}

// styleExpiryColumn 效期列统一显示为 yyyy-mm-dd
func (e *Exporter) styleExpiryColumn(f *excelize.File, headers []string, expiryCol string, n int) error {
	if n == 0 {
		return nil
	}
	idx := -1
	for i, h := range headers {
		if h == expiryCol {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	numFmt := expiryDateFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}
	top, _ := excelize.CoordinatesToCellName(idx+1, 2)
	bottom, _ := excelize.CoordinatesToCellName(idx+1, n+1)
	if err := f.SetCellStyle(SheetName, top, bottom, style); err != nil {
		return fmt.Errorf("apply date style: %w", err)
	}
	return nil
}
