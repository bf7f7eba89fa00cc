package excel_test

import (
	"bytes"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"pharmadesk/internal/model"
	"pharmadesk/internal/parser"
	"pharmadesk/internal/service/excel"
	"pharmadesk/internal/service/inventory"
)

var exportRef = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func loadSample(t *testing.T) *model.Table {
	t.Helper()

	loader := inventory.NewLoader(parser.NewColumnResolver(nil), parser.NewCellParser(false))
	table, err := loader.Load("stock.csv", parser.RawTable{
		Headers: []string{"Facility Name", "Description", "Batch", "On Hand", "Expiry"},
		Rows: [][]string{
			{"Clinic A", "Paracetamol", "B-001", "-5", "2025-02-19"},
			{"Clinic A", "Amoxicillin", "B-002", "abc", "2025-01-01"},
			{"Mankweng Hospital", "Insulin", "B-003", "12", ""},
			{"Seshego Clinic", "ORS", "B-004", "1,500", "2026-06-30"},
		},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return table
}

func exportSample(t *testing.T) ([]byte, *model.Table, []model.InventoryRecord) {
	t.Helper()

	table := loadSample(t)
	records := inventory.Evaluate(table.Records, exportRef)
	data, err := excel.NewExporter().Export(table.Headers, table.Mapping, records)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	return data, table, records
}

func TestExport_Layout(t *testing.T) {
	data, _, _ := exportSample(t)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{excel.SheetName}) {
		t.Fatalf("sheets=%v, want [%s]", got, excel.SheetName)
	}

	rows, err := f.GetRows(excel.SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	wantHeader := []string{"Facility Name", "Description", "Batch", "On Hand", "Expiry", "Days_Left", "Expiry_Status"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header=%v, want %v", rows[0], wantHeader)
	}
	if len(rows) != 5 {
		t.Fatalf("rows=%d, want 5", len(rows))
	}

	first := rows[1]
	if first[3] != "-5" || first[4] != "2025-02-19" || first[5] != "40" || first[6] != model.ExpiryStatusExpiringUnder90Days.Label() {
		t.Fatalf("first row=%v", first)
	}
	if rows[2][3] != "0" {
		t.Fatalf("unparseable stock exported as %q, want 0", rows[2][3])
	}
	noExpiry := rows[3]
	for len(noExpiry) < 7 {
		noExpiry = append(noExpiry, "")
	}
	if noExpiry[4] != "" || noExpiry[5] != "" || noExpiry[6] != "No Expiry" {
		t.Fatalf("no-expiry row=%v", rows[3])
	}
}

func TestExport_Deterministic(t *testing.T) {
	a, _, _ := exportSample(t)
	b, _, _ := exportSample(t)
	if !bytes.Equal(a, b) {
		t.Fatalf("export bytes differ for identical input")
	}
}

func TestExport_EmptyRecordSet(t *testing.T) {
	table := loadSample(t)
	data, err := excel.NewExporter().Export(table.Headers, table.Mapping, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	raw, err := excel.ReadTable(bytes.NewReader(data), excel.FileName)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(raw.Rows) != 0 || len(raw.Headers) != len(table.Headers)+2 {
		t.Fatalf("unexpected table: %+v", raw)
	}
}

// 导出后重新读入、解析、分级，派生列应与导出时一致
func TestExport_RoundTripReproducesDerivedColumns(t *testing.T) {
	data, table, records := exportSample(t)

	raw, err := excel.ReadTable(bytes.NewReader(data), excel.FileName)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	daysCol, statusCol := -1, -1
	for i, h := range raw.Headers {
		switch h {
		case model.ColumnDaysLeft:
			daysCol = i
		case model.ColumnExpiryStatus:
			statusCol = i
		}
	}
	if daysCol < 0 || statusCol < 0 {
		t.Fatalf("derived columns missing from %v", raw.Headers)
	}

	loader := inventory.NewLoader(parser.NewColumnResolver(nil), parser.NewCellParser(false))
	again, err := loader.Load(excel.FileName, raw)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.Mapping != table.Mapping {
		t.Fatalf("mapping=%+v, want %+v", again.Mapping, table.Mapping)
	}

	reclassified := inventory.Evaluate(again.Records, exportRef)
	if len(reclassified) != len(records) {
		t.Fatalf("records=%d, want %d", len(reclassified), len(records))
	}
	for i, r := range reclassified {
		row := raw.Rows[i]
		cell := func(idx int) string {
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}

		wantDays := ""
		if r.DaysLeft != nil {
			wantDays = strconv.Itoa(*r.DaysLeft)
		}
		if got := cell(daysCol); got != wantDays {
			t.Fatalf("row %d Days_Left=%q, reclassified %q", i, got, wantDays)
		}
		if got := cell(statusCol); got != r.Status.Label() {
			t.Fatalf("row %d Expiry_Status=%q, reclassified %q", i, got, r.Status.Label())
		}
		if r.Status != records[i].Status {
			t.Fatalf("row %d status=%s, want %s", i, r.Status, records[i].Status)
		}
		if r.Stock != records[i].Stock {
			t.Fatalf("row %d stock=%v, want %v", i, r.Stock, records[i].Stock)
		}
	}
}

func TestExport_ReuploadedExportHasDerivedColumnsOnce(t *testing.T) {
	data, table, _ := exportSample(t)

	raw, err := excel.ReadTable(bytes.NewReader(data), excel.FileName)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	loader := inventory.NewLoader(parser.NewColumnResolver(nil), parser.NewCellParser(false))
	again, err := loader.Load(excel.FileName, raw)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reflect.DeepEqual(again.Headers, table.Headers) {
		t.Fatalf("reloaded headers=%v, want %v", again.Headers, table.Headers)
	}

	// 即使调用方传入含派生列的表头，导出也只有一组派生列
	headers := append(append([]string{}, raw.Headers...), model.ColumnDaysLeft)
	second, err := excel.NewExporter().Export(headers, again.Mapping, inventory.Evaluate(again.Records, exportRef))
	if err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(second))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(excel.SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	want := append(append([]string{}, table.Headers...), model.ColumnDaysLeft, model.ColumnExpiryStatus)
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("header=%v, want %v", rows[0], want)
	}

	first, _ := excelize.OpenReader(bytes.NewReader(data))
	defer first.Close()
	firstRows, _ := first.GetRows(excel.SheetName)
	if !reflect.DeepEqual(rows, firstRows) {
		t.Fatalf("re-export differs from first export:\n got %v\nwant %v", rows, firstRows)
	}
}
