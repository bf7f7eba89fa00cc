package excel

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pharmadesk/internal/parser"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, upload .xlsx or .csv")
	ErrEmptyWorkbook     = errors.New("uploaded file has no header row")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable 按扩展名读取上传文件
func ReadTable(r io.Reader, fileName string) (parser.RawTable, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(r)
	case ".csv":
		return ReadCSV(r)
	default:
		return parser.RawTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

// ReadWorkbook 读取工作簿的第一个 sheet，第一行作为表头
//
// 单元格取原始值（不套用数字格式），日期单元格得到的是 Excel 序列号。
func ReadWorkbook(r io.Reader) (parser.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return parser.RawTable{}, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return parser.RawTable{}, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return parser.RawTable{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return splitHeader(rows)
}

// ReadCSV 读取 CSV，允许行长度不一致，忽略 UTF-8 BOM
func ReadCSV(r io.Reader) (parser.RawTable, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return parser.RawTable{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return splitHeader(rows)
}

func splitHeader(rows [][]string) (parser.RawTable, error) {
	if len(rows) == 0 || parser.IsBlankRow(rows[0]) {
		return parser.RawTable{}, ErrEmptyWorkbook
	}
	return parser.RawTable{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}
