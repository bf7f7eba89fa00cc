package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// Excel 日期序列号的合法范围（1900-01-01 ~ 9999-12-31）
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// 8 位纯数字按 yyyymmdd 处理，不当作序列号
const yyyymmddMin = 10000000

// fallbackDateLayouts dateparse 无法识别时再尝试的格式
var fallbackDateLayouts = []string{
	"02-Jan-2006",
	"2-Jan-06",
	"2 January 2006",
	"January 2006",
	"Jan-2006",
	"01/2006",
	"2006/01",
}

// ParseStock 解析库存数量；无法解析（含空白、NaN、Inf）一律按 0 处理
func ParseStock(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// 移除千分位分隔符
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CellParser 单元格解析器
type CellParser struct {
	dayFirst bool
}

// NewCellParser 创建单元格解析器；dayFirst 为 true 时 01/02/2025 解释为 2 月 1 日
func NewCellParser(dayFirst bool) *CellParser {
	return &CellParser{dayFirst: dayFirst}
}

// ParseExpiry 宽松解析效期，返回 UTC 零点日期；无法解析返回 nil
func (p *CellParser) ParseExpiry(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f >= minExcelSerial && f <= maxExcelSerial {
			t, err := excelize.ExcelDateToTime(f, false)
			if err != nil {
				return nil
			}
			return truncateToDay(t)
		}
		if f < yyyymmddMin {
			return nil
		}
	}

	// 首选顺序解析失败（如月份位置 >12）时换另一种日月顺序再试
	for _, monthFirst := range []bool{!p.dayFirst, p.dayFirst} {
		t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(monthFirst))
		if err == nil {
			return truncateToDay(t)
		}
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return truncateToDay(t)
		}
	}
	return nil
}

func truncateToDay(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
