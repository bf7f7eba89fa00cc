// Package inventory 上传库存表的装载、效期计算、过滤与汇总
package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pharmadesk/internal/model"
	"pharmadesk/internal/parser"
)

// ErrNoTable 当前会话还没有上传表
var ErrNoTable = errors.New("no inventory table loaded")

// Loader 把原始表格装载为 model.Table
type Loader struct {
	resolver *parser.ColumnResolver
	cells    *parser.CellParser
	now      func() time.Time
}

// NewLoader 创建装载器
func NewLoader(resolver *parser.ColumnResolver, cells *parser.CellParser) *Loader {
	return &Loader{
		resolver: resolver,
		cells:    cells,
		now:      time.Now,
	}
}

// Load 规范化表头、解析列角色，并对每行的库存和效期做一次规范化
//
// 列角色缺失时返回 *parser.MissingColumnsError，不产生任何部分结果。
// 单元格无法解析不会报错：库存按 0，效期按无值处理。
func (l *Loader) Load(fileName string, raw parser.RawTable) (*model.Table, error) {
	headers, indexes := sourceColumns(parser.NormalizeHeaders(raw.Headers))

	mapping, err := l.resolver.Resolve(headers)
	if err != nil {
		return nil, fmt.Errorf("resolve columns: %w", err)
	}

	records := make([]model.InventoryRecord, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		if parser.IsBlankRow(row) {
			continue
		}
		cells := parser.CellsByHeader(row, headers, indexes)
		records = append(records, model.InventoryRecord{
			RowNo:  i + 2,
			Cells:  cells,
			Stock:  parser.ParseStock(cells[mapping.Stock]),
			Expiry: l.cells.ParseExpiry(cells[mapping.Expiry]),
			Status: model.ExpiryStatusNoExpiryDate,
		})
	}

	return &model.Table{
		ID:         uuid.New().String(),
		FileName:   fileName,
		Headers:    headers,
		Mapping:    mapping,
		Records:    records,
		UploadedAt: l.now(),
	}, nil
}

// sourceColumns 去掉旧的派生列，它们按当天重新计算后追加在末尾
func sourceColumns(headers []string, indexes []int) ([]string, []int) {
	keptHeaders := make([]string, 0, len(headers))
	keptIndexes := make([]int, 0, len(indexes))
	for i, h := range headers {
		if model.IsDerivedColumn(h) {
			continue
		}
		keptHeaders = append(keptHeaders, h)
		keptIndexes = append(keptIndexes, indexes[i])
	}
	return keptHeaders, keptIndexes
}
