package parser

import (
	"fmt"
	"strings"
)

// unnamedPrefix 空白表头在 pandas 导出的表格里会变成 "Unnamed: N"
const unnamedPrefix = "Unnamed"

// NormalizeHeaders 规范化表头
//
// 去除首尾空白；丢弃空表头和 Unnamed 占位列；重名列依次追加 ".1" ".2" 后缀。
// 返回保留下来的列名，以及每一列在原始行中的下标。
func NormalizeHeaders(raw []string) (headers []string, indexes []int) {
	headers = make([]string, 0, len(raw))
	indexes = make([]int, 0, len(raw))
	seen := make(map[string]int, len(raw))

	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" || strings.HasPrefix(h, unnamedPrefix) {
			continue
		}

		name := h
		if n, ok := seen[h]; ok {
			for {
				n++
				name = fmt.Sprintf("%s.%d", h, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[h] = n
		}
		seen[name] = 0

		headers = append(headers, name)
		indexes = append(indexes, i)
	}
	return headers, indexes
}

// MatchKey 表头匹配用的 key：小写 + 去除首尾空白
func MatchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsBlankRow 整行都是空白
func IsBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// CellsByHeader 按规范化后的表头取出一行的单元格
func CellsByHeader(row []string, headers []string, indexes []int) map[string]string {
	cells := make(map[string]string, len(headers))
	for i, h := range headers {
		cells[h] = getCell(row, indexes[i])
	}
	return cells
}

// getCell 越界返回空串
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
