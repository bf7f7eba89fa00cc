package parser

import (
	"strings"

	"pharmadesk/internal/model"
)

// MissingColumnsError 有角色无法解析时返回，Roles 按 model.RequiredRoles 顺序排列
type MissingColumnsError struct {
	Roles []model.Role
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		names = append(names, string(r))
	}
	return "Missing required columns: " + strings.Join(names, ", ")
}

// ColumnResolver 列角色解析器
type ColumnResolver struct {
	aliases ColumnAliases
}

// NewColumnResolver 创建解析器，aliases 为空时使用默认别名
func NewColumnResolver(aliases ColumnAliases) *ColumnResolver {
	if len(aliases) == 0 {
		aliases = DefaultColumnAliases()
	}
	return &ColumnResolver{aliases: aliases}
}

// Resolve 为四个角色各找一列；任一角色缺失即返回 *MissingColumnsError，不返回部分映射
func (r *ColumnResolver) Resolve(headers []string) (model.ColumnMapping, error) {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = MatchKey(h)
	}

	var mapping model.ColumnMapping
	var missing []model.Role

	for _, role := range model.RequiredRoles {
		col := ""
		if ra, ok := r.aliases.For(role); ok {
			col = findByPasses(headers, keys, ra.Passes)
		}
		if col == "" {
			missing = append(missing, role)
			continue
		}
		mapping.Set(role, col)
	}

	if len(missing) > 0 {
		return model.ColumnMapping{}, &MissingColumnsError{Roles: missing}
	}
	return mapping, nil
}

// findByPasses 逐轮匹配，每轮内按表头从左到右取第一个命中
func findByPasses(headers, keys []string, passes [][]string) string {
	for _, pass := range passes {
		want := make(map[string]struct{}, len(pass))
		for _, alias := range pass {
			want[MatchKey(alias)] = struct{}{}
		}
		for i, k := range keys {
			if _, ok := want[k]; ok {
				return headers[i]
			}
		}
	}
	return ""
}
