package parser

import "pharmadesk/internal/model"

// RawTable 读取到的原始表格：表头 + 数据行（均为字符串）
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// RoleAliases 某个角色的别名列表
//
// Passes 按顺序逐轮匹配：前一轮在全部表头中都没有命中时才进入下一轮。
// 别名比较前统一小写并去除首尾空白。
type RoleAliases struct {
	Role   model.Role
	Passes [][]string
}

// ColumnAliases 全部角色的别名配置
type ColumnAliases []RoleAliases

// For 返回角色的别名配置
func (a ColumnAliases) For(role model.Role) (RoleAliases, bool) {
	for _, ra := range a {
		if ra.Role == role {
			return ra, true
		}
	}
	return RoleAliases{}, false
}

// DefaultColumnAliases 默认别名
// Facility 先精确找 "facility name"，找不到再用同义词
func DefaultColumnAliases() ColumnAliases {
	return ColumnAliases{
		{
			Role: model.RoleFacility,
			Passes: [][]string{
				{"facility name"},
				{"facility", "hospital", "clinic"},
			},
		},
		{
			Role:   model.RoleDescription,
			Passes: [][]string{{"description", "item description", "medicine", "nsn description"}},
		},
		{
			Role:   model.RoleStock,
			Passes: [][]string{{"on hand", "stock", "stock_on_hand", "qty", "quantity"}},
		},
		{
			Role:   model.RoleExpiry,
			Passes: [][]string{{"expiry", "expiry date", "expiration", "exp"}},
		},
	}
}
