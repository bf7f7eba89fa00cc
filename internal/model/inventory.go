package model

import "time"

// Role 列的语义角色
type Role string

const (
	RoleFacility    Role = "Facility"
	RoleDescription Role = "Description"
	RoleStock       Role = "Stock"
	RoleExpiry      Role = "Expiry"
)

// RequiredRoles 上传表必须解析出的四个角色（顺序即报错顺序）
var RequiredRoles = []Role{RoleFacility, RoleDescription, RoleStock, RoleExpiry}

// 导出时追加的派生列
const (
	ColumnDaysLeft     = "Days_Left"
	ColumnExpiryStatus = "Expiry_Status"
)

// IsDerivedColumn 是否为每次重新计算的派生列（重新上传导出文件时会出现）
func IsDerivedColumn(name string) bool {
	return name == ColumnDaysLeft || name == ColumnExpiryStatus
}

// ColumnMapping 角色到实际列名的映射
type ColumnMapping struct {
	Facility    string `json:"facility"`
	Description string `json:"description"`
	Stock       string `json:"stock"`
	Expiry      string `json:"expiry"`
}

// Column 返回角色对应的列名，未解析时为空串
func (m ColumnMapping) Column(role Role) string {
	switch role {
	case RoleFacility:
		return m.Facility
	case RoleDescription:
		return m.Description
	case RoleStock:
		return m.Stock
	case RoleExpiry:
		return m.Expiry
	}
	return ""
}

// Set 设置角色对应的列名
func (m *ColumnMapping) Set(role Role, column string) {
	switch role {
	case RoleFacility:
		m.Facility = column
	case RoleDescription:
		m.Description = column
	case RoleStock:
		m.Stock = column
	case RoleExpiry:
		m.Expiry = column
	}
}

// InventoryRecord 上传表中的一行
//
// Cells 保存原始单元格文本，列顺序以所属 Table.Headers 为准。
// Stock / Expiry 在上传时规范化一次；DaysLeft / Status 每次交互按当天重新计算。
type InventoryRecord struct {
	RowNo    int               `json:"rowNo"`
	Cells    map[string]string `json:"cells"`
	Stock    float64           `json:"stock"`
	Expiry   *time.Time        `json:"expiry,omitempty"`
	DaysLeft *int              `json:"daysLeft"`
	Status   ExpiryStatus      `json:"status"`
}

// Cell 取单元格原始值，缺失时为空串
func (r InventoryRecord) Cell(column string) string {
	if r.Cells == nil {
		return ""
	}
	return r.Cells[column]
}

// Table 一次上传得到的内存表
type Table struct {
	ID         string            `json:"id"`
	FileName   string            `json:"fileName"`
	Headers    []string          `json:"headers"`
	Mapping    ColumnMapping     `json:"mapping"`
	Records    []InventoryRecord `json:"-"`
	UploadedAt time.Time         `json:"uploadedAt"`
}

// FilterCriteria 过滤条件，空白表示不过滤
type FilterCriteria struct {
	Facility string `json:"facility" form:"facility"`
	Item     string `json:"item" form:"item"`
}

// Summary 汇总指标
type Summary struct {
	Total               int `json:"total"`
	Expired             int `json:"expired"`
	ExpiringUnder30Days int `json:"expiringUnder30Days"`
	ExpiringUnder90Days int `json:"expiringUnder90Days"`
}
