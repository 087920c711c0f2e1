package dataset

import "github.com/driveline-labs/survey-engine/pkg/models"

// demoRows is a small driver-survey sample keyed by the default column
// order: 荷台形状, 稼働日数, 拘束時間, 地域, 年齢層.
var demoRows = [][]string{
	{"ミキサー", "5", "8時間以上", "関東", "40代"},
	{"ダンプ", "6", "8時間以上", "関東", "50代"},
	{"バン", "4", "4〜8時間", "関西", "30代"},
	{"ミキサー", "5", "8時間以上", "中部", "40代"},
	{"平ボディ", "3", "4時間以下", "関西", "60代"},
	{"ダンプ", "6", "8時間以上", "九州", "50代"},
	{"バン", "5", "4〜8時間", "関東", "20代"},
	{"ミキサー", "4", "4〜8時間", "東北", "30代"},
	{"ウイング", "6", "8時間以上", "関東", "40代"},
	{"バン", "2", "4時間以下", "北海道", "50代"},
	{"ダンプ", "5", "8時間以上", "中部", "40代"},
	{"平ボディ", "4", "4〜8時間", "九州", "30代"},
}

// Demo builds the built-in sample dataset against the given descriptors.
// Descriptors beyond the demo's five columns are dropped; this keeps Demo
// usable with a trimmed column table.
func Demo(columns []models.ColumnDescriptor) *models.Dataset {
	def := DefaultColumns()
	if len(columns) == 0 {
		columns = def
	}

	// Positions of the requested columns within the demo row layout.
	pos := make([]int, 0, len(columns))
	kept := make([]models.ColumnDescriptor, 0, len(columns))
	for _, col := range columns {
		for i, d := range def {
			if d.Name == col.Name {
				pos = append(pos, i)
				kept = append(kept, col)
				break
			}
		}
	}
	if len(kept) == 0 {
		kept = def
		pos = []int{0, 1, 2, 3, 4}
	}

	ds := &models.Dataset{Columns: kept}
	for _, rec := range demoRows {
		row := make([]models.Cell, len(kept))
		for i, p := range pos {
			row[i] = makeCell(kept[i], rec[p])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}
