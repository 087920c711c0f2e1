// Package dataset loads the survey dataset and its column declarations.
// The dataset is built once at process start and treated as read-only for
// the lifetime of the process.
package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// columnTable is the YAML shape of a column declaration file.
type columnTable struct {
	Columns []models.ColumnDescriptor `yaml:"columns"`
}

// LoadColumns reads column descriptors from a YAML file, or returns the
// built-in driver-survey descriptors when path is empty.
func LoadColumns(path string) ([]models.ColumnDescriptor, error) {
	if path == "" {
		return DefaultColumns(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column table: %w", err)
	}
	var table columnTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse column table: %w", err)
	}
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("column table %s declares no columns", path)
	}
	return table.Columns, nil
}

// DefaultColumns declares the built-in truck-driver survey schema. Synonyms
// carry the alternate phrasings (and English glosses) questions tend to use.
func DefaultColumns() []models.ColumnDescriptor {
	return []models.ColumnDescriptor{
		{
			Name:     "荷台形状",
			Kind:     models.KindCategorical,
			Synonyms: []string{"荷台", "ボディ形状", "車両形状", "deck shape", "carrier deck shape", "body type"},
		},
		{
			Name:     "稼働日数",
			Kind:     models.KindNumeric,
			Rule:     models.RuleRangedDays,
			Synonyms: []string{"週の稼働日数", "稼働日", "days worked", "working days"},
		},
		{
			Name:     "拘束時間",
			Kind:     models.KindCategorical,
			Rule:     models.RuleRangedHours,
			Synonyms: []string{"1日の拘束時間", "労働時間", "hours worked", "daily hours"},
		},
		{
			Name:     "地域",
			Kind:     models.KindCategorical,
			Synonyms: []string{"エリア", "region", "area"},
		},
		{
			Name:     "年齢層",
			Kind:     models.KindCategorical,
			Synonyms: []string{"年齢", "年代", "age", "age group"},
		},
	}
}
