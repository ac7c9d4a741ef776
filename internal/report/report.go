// Package report 把聚合结果排成报表的行列（纯布局，不碰文件）。
package report

import (
	"github.com/John-Robertt/swimq/internal/aggregate"
	"github.com/John-Robertt/swimq/internal/domain"
	"github.com/John-Robertt/swimq/internal/standards"
)

// Row 是一行输出；nil 行表示空行（网格与汇总之间的间隔）。
type Row []any

// Sheet 是一个性别的完整报表页。
type Sheet struct {
	Name string
	Rows []Row
}

// Build 生成两页报表（Mens/Womens），布局固定：
//
//	行 0：  "Event" + 年龄组（数值升序）
//	行 1..n：每个项目一行（按标准表首次出现序），各列是严格口径的达标数
//	空行
//	"Total Unique Athletes" 行 + "Unique Qualifiers" 行：宽松口径的汇总
//
// 没有数据的格写 0（网格必须填满，缺失和零在报表里同义）。
func Build(
	tbl *standards.Table,
	counts map[domain.StandardKey]int,
	unique map[domain.GroupKey]aggregate.NameSet,
	total map[domain.GroupKey]aggregate.NameSet,
) []Sheet {
	sheets := make([]Sheet, 0, len(standards.Sexes))
	for _, sex := range standards.Sexes {
		sheets = append(sheets, Sheet{
			Name: standards.SheetName(sex),
			Rows: buildRows(sex, tbl, counts, unique, total),
		})
	}
	return sheets
}

func buildRows(
	sex domain.Sex,
	tbl *standards.Table,
	counts map[domain.StandardKey]int,
	unique map[domain.GroupKey]aggregate.NameSet,
	total map[domain.GroupKey]aggregate.NameSet,
) []Row {
	ages := tbl.AgeLabels(sex)

	header := make(Row, 0, 1+len(ages))
	header = append(header, "Event")
	for _, age := range ages {
		header = append(header, string(age))
	}

	rows := make([]Row, 0, len(tbl.EventOrder(sex))+4)
	rows = append(rows, header)

	for _, event := range tbl.EventOrder(sex) {
		row := make(Row, 0, 1+len(ages))
		row = append(row, string(event))
		for _, age := range ages {
			row = append(row, counts[domain.StandardKey{Sex: sex, Age: age, Event: event}])
		}
		rows = append(rows, row)
	}

	rows = append(rows, nil) // 网格与汇总之间隔一行
	rows = append(rows, summaryRow("Total Unique Athletes", sex, ages, total))
	rows = append(rows, summaryRow("Unique Qualifiers", sex, ages, unique))
	return rows
}

func summaryRow(label string, sex domain.Sex, ages []domain.AgeLabel, sets map[domain.GroupKey]aggregate.NameSet) Row {
	row := make(Row, 0, 1+len(ages))
	row = append(row, label)
	for _, age := range ages {
		row = append(row, len(sets[domain.GroupKey{Sex: sex, Age: age}]))
	}
	return row
}
