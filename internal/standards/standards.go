// Package standards 构建并查询达标时间表。
package standards

import (
	"sort"
	"strconv"

	"github.com/John-Robertt/swimq/internal/domain"
	"github.com/John-Robertt/swimq/internal/normalize"
	"github.com/John-Robertt/swimq/internal/sheet"
)

// sheetToSex 把标准表的 sheet 名映射到规范性别 key。
var sheetToSex = map[string]domain.Sex{
	"Mens":   "Men",
	"Womens": "Women",
}

// Sexes 是报表输出的固定性别顺序。
var Sexes = []domain.Sex{"Men", "Women"}

// SheetName 返回某性别在工作簿里的 sheet 名（输入输出两侧同名）。
func SheetName(sex domain.Sex) string {
	for name, s := range sheetToSex {
		if s == sex {
			return name
		}
	}
	return string(sex)
}

// Table 是内存中的达标时间表：性别 → 项目 → 年龄组 → 秒数。
//
// 不变量：
// - 项目与年龄组的 key 都是规范形（normalize 之后），查询方必须
//   先规范化，否则只会静默查不到
// - 构建完成后只读
type Table struct {
	standards map[domain.Sex]map[domain.EventName]map[domain.AgeLabel]float64

	// eventOrder 记录每个性别的项目首次出现顺序（map 无序，报表
	// 行序全靠它；源表里的重复行会原样出现两次）。
	eventOrder map[domain.Sex][]domain.EventName
}

// Build 从已读入内存的 sheet 构建标准表。
// sheets 的 key 是 sheet 名；缺某个性别的 sheet 只会得到空表，不报错。
//
// 行列约定（与源表一致）：
// - 第 0 行是表头：第 0 列之后的非空格是年龄组标签
// - 之后每行：第 0 列是项目名（文本格；空白或无法规范化则整行跳过），
//   其余列按表头年龄组逐列对齐，换算失败的格就是“该组无标准”（缺数据，
//   不是错误）
func Build(sheets map[string][][]sheet.Cell) *Table {
	t := &Table{
		standards:  make(map[domain.Sex]map[domain.EventName]map[domain.AgeLabel]float64, len(sheetToSex)),
		eventOrder: make(map[domain.Sex][]domain.EventName, len(sheetToSex)),
	}

	for sheetName, sex := range sheetToSex {
		events := make(map[domain.EventName]map[domain.AgeLabel]float64)
		order := make([]domain.EventName, 0, 32)

		rows := sheets[sheetName]
		if len(rows) > 0 {
			ages := headerAges(rows[0])

			for _, row := range rows[1:] {
				if len(row) == 0 {
					continue
				}
				raw, ok := sheet.Text(row[0])
				if !ok {
					continue
				}
				event, ok := normalize.Event(raw)
				if !ok {
					continue
				}
				order = append(order, event)

				perAge := make(map[domain.AgeLabel]float64, len(ages))
				for idx, age := range ages {
					col := idx + 1 // 跳过项目列
					if col >= len(row) {
						continue
					}
					if v, ok := sheet.TimeToSeconds(row[col]); ok {
						perAge[age] = v
					}
				}
				events[event] = perAge
			}
		}

		t.standards[sex] = events
		t.eventOrder[sex] = order
	}
	return t
}

func headerAges(header []sheet.Cell) []domain.AgeLabel {
	if len(header) < 2 {
		return nil
	}
	ages := make([]domain.AgeLabel, 0, len(header)-1)
	for _, c := range header[1:] {
		if s, ok := sheet.HeaderText(c); ok {
			ages = append(ages, normalize.Age(s))
		}
	}
	return ages
}

// Lookup 查一条达标时间（严格口径：三个维度都精确匹配）。
func (t *Table) Lookup(sex domain.Sex, event domain.EventName, age domain.AgeLabel) (float64, bool) {
	perAge, ok := t.standards[sex][event]
	if !ok {
		return 0, false
	}
	v, ok := perAge[age]
	return v, ok
}

// HasEvent 判断某性别是否定义了该项目。
func (t *Table) HasEvent(sex domain.Sex, event domain.EventName) bool {
	_, ok := t.standards[sex][event]
	return ok
}

// EventAges 返回某 (性别, 项目) 定义了标准的年龄组（数值升序）。
func (t *Table) EventAges(sex domain.Sex, event domain.EventName) []domain.AgeLabel {
	perAge, ok := t.standards[sex][event]
	if !ok {
		return nil
	}
	out := make([]domain.AgeLabel, 0, len(perAge))
	for age := range perAge {
		out = append(out, age)
	}
	sortAges(out)
	return out
}

// EventOrder 返回某性别的项目首次出现顺序（报表行序）。
func (t *Table) EventOrder(sex domain.Sex) []domain.EventName {
	return t.eventOrder[sex]
}

// EventCount 返回某性别定义的项目数（日志/诊断用）。
func (t *Table) EventCount(sex domain.Sex) int {
	return len(t.standards[sex])
}

// AgeLabels 返回某性别所有项目出现过的年龄组并集（数值升序）。
// 这是报表的列序。
func (t *Table) AgeLabels(sex domain.Sex) []domain.AgeLabel {
	seen := make(map[domain.AgeLabel]struct{})
	for _, perAge := range t.standards[sex] {
		for age := range perAge {
			seen[age] = struct{}{}
		}
	}
	out := make([]domain.AgeLabel, 0, len(seen))
	for age := range seen {
		out = append(out, age)
	}
	sortAges(out)
	return out
}

// RepresentativeAges 返回某性别“任取一个项目”的年龄组，用作总人数
// 统计的年龄词表。取项目顺序里第一个有标准的项目，保证确定性
// （而不是依赖 map 遍历顺序）。
func (t *Table) RepresentativeAges(sex domain.Sex) []domain.AgeLabel {
	for _, ev := range t.eventOrder[sex] {
		if _, ok := t.standards[sex][ev]; ok {
			return t.EventAges(sex, ev)
		}
	}
	return nil
}

// sortAges 按数值升序排；解析不了的标签按 999 排到末尾（稳定）。
func sortAges(ages []domain.AgeLabel) {
	sort.SliceStable(ages, func(i, j int) bool {
		return ageSortKey(ages[i]) < ageSortKey(ages[j])
	})
}

func ageSortKey(a domain.AgeLabel) int {
	n, err := strconv.Atoi(string(a))
	if err != nil {
		return 999
	}
	return n
}
