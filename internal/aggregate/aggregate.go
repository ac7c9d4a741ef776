// Package aggregate 把规范化成绩对标准表做两种口径的聚合。
//
// 两个口径是产品区分，不是冗余代码，禁止合并：
// - 严格口径（CountQualifiers）：字面年龄精确匹配，喂逐项目×逐年龄的网格
// - 宽松口径（UniqueQualifiers/TotalAthletes）：年龄经 agematch 解析，
//   喂按人去重的汇总行
package aggregate

import (
	"github.com/John-Robertt/swimq/internal/agematch"
	"github.com/John-Robertt/swimq/internal/domain"
	"github.com/John-Robertt/swimq/internal/standards"
)

// NameSet 是按姓名去重的集合。同名异人会被并成一个——这是上游
// 数据的既有局限（名字是唯一可用标识），保留该行为，不要“修复”。
type NameSet map[string]struct{}

// Diag 是聚合阶段的诊断计数（进 RunReport 的 summary，不是错误）。
type Diag struct {
	// Qualifiers 是严格口径下达标的成绩条数。
	Qualifiers int
	// NoStandard 是“项目有定义但该字面年龄没有标准”的成绩条数。
	NoStandard int
}

// CountQualifiers 严格口径：对每条成绩按 (性别, 字面年龄, 项目)
// 精确查标准，时间 ≤ 标准则计数 +1。查不到的组合静默排除
// （只进诊断计数，不是错误）。
func CountQualifiers(results []domain.MeetResult, tbl *standards.Table) (map[domain.StandardKey]int, Diag) {
	counts := make(map[domain.StandardKey]int)
	var d Diag

	for _, r := range results {
		if !tbl.HasEvent(r.Sex, r.Event) {
			continue
		}
		qt, ok := tbl.Lookup(r.Sex, r.Event, r.Age)
		if !ok {
			d.NoStandard++
			continue
		}
		if r.Time <= qt {
			counts[domain.StandardKey{Sex: r.Sex, Age: r.Age, Event: r.Event}]++
			d.Qualifiers++
		}
	}
	return counts, d
}

// UniqueQualifiers 宽松口径：年龄经 agematch 对该 (性别, 项目) 的
// 年龄组解析；达标则把姓名放进 (性别, 解析后年龄) 的集合。
// 无名字的成绩不参与（没法去重）。key 用解析后的年龄，不是原始年龄。
func UniqueQualifiers(results []domain.MeetResult, tbl *standards.Table) map[domain.GroupKey]NameSet {
	out := make(map[domain.GroupKey]NameSet)

	for _, r := range results {
		if r.Name == "" {
			continue
		}
		if !tbl.HasEvent(r.Sex, r.Event) {
			continue
		}
		matched, ok := agematch.Best(r.Age, tbl.EventAges(r.Sex, r.Event))
		if !ok {
			continue
		}
		qt, ok := tbl.Lookup(r.Sex, r.Event, matched)
		if !ok || r.Time > qt {
			continue
		}
		add(out, domain.GroupKey{Sex: r.Sex, Age: matched}, r.Name)
	}
	return out
}

// TotalAthletes 统计每个 (性别, 解析后年龄) 出现过的运动员全集
// （达标与否都算），做报表汇总行的分母。年龄对“代表项目”的年龄
// 词表解析（见 standards.RepresentativeAges）。
func TotalAthletes(results []domain.MeetResult, tbl *standards.Table) map[domain.GroupKey]NameSet {
	out := make(map[domain.GroupKey]NameSet)

	for _, r := range results {
		if r.Name == "" {
			continue
		}
		ages := tbl.RepresentativeAges(r.Sex)
		if len(ages) == 0 {
			continue
		}
		matched, ok := agematch.Best(r.Age, ages)
		if !ok {
			continue
		}
		add(out, domain.GroupKey{Sex: r.Sex, Age: matched}, r.Name)
	}
	return out
}

func add(m map[domain.GroupKey]NameSet, k domain.GroupKey, name string) {
	s, ok := m[k]
	if !ok {
		s = make(NameSet)
		m[k] = s
	}
	s[name] = struct{}{}
}
