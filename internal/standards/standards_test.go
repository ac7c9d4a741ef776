package standards

import (
	"math"
	"reflect"
	"testing"

	"github.com/John-Robertt/swimq/internal/domain"
	"github.com/John-Robertt/swimq/internal/sheet"
)

func mensSheet() [][]sheet.Cell {
	return [][]sheet.Cell{
		{sheet.Txt("Event"), sheet.Txt("11&U"), sheet.Num(13), sheet.Txt("15")},
		{sheet.Txt("200 Free"), sheet.Txt("2:20.00"), sheet.Txt("2:10.00"), sheet.Num(125.5)},
		{sheet.Txt("100 FL"), sheet.Txt(""), sheet.Clock(80.0 / 86400.0), sheet.Txt("75.00")},
		{sheet.Txt("   ")}, // 项目列空白：整行跳过
	}
}

func TestBuild_LookupAndNormalizedKeys(t *testing.T) {
	tbl := Build(map[string][][]sheet.Cell{"Mens": mensSheet()})

	v, ok := tbl.Lookup("Men", "200Fr", "13")
	if !ok || math.Abs(v-130.0) > 1e-6 {
		t.Fatalf("期望 Men/200Fr/13 = 130.0，实际 %v ok=%v", v, ok)
	}
	// 表头 "11&U" 必须规范化为 "11"。
	if _, ok := tbl.Lookup("Men", "200Fr", "11"); !ok {
		t.Fatalf("11&U 表头应规范化为 11")
	}
	// 日期/时间格按天分数换算。
	v, ok = tbl.Lookup("Men", "100Bu", "13")
	if !ok || math.Abs(v-80.0) > 1e-6 {
		t.Fatalf("期望 Men/100Bu/13 = 80.0，实际 %v ok=%v", v, ok)
	}
	// 空白格就是“该组无标准”。
	if _, ok := tbl.Lookup("Men", "100Bu", "11"); ok {
		t.Fatalf("换算失败的格不应产生标准")
	}
	// 未规范化的 key 必须查不到（这是调用方契约）。
	if _, ok := tbl.Lookup("Men", "200 Free", "13"); ok {
		t.Fatalf("未规范化的项目名不应命中")
	}
}

func TestBuild_EventOrderPreserved(t *testing.T) {
	tbl := Build(map[string][][]sheet.Cell{"Mens": mensSheet()})

	want := []domain.EventName{"200Fr", "100Bu"}
	if got := tbl.EventOrder("Men"); !reflect.DeepEqual(got, want) {
		t.Fatalf("项目顺序不符合首次出现序：%v", got)
	}
}

func TestBuild_MissingSheetIsEmptyNotError(t *testing.T) {
	tbl := Build(map[string][][]sheet.Cell{"Mens": mensSheet()})

	if tbl.EventCount("Women") != 0 {
		t.Fatalf("缺 Womens sheet 应得到空表")
	}
	if got := tbl.AgeLabels("Women"); len(got) != 0 {
		t.Fatalf("空表不应有年龄组：%v", got)
	}
}

func TestAgeLabels_NumericAscending(t *testing.T) {
	tbl := Build(map[string][][]sheet.Cell{"Mens": {
		{sheet.Txt("Event"), sheet.Txt("15"), sheet.Txt("9"), sheet.Txt("11")},
		{sheet.Txt("50 Free"), sheet.Num(40), sheet.Num(50), sheet.Num(45)},
	}})

	want := []domain.AgeLabel{"9", "11", "15"}
	if got := tbl.AgeLabels("Men"); !reflect.DeepEqual(got, want) {
		t.Fatalf("年龄列应按数值升序：%v", got)
	}
}

func TestRepresentativeAges_Deterministic(t *testing.T) {
	tbl := Build(map[string][][]sheet.Cell{"Mens": mensSheet()})

	// 词表取项目顺序里第一个项目（200Fr）的年龄组。
	want := []domain.AgeLabel{"11", "13", "15"}
	if got := tbl.RepresentativeAges("Men"); !reflect.DeepEqual(got, want) {
		t.Fatalf("代表年龄词表不符合预期：%v", got)
	}
	if got := tbl.RepresentativeAges("Women"); got != nil {
		t.Fatalf("空表不应有代表词表：%v", got)
	}
}
