package meet

import (
	"errors"
	"math"
	"testing"

	"github.com/John-Robertt/swimq/internal/sheet"
)

func TestParseFilename_Tokens(t *testing.T) {
	meta, err := ParseFilename("CAN-MBSK_2026_LCM_Men_00-13_results.xlsx")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if meta.Course != "LCM" || meta.Sex != "Men" || meta.Age != "13" {
		t.Fatalf("元信息不符合预期：%+v", meta)
	}
}

func TestParseFilename_SexTokenNormalized(t *testing.T) {
	meta, err := ParseFilename("X_X_LCM_M_00-13_x.xlsx")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if meta.Sex != "Men" {
		t.Fatalf("性别 token M 应收敛到 Men，实际 %q", meta.Sex)
	}
}

func TestParseFilename_UppercaseExtension(t *testing.T) {
	// 扫描层对扩展名大小写不敏感，这里的口径必须一致：
	// 否则 "00-13.XLSX" 会把字面年龄解析成 "13.XLSX"。
	for _, fn := range []string{
		"CAN-MBSK_2026_LCM_M_00-13.XLSX",
		"CAN-MBSK_2026_LCM_M_00-13.XLS",
	} {
		meta, err := ParseFilename(fn)
		if err != nil {
			t.Fatalf("%s：不期望错误：%v", fn, err)
		}
		if meta.Age != "13" {
			t.Fatalf("%s：字面年龄应为 13，实际 %q", fn, meta.Age)
		}
	}
}

func TestParseFilename_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"token 不足", "CAN-MBSK_2026_LCM.xlsx"},
		{"年龄段不是 AA-BB", "CAN-MBSK_2026_LCM_Men_13_x.xlsx"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilename(tc.filename)
			var me *MalformedFilenameError
			if !errors.As(err, &me) {
				t.Fatalf("期望 MalformedFilenameError，实际 err=%v", err)
			}
		})
	}
}

// row 构造一行：时间在第 9 列，姓名在第 4 列。
func row(name string, time sheet.Cell) []sheet.Cell {
	r := make([]sheet.Cell, minCells)
	r[nameCol] = sheet.Txt(name)
	r[timeCol] = time
	return r
}

func TestExtract_RowsAndSkips(t *testing.T) {
	meta := FileMeta{Course: "LCM", Sex: "Men", Age: "13"}
	sheets := []NamedSheet{
		{Name: "200 Free", Rows: [][]sheet.Cell{
			row("A. Swimmer", sheet.Txt("2:05.00")),
			row("B. Swimmer", sheet.Num(118.7)),
			row("", sheet.Txt("2:30.00")),        // 无名字也保留
			row("C. Swimmer", sheet.Txt("DNS")),  // 时间不可换算：跳过
			row("D. Swimmer", sheet.Num(0)),      // 非正时间：跳过
			{sheet.Txt("short")},                 // 行宽不足：跳过
		}},
		{Name: "   ", Rows: [][]sheet.Cell{row("E. Swimmer", sheet.Num(99))}}, // sheet 名空白：整个跳过
	}

	results, used := Extract(meta, sheets)
	if used != 1 {
		t.Fatalf("期望用到 1 个 sheet，实际 %d", used)
	}
	if len(results) != 3 {
		t.Fatalf("期望 3 条成绩，实际 %d：%+v", len(results), results)
	}

	r := results[0]
	if r.Event != "200Fr" || r.Sex != "Men" || r.Age != "13" || r.Course != "LCM" {
		t.Fatalf("记录字段不符合预期：%+v", r)
	}
	if math.Abs(r.Time-125.0) > 1e-6 || r.Name != "A. Swimmer" {
		t.Fatalf("时间/姓名不符合预期：%+v", r)
	}
	if results[2].Name != "" {
		t.Fatalf("缺姓名的行应保留且姓名为空：%+v", results[2])
	}
}
