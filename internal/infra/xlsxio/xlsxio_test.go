package xlsxio

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/John-Robertt/swimq/internal/sheet"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", "200 Free"); err != nil {
		t.Fatalf("改 sheet 名失败：%v", err)
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("构造 fixture 失败：%v", err)
		}
	}
	must(f.SetCellValue("200 Free", "A1", "A. Swimmer"))
	must(f.SetCellValue("200 Free", "B1", 125.5))
	must(f.SetCellValue("200 Free", "C1", "2:05.00"))

	// D1：mm:ss 时间格（内置格式 45），值是天分数。
	styleID, err := f.NewStyle(&excelize.Style{NumFmt: 45})
	must(err)
	must(f.SetCellStyle("200 Free", "D1", "D1", styleID))
	must(f.SetCellValue("200 Free", "D1", 80.0/86400.0))

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("保存 fixture 失败：%v", err)
	}
}

func TestReadSheet_CellKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	writeFixture(t, path)

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("打开失败：%v", err)
	}
	defer wb.Close()

	if got := wb.SheetNames(); len(got) != 1 || got[0] != "200 Free" {
		t.Fatalf("sheet 列表不符合预期：%v", got)
	}

	rows, err := wb.ReadSheet("200 Free")
	if err != nil {
		t.Fatalf("读 sheet 失败：%v", err)
	}
	if len(rows) != 1 || len(rows[0]) < 4 {
		t.Fatalf("行列不符合预期：%v", rows)
	}

	row := rows[0]
	if s, ok := sheet.Text(row[0]); !ok || s != "A. Swimmer" {
		t.Fatalf("A1 应是文本：%+v", row[0])
	}
	if row[1].Kind != sheet.KindNumber || math.Abs(row[1].Number-125.5) > 1e-9 {
		t.Fatalf("B1 应是数字 125.5：%+v", row[1])
	}
	if v, ok := sheet.TimeToSeconds(row[2]); !ok || math.Abs(v-125.0) > 1e-6 {
		t.Fatalf("C1 应按 MM:SS 文本换算成 125.0：%+v", row[2])
	}
	// 时间格必须识别成 KindDateTime 并按天分数换算。
	if row[3].Kind != sheet.KindDateTime {
		t.Fatalf("D1 应是日期/时间格：%+v", row[3])
	}
	if v, ok := sheet.TimeToSeconds(row[3]); !ok || math.Abs(v-80.0) > 1e-6 {
		t.Fatalf("D1 应换算成 80.0 秒：%v ok=%v", v, ok)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := Write(path, []OutSheet{
		{Name: "Mens", Rows: [][]any{
			{"Event", "13"},
			{"200Fr", 2},
			nil, // 空行
			{"Unique Qualifiers", 1},
		}},
		{Name: "Womens", Rows: [][]any{{"Event"}}},
	})
	if err != nil {
		t.Fatalf("写入失败：%v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("回读失败：%v", err)
	}
	defer func() { _ = f.Close() }()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Mens" || got[1] != "Womens" {
		t.Fatalf("sheet 列表不符合预期：%v", got)
	}
	if v, _ := f.GetCellValue("Mens", "A2"); v != "200Fr" {
		t.Fatalf("A2 = %q，期望 200Fr", v)
	}
	if v, _ := f.GetCellValue("Mens", "B2"); v != "2" {
		t.Fatalf("B2 = %q，期望 2", v)
	}
	if v, _ := f.GetCellValue("Mens", "A3"); v != "" {
		t.Fatalf("空行不应有内容：%q", v)
	}
	if v, _ := f.GetCellValue("Mens", "A4"); v != "Unique Qualifiers" {
		t.Fatalf("A4 = %q", v)
	}
}

func TestLooksLikeTimeFmt(t *testing.T) {
	yes := []string{"mm:ss.0", "h:mm:ss", "[h]:mm:ss"}
	for _, s := range yes {
		if !looksLikeTimeFmt(s) {
			t.Fatalf("%q 应判为时间格式", s)
		}
	}
	no := []string{"0.00", "General", "\"h:m\"0.0", "#,##0"}
	for _, s := range no {
		if looksLikeTimeFmt(s) {
			t.Fatalf("%q 不应判为时间格式", s)
		}
	}
}
