// Package xlsxio 是 excelize 的一层薄封装：把工作簿读成 sheet.Cell
// 矩阵，把报表行列写回 xlsx（原子落盘）。
//
// 读取用 RawCellValue：xlsx 把“时间格”存成天分数的数字，格式化后的
// 字符串（"2:05" 之类）形态不稳定，只有裸值 + 数字格式才能可靠区分
// 数字 / 日期时间 / 文本三类。
package xlsxio

import (
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/John-Robertt/swimq/internal/infra/fsx"
	"github.com/John-Robertt/swimq/internal/sheet"
)

// Workbook 是一个打开的只读工作簿。用完必须 Close。
type Workbook struct {
	f *excelize.File
}

// Open 打开一个 xlsx/xls 工作簿。
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

// Close 释放底层文件。
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetNames 返回工作簿内的 sheet 名（按簿内顺序）。
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// ReadSheet 把一个 sheet 读成 Cell 矩阵。
// sheet 不存在时返回错误（上层自行决定跳过还是失败）。
func (w *Workbook) ReadSheet(name string) ([][]sheet.Cell, error) {
	raw, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows := make([][]sheet.Cell, len(raw))
	for r, rawRow := range raw {
		row := make([]sheet.Cell, len(rawRow))
		for c, v := range rawRow {
			row[c] = w.classify(name, r, c, v)
		}
		rows[r] = row
	}
	return rows, nil
}

// classify 把一个裸值折算成 Cell。
// 能按浮点数解析的裸值再看单元格的数字格式：日期/时间格式 →
// KindDateTime（值是天分数），否则 KindNumber；其余是文本。
// 布尔/错误格没有可用时间语义，按空格处理。
func (w *Workbook) classify(sheetName string, r, c int, raw string) sheet.Cell {
	if raw == "" {
		return sheet.Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return sheet.Cell{}
	}

	if ct, err := w.f.GetCellType(sheetName, axis); err == nil {
		switch ct {
		case excelize.CellTypeBool, excelize.CellTypeError:
			return sheet.Cell{}
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			// 字符串格原样当文本：内容碰巧长得像数字也不升格。
			return sheet.Txt(raw)
		}
	}

	if num, err := strconv.ParseFloat(raw, 64); err == nil {
		if w.isDateTimeCell(sheetName, axis) {
			return sheet.Clock(num)
		}
		return sheet.Num(num)
	}
	return sheet.Txt(raw)
}

func (w *Workbook) isDateTimeCell(sheetName, axis string) bool {
	styleID, err := w.f.GetCellStyle(sheetName, axis)
	if err != nil {
		return false
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if isBuiltinDateTimeFmt(style.NumFmt) {
		return true
	}
	if style.CustomNumFmt != nil {
		return looksLikeTimeFmt(*style.CustomNumFmt)
	}
	return false
}

// 内置数字格式里的日期/时间段：14–22 与 27–36 是日期（含区域变体），
// 45–47 是 mm:ss 类时间，50–58 是区域日期。
func isBuiltinDateTimeFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	default:
		return false
	}
}

// looksLikeTimeFmt 粗判自定义格式是否是时间：去掉引号段与 [] 段后，
// 同时含有 ':' 和 h/m/s 任一 token 才算。宁可漏判（当普通数字读），
// 也不把 "0.00" 这类误判成时间。
func looksLikeTimeFmt(fmtStr string) bool {
	cleaned := make([]rune, 0, len(fmtStr))
	inQuote, inBracket := false, false
	for _, ch := range fmtStr {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case !inQuote && !inBracket:
			cleaned = append(cleaned, ch)
		}
	}

	hasColon, hasToken := false, false
	for _, ch := range cleaned {
		switch ch {
		case ':':
			hasColon = true
		case 'h', 'H', 'm', 'M', 's', 'S':
			hasToken = true
		}
	}
	return hasColon && hasToken
}

// OutSheet 是待写出的一页。nil 行留空。
type OutSheet struct {
	Name string
	Rows [][]any
}

// Write 把报表写成一个 xlsx 工作簿并原子落盘（临时文件 + rename，
// 已存在则覆盖）。
func Write(path string, sheets []OutSheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sh.Name); err != nil {
				return err
			}
		}

		for r, row := range sh.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sh.Name, axis, v); err != nil {
					return err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomic(filepath.Dir(path), filepath.Base(path), buf.Bytes())
}
