// Package meet 把一个赛果工作簿变成规范化的成绩记录。
package meet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/swimq/internal/domain"
	"github.com/John-Robertt/swimq/internal/normalize"
	"github.com/John-Robertt/swimq/internal/sheet"
)

// 赛果表的固定列位（0 起）与最小行宽。
// 该布局来自导出工具，属于外部契约，不做探测。
const (
	timeCol  = 9
	nameCol  = 4
	minCells = 10
)

// FileMeta 是从文件名解析出的元信息。
type FileMeta struct {
	Course string
	Sex    domain.Sex
	// Age 是文件名年龄段 "AA-BB" 里的 BB（字面年龄，未解析）。
	Age domain.AgeLabel
}

// MalformedFilenameError 表示文件名不符合 "_" 分隔的命名约定。
// 上层把它映射为 error_code=malformed_filename（文件级失败，跳过该文件）。
type MalformedFilenameError struct {
	Filename string
	Reason   string
}

func (e *MalformedFilenameError) Error() string {
	return fmt.Sprintf("无法解析文件名 %q：%s", e.Filename, e.Reason)
}

// ParseFilename 按约定解析赛果文件名：去掉扩展名后按 "_" 切分，
// token[2]=泳池（course），token[3]=性别，token[4]="AA-BB" 年龄段
// （取 BB 作为字面年龄）。
func ParseFilename(filename string) (FileMeta, error) {
	// 扩展名大小写不敏感，与目录扫描的口径保持一致。
	clean := filename
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xls":
		clean = filename[:len(filename)-len(ext)]
	}

	parts := strings.Split(clean, "_")
	if len(parts) < 5 {
		return FileMeta{}, &MalformedFilenameError{Filename: filename, Reason: "token 少于 5 个"}
	}

	ageParts := strings.Split(parts[4], "-")
	if len(ageParts) != 2 {
		return FileMeta{}, &MalformedFilenameError{Filename: filename, Reason: fmt.Sprintf("年龄段 %q 不是 AA-BB 形式", parts[4])}
	}

	return FileMeta{
		Course: parts[2],
		Sex:    normalize.Sex(parts[3]),
		Age:    domain.AgeLabel(ageParts[1]),
	}, nil
}

// NamedSheet 是已读入内存的一个 sheet（sheet 名即项目名）。
type NamedSheet struct {
	Name string
	Rows [][]sheet.Cell
}

// Extract 把一个工作簿的所有 sheet 变成成绩记录。
//
// - sheet 名规范化失败 → 整个 sheet 跳过（不是错误）
// - 行宽不足 minCells → 跳过
// - 时间换算失败或 ≤ 0 → 跳过（成绩表本来就稀疏，静默丢弃）
// - 姓名只取文本格；缺姓名的成绩仍然保留（严格口径的计数不需要名字）
//
// 返回值 sheets 是实际用上的 sheet 数（诊断用）。
func Extract(meta FileMeta, sheets []NamedSheet) (results []domain.MeetResult, usedSheets int) {
	results = make([]domain.MeetResult, 0, 64)

	for _, ns := range sheets {
		event, ok := normalize.Event(ns.Name)
		if !ok {
			continue
		}
		usedSheets++

		for _, row := range ns.Rows {
			if len(row) < minCells {
				continue
			}

			t, ok := sheet.TimeToSeconds(row[timeCol])
			if !ok || t <= 0 {
				continue
			}

			name, _ := sheet.Text(row[nameCol])

			results = append(results, domain.MeetResult{
				Course: meta.Course,
				Sex:    meta.Sex,
				Age:    meta.Age,
				Event:  event,
				Time:   t,
				Name:   name,
			})
		}
	}
	return results, usedSheets
}
