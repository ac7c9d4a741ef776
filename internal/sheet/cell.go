// Package sheet 定义读入内存后的单元格模型与成绩时间的换算。
//
// xlsx 里“时间”有三种存法：纯数字（秒）、文本（"MM:SS"）、
// 以及按天分数存的日期/时间格（只能靠单元格的数字格式区分）。
// 读取层（infra/xlsxio）负责把格式信息折算进 Kind，本包只看 Kind。
package sheet

// Kind 是单元格的粗分类（换算只关心这四种）。
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindDateTime
	KindText
)

// Cell 是一个已读入内存的单元格。
// Number 仅在 KindNumber/KindDateTime 下有意义；Text 仅在 KindText 下有意义。
type Cell struct {
	Kind   Kind
	Number float64
	Text   string
}

// Num 构造数字单元格（测试与构表用）。
func Num(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }

// Txt 构造文本单元格。
func Txt(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Clock 构造日期/时间格单元格（v 为天分数）。
func Clock(v float64) Cell { return Cell{Kind: KindDateTime, Number: v} }
