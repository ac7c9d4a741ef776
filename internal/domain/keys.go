package domain

// 三个维度各用一个 newtype，避免 (sex, age, event) 这类复合键里
// 出现“把 age 传到 event 位置”的串位 bug。
// 值本身仍是规范化后的字符串（见 internal/normalize）。

// Sex 是性别键（"Men" / "Women"，由标准表的 sheet 名映射得到；
// 赛果文件名里的 token 原样保留，如 "M"/"F"）。
type Sex string

// AgeLabel 是年龄组标签（如 "13"；"15&U" 规范化后为 "15"）。
// 注意它是字符串键：只有 agematch 在解析后做数值比较。
type AgeLabel string

// EventName 是规范化后的项目名（如 "200Fr"）。
//
// 约束：进入任何 map 之前必须先经过 normalize.Event；
// 未规范化的字符串做 key 会静默查不到（而不是报错）。
type EventName string

// StandardKey 定位一条达标标准（严格匹配口径：字面年龄）。
type StandardKey struct {
	Sex   Sex
	Age   AgeLabel
	Event EventName
}

// GroupKey 定位一个 (性别, 年龄组) 桶（宽松匹配口径：解析后的年龄）。
type GroupKey struct {
	Sex Sex
	Age AgeLabel
}
