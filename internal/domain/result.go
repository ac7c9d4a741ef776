package domain

// MeetResult 是一次计时成绩（提取阶段产出，之后只读）。
//
// 不变量：
// - Event 已经过 normalize.Event
// - Age 是文件名里的字面年龄 token（尚未对标准表做解析）
// - Time 单位为秒且 > 0（提取阶段已剔除非正值）
// - Name 允许为空（成绩行缺名字时仍计入严格口径的计数）
type MeetResult struct {
	Course string
	Sex    Sex
	Age    AgeLabel
	Event  EventName
	Time   float64
	Name   string
}
