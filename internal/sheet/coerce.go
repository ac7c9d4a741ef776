package sheet

import (
	"strconv"
	"strings"
)

// secondsPerDay：日期/时间格存的是“一天的分数”，乘以 86400 得到秒。
// 隐含前提：成绩永远小于 24 小时（本领域成立）。
const secondsPerDay = 86400.0

// TimeToSeconds 把单元格换算成秒数。
// ok=false 表示“该格没有可用时间”，调用方按缺数据跳过，不是错误。
//
// 规则（顺序固定）：
// - 数字：原样返回
// - 日期/时间格：天分数 × 86400
// - 文本：trim 后空串或 "nan"（忽略大小写）→ 无；含冒号则必须恰好
//   拆成两段数字（分、秒）；否则整体按浮点数解析
// - 其余 → 无
func TimeToSeconds(c Cell) (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Number, true
	case KindDateTime:
		return c.Number * secondsPerDay, true
	case KindText:
		s := strings.TrimSpace(c.Text)
		if s == "" || strings.EqualFold(s, "nan") {
			return 0, false
		}
		if strings.Contains(s, ":") {
			parts := strings.Split(s, ":")
			if len(parts) != 2 {
				return 0, false
			}
			minutes, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return 0, false
			}
			seconds, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return 0, false
			}
			return minutes*60 + seconds, true
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Text 取文本格的内容（trim 后）。非文本格或空白返回 ok=false。
// 标准表的表头/项目列与赛果的姓名列都只接受文本格。
func Text(c Cell) (string, bool) {
	if c.Kind != KindText {
		return "", false
	}
	s := strings.TrimSpace(c.Text)
	if s == "" {
		return "", false
	}
	return s, true
}

// HeaderText 取表头格的内容：文本格 trim，数字格转十进制字符串。
// 标准表的年龄列头既可能是文本 "13&U" 也可能是数字 13。
func HeaderText(c Cell) (string, bool) {
	switch c.Kind {
	case KindText:
		return Text(c)
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64), true
	default:
		return "", false
	}
}
