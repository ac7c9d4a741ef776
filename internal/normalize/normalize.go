// Package normalize 把两侧数据源（标准表、赛果表）里五花八门的
// 项目名与年龄标签折算到同一套规范 key 上。
package normalize

import (
	"strings"

	"github.com/John-Robertt/swimq/internal/domain"
)

// eventRules 是有序的子串替换表：长的/更具体的模式必须排在
// 与之重叠的短模式之前（例如 "M.E." 在 "M.E" 之前），否则会产生
// 二次替换的残渣。这个顺序是兼容性契约，测试固定它，不要重排。
var eventRules = [...][2]string{
	{"Free", "Fr"},
	{"Fly", "Bu"}, // Butterfly
	{"Back", "Bk"},
	{"Breast", "Br"},
	{"M.E.", "Me"}, // Medley（混合泳）
	{"M.E", "Me"},
	{"I.M.", "Me"},
	{"I.M", "Me"},
	// 标准表里已缩写的形态也收敛到同一规范形。
	{"FL", "Bu"},
}

// Event 规范化项目名。空白输入返回 ok=false。
//
// 步骤：trim；删掉所有小写 'm'（"200m" 的单位噪音）与所有空格，
// 使 "200 Free" / "200Free" 收敛；再按 eventRules 顺序替换。
// 注意只删小写 'm'："I.M." 里的大写 M 必须留给后面的替换规则。
func Event(raw string) (domain.EventName, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	s = strings.ReplaceAll(s, "m", "")
	s = strings.ReplaceAll(s, " ", "")

	for _, r := range eventRules {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return domain.EventName(s), true
}

// Age 规范化年龄标签：trim 并去掉 "&U"（and under）标记。
// 这里不做数值解析——年龄组保持字符串 key，只有 agematch 比较数值。
func Age(raw string) domain.AgeLabel {
	return domain.AgeLabel(strings.ReplaceAll(strings.TrimSpace(raw), "&U", ""))
}

// Sex 把文件名里的性别 token 收敛到标准表的性别 key（"Men"/"Women"）。
// 认不出的 token 原样保留：它查标准表时会静默落空，跟其它缺数据
// 一个待遇，不算错误。
func Sex(raw string) domain.Sex {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "B", "MEN", "MENS", "MALE", "BOYS":
		return "Men"
	case "F", "W", "G", "WOMEN", "WOMENS", "FEMALE", "GIRLS":
		return "Women"
	default:
		return domain.Sex(strings.TrimSpace(raw))
	}
}
