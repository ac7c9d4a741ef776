// Package agematch 把运动员的字面年龄解析到标准表里最接近的年龄组。
package agematch

import (
	"sort"
	"strconv"

	"github.com/John-Robertt/swimq/internal/domain"
)

type candidate struct {
	num   int
	label domain.AgeLabel
}

// Best 在 available 里为 athleteAge 找最合适的年龄组标签。
//
// 规则（顺序固定）：
// 1) athleteAge 解析不了 → 无结果
// 2) 丢弃解析不了的候选；全丢 → 无结果
// 3) 数值升序排序
// 4) 精确相等 → 返回该标签
// 5) 低于最小值 → 返回最小标签（小龄并入最年轻组）
// 6) 高于最大值 → 返回最大标签（大龄并入最年长组）
// 7) 夹在中间（标准表不连续时才会发生）→ 绝对距离最小者；
//    距离相等取升序里先遇到的（稳定扫描）
//
// ok=false 只表示“无法判定”，调用方按跳过处理，绝不算运行错误。
func Best(athleteAge domain.AgeLabel, available []domain.AgeLabel) (domain.AgeLabel, bool) {
	want, err := strconv.Atoi(string(athleteAge))
	if err != nil {
		return "", false
	}

	cands := make([]candidate, 0, len(available))
	for _, a := range available {
		n, err := strconv.Atoi(string(a))
		if err != nil {
			continue
		}
		cands = append(cands, candidate{num: n, label: a})
	}
	if len(cands) == 0 {
		return "", false
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].num < cands[j].num })

	for _, c := range cands {
		if c.num == want {
			return c.label, true
		}
	}
	if want < cands[0].num {
		return cands[0].label, true
	}
	if want > cands[len(cands)-1].num {
		return cands[len(cands)-1].label, true
	}

	best := cands[0]
	bestDist := abs(want - best.num)
	for _, c := range cands[1:] {
		if d := abs(want - c.num); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best.label, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
