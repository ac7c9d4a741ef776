package agematch

import (
	"testing"

	"github.com/John-Robertt/swimq/internal/domain"
)

func labels(ss ...string) []domain.AgeLabel {
	out := make([]domain.AgeLabel, 0, len(ss))
	for _, s := range ss {
		out = append(out, domain.AgeLabel(s))
	}
	return out
}

func TestBest_BoundaryRules(t *testing.T) {
	avail := labels("11", "13", "15")

	tests := []struct {
		name string
		age  string
		want string
	}{
		{"低于最小并入最年轻组", "10", "11"},
		{"高于最大并入最年长组", "20", "15"},
		{"精确匹配优先", "13", "13"},
		{"中间空档取距离最近", "14", "13"}, // 13 和 15 等距：取升序先遇到的
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Best(domain.AgeLabel(tc.age), avail)
			if !ok || string(got) != tc.want {
				t.Fatalf("Best(%q) = %q ok=%v，期望 %q", tc.age, got, ok, tc.want)
			}
		})
	}
}

func TestBest_UnsortedInput(t *testing.T) {
	// 输入顺序不应影响结果。
	got, ok := Best("10", labels("15", "11", "13"))
	if !ok || got != "11" {
		t.Fatalf("期望 11，实际 %q ok=%v", got, ok)
	}
}

func TestBest_NoResultIsNotAnError(t *testing.T) {
	if _, ok := Best("abc", labels("11")); ok {
		t.Fatalf("非数字年龄不应有匹配")
	}
	if _, ok := Best("12", labels("open", "senior")); ok {
		t.Fatalf("候选全部不可解析时不应有匹配")
	}
	if _, ok := Best("12", nil); ok {
		t.Fatalf("空候选不应有匹配")
	}
}

func TestBest_SkipsUnparseableCandidates(t *testing.T) {
	got, ok := Best("12", labels("open", "11", "13"))
	if !ok || got != "11" {
		t.Fatalf("期望跳过不可解析候选后得到 11，实际 %q ok=%v", got, ok)
	}
}
