package main

import "testing"

func TestParseRunArgs(t *testing.T) {
	ra, err := parseRunArgs([]string{"/tmp/meets", "--out=report.xlsx"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if ra.Path != "/tmp/meets" || ra.Out != "report.xlsx" || !ra.OutSet {
		t.Fatalf("解析结果不符合预期：%+v", ra)
	}

	ra, err = parseRunArgs([]string{"--out", "x.xlsx"})
	if err != nil || ra.Out != "x.xlsx" || !ra.OutSet {
		t.Fatalf("--out 两段形式解析失败：%+v err=%v", ra, err)
	}
}

func TestParseRunArgs_Errors(t *testing.T) {
	if _, err := parseRunArgs([]string{"--out"}); err == nil {
		t.Fatalf("--out 缺值应报错")
	}
	if _, err := parseRunArgs([]string{"--nope"}); err == nil {
		t.Fatalf("未知参数应报错")
	}
	if _, err := parseRunArgs([]string{"a", "b"}); err == nil {
		t.Fatalf("重复 path 应报错")
	}
}
