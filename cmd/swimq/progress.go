package main

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/John-Robertt/swimq/internal/config"
	"github.com/John-Robertt/swimq/internal/domain"
)

// progress 把 run 的事件打成逐行文本（只在交互终端启用）。
// 加锁是契约要求：事件可能来自多个 goroutine。
type progress struct {
	mu sync.Mutex
	w  io.Writer
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) OnStart(eff config.EffectiveConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "swimq: path=%s standards=%s data=%s\n", eff.Path, eff.StandardsFile, eff.DataDir)
}

func (p *progress) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%-10s %s (%s)\n", name, formatFields(fields), dur.Round(time.Millisecond))
}

func (p *progress) OnFileDone(idx, total int, file string, res domain.FileReport, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if res.Status == domain.StatusFailed {
		fmt.Fprintf(p.w, "[%d/%d] %s 失败：%s (%s)\n", idx, total, file, res.ErrorMsg, dur.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(p.w, "[%d/%d] %s sheets=%d results=%d (%s)\n", idx, total, file, res.Sheets, res.Results, dur.Round(time.Millisecond))
}

// formatFields 按 key 排序输出，保证逐行内容稳定可比。
func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%v", k, fields[k])
	}
	return out
}
