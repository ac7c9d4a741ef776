package run

import (
	"time"

	"github.com/John-Robertt/swimq/internal/config"
	"github.com/John-Robertt/swimq/internal/domain"
)

// Observer 用于把“运行进度/阶段/文件结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
// - Observer 的实现必须并发安全：OnFileDone 可能来自多个 goroutine
//   的汇聚循环（当前实现里事件在单 goroutine 收口，但契约不依赖这一点）。
type Observer interface {
	// OnStart 在 ExecuteWithObserver 开始时调用（应尽量早）。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（用于打印阶段统计与耗时）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnFileDone 在某个赛果文件处理完成时调用。
	OnFileDone(idx, total int, file string, res domain.FileReport, dur time.Duration)
}
