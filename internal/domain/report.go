package domain

import (
	"sort"
	"time"
)

const (
	StatusParsed = "parsed"
	StatusFailed = "failed"
)

const (
	ErrCodeMalformedFilename = "malformed_filename"
	ErrCodeWorkbookFailed    = "workbook_failed"
	ErrCodeStandardsMissing  = "standards_missing"
	ErrCodeDataDirMissing    = "data_dir_missing"
	ErrCodeNoMeetFiles       = "no_meet_files"
	ErrCodeWriteFailed       = "write_failed"
	ErrCodeIOFailed          = "io_failed"
	ErrCodeConfigInvalid     = "config_invalid"
)

// RunReport 是对外稳定输出（stdout JSON）的结构。
// 一次运行一份：输入文件逐条列出，汇总由 Finalize 计算。
type RunReport struct {
	Path       string `json:"path"`
	OutputFile string `json:"output_file"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary RunSummary   `json:"summary"`
	Files   []FileReport `json:"files"`
}

// RunSummary 里 Parsed/Failed/Results 由 Finalize 从 Files 推导；
// Qualifiers/NoStandard 来自聚合阶段的诊断计数（调用方在 Finalize 前填好）。
type RunSummary struct {
	Parsed     int `json:"parsed"`
	Failed     int `json:"failed"`
	Results    int `json:"results"`
	Qualifiers int `json:"qualifiers"`
	NoStandard int `json:"no_standard"`
}

// FileReport 是单个输入文件的处理结果。
// File=="" 表示合成条目（配置/扫描等非文件级失败）。
type FileReport struct {
	File string `json:"file"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	Sheets  int `json:"sheets"`
	Results int `json:"results"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) files 稳定排序：按文件名字典序；file=="" 的合成条目排在最后
// 3) summary 的文件口径（parsed/failed/results）由 files 计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Files, func(i, j int) bool {
		a := r.Files[i].File
		b := r.Files[j].File
		if a == "" && b == "" {
			return false
		}
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})

	r.Summary.Parsed = 0
	r.Summary.Failed = 0
	r.Summary.Results = 0
	for _, f := range r.Files {
		switch f.Status {
		case StatusParsed:
			r.Summary.Parsed++
		case StatusFailed:
			r.Summary.Failed++
		}
		r.Summary.Results += f.Results
	}
}
