package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

// 内置默认值即批处理的固定约定：无配置文件、无参数也能跑。
const (
	DefaultStandardsFile = "timestandards.xlsx"
	DefaultDataDir       = "data"
	DefaultOutputFile    = "qualifier_counts.xlsx"
	DefaultFilePrefix    = "CAN-MBSK_"
	DefaultConcurrency   = 4
)

// CLIArgs 只包含 CLI 暴露的两项入口（path/--out），并保留“是否显式
// 指定”的信息，保证覆盖优先级可实现。
type CLIArgs struct {
	Path string

	Out    string
	OutSet bool
}

// FileConfig 对应 swimq.json 的解析结构（整个文件可选，字段也全可选）。
type FileConfig struct {
	StandardsFile string `json:"standards_file"`
	DataDir       string `json:"data_dir"`
	OutputFile    string `json:"output_file"`
	FilePrefix    string `json:"file_prefix"`
	Concurrency   int    `json:"concurrency"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
// （实现层直接消费，不再做二次默认/优先级判断）。
//
// 三个路径字段都已是 clean + absolute。
type EffectiveConfig struct {
	Path string

	StandardsFile string
	DataDir       string
	OutputFile    string

	FilePrefix  string
	Concurrency int
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 发现并读取配置文件，然后与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// - path：CLI 给了用 CLI 的，否则就是 cwd
// - 配置文件位置固定在 <path>/swimq.json，不存在不算错误
//
// 覆盖优先级（固定）：
// - output_file：CLI --out > config > 默认
// - 其余字段：config > 默认（CLI 不暴露）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	path := cwdAbs
	if strings.TrimSpace(cli.Path) != "" {
		path = absCleanFrom(cwdAbs, cli.Path)
	}

	cfgPath := filepath.Join(path, "swimq.json")
	fc, _, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return merge(path, cli, fc, cfgPath)
}

func merge(path string, cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	standards := strings.TrimSpace(fc.StandardsFile)
	if standards == "" {
		standards = DefaultStandardsFile
	}

	dataDir := strings.TrimSpace(fc.DataDir)
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	// output_file：CLI > config > 默认
	out := ""
	if cli.OutSet {
		out = strings.TrimSpace(cli.Out)
		if out == "" {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("--out 不能为空")}
		}
	} else {
		out = strings.TrimSpace(fc.OutputFile)
		if out == "" {
			out = DefaultOutputFile
		}
	}

	prefix := strings.TrimSpace(fc.FilePrefix)
	if prefix == "" {
		prefix = DefaultFilePrefix
	}

	concurrency := fc.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	// 范围建议 [1, 32]；超出截断。
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > 32 {
		concurrency = 32
	}

	return EffectiveConfig{
		Path:          path,
		StandardsFile: absCleanFrom(path, standards),
		DataDir:       absCleanFrom(path, dataDir),
		OutputFile:    absCleanFrom(path, out),
		FilePrefix:    prefix,
		Concurrency:   concurrency,
	}, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
