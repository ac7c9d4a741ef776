package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MeetFiles 列出 dir 下符合命名约定的赛果文件：
// 文件名以 prefix 开头，扩展名是 .xlsx/.xls（不分大小写）。
//
// 注意：只看 dir 的第一层（赛果导出是平铺的，不递归），且只做
// ReadDir，不读文件内容。目录不存在原样返回错误，由上层定性为
// 配置故障（fail-fast）。
func MeetFiles(dir string, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !isSpreadsheetExt(strings.ToLower(filepath.Ext(name))) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	// 强制稳定顺序，避免不同平台/文件系统行为差异带来的不确定性。
	sort.Strings(files)
	return files, nil
}

func isSpreadsheetExt(ext string) bool {
	switch ext {
	case ".xlsx", ".xls":
		return true
	default:
		return false
	}
}
