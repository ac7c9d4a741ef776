package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/John-Robertt/swimq/internal/aggregate"
	"github.com/John-Robertt/swimq/internal/config"
	"github.com/John-Robertt/swimq/internal/domain"
	"github.com/John-Robertt/swimq/internal/infra/xlsxio"
	"github.com/John-Robertt/swimq/internal/meet"
	"github.com/John-Robertt/swimq/internal/report"
	"github.com/John-Robertt/swimq/internal/scan"
	"github.com/John-Robertt/swimq/internal/sheet"
	"github.com/John-Robertt/swimq/internal/standards"
)

// Execute 执行一次完整的批处理，并返回对外稳定的 RunReport。
//
// 阶段严格有序：标准表 → 扫描 → 解析 → 聚合 → 写报表。
// 文件之间的解析允许并发（互相独立，事后合并），但阶段边界不动。
// 配置级故障（标准表/数据目录缺失、零个赛果文件）直接终止；
// 文件级故障降级为该文件的 failed 条目，不影响其余文件。
func Execute(ctx context.Context, eff config.EffectiveConfig) domain.RunReport {
	return ExecuteWithObserver(ctx, eff, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出
// 进度/阶段信息（由上层决定是否启用）。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, obs Observer) domain.RunReport {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Path:       eff.Path,
		OutputFile: eff.OutputFile,
		StartedAt:  started,
		Files:      make([]domain.FileReport, 0, 32),
	}

	stdStarted := time.Now()
	tbl, ferr := loadStandards(eff.StandardsFile)
	if ferr != nil {
		rr.Files = append(rr.Files, *ferr)
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}
	if obs != nil {
		obs.OnPhaseDone("standards", map[string]any{
			"events_men":   tbl.EventCount("Men"),
			"events_women": tbl.EventCount("Women"),
		}, time.Since(stdStarted))
	}

	scanStarted := time.Now()
	files, err := scan.MeetFiles(eff.DataDir, eff.FilePrefix)
	if err != nil {
		code := domain.ErrCodeIOFailed
		if os.IsNotExist(err) {
			code = domain.ErrCodeDataDirMissing
		}
		rr.Files = append(rr.Files, syntheticFailed(code, fmt.Sprintf("数据目录不可用 %q：%v", eff.DataDir, err)))
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}
	if len(files) == 0 {
		rr.Files = append(rr.Files, syntheticFailed(domain.ErrCodeNoMeetFiles,
			fmt.Sprintf("%q 下没有 %s* 赛果文件", eff.DataDir, eff.FilePrefix)))
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}
	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{"files": len(files)}, time.Since(scanStarted))
	}

	// 解析阶段：按文件并发（worker pool），文件内串行。
	workers := eff.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	type parseResult struct {
		res     domain.FileReport
		results []domain.MeetResult
		dur     time.Duration
	}

	jobs := make(chan string)
	out := make(chan parseResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				oneStarted := time.Now()
				fr, results := parseOne(ctx, path)
				out <- parseResult{res: fr, results: results, dur: time.Since(oneStarted)}
			}
		}()
	}

	go func() {
		for _, p := range files {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	all := make([]domain.MeetResult, 0, 1024)
	done := 0
	for pr := range out {
		done++
		rr.Files = append(rr.Files, pr.res)
		all = append(all, pr.results...)
		if obs != nil {
			obs.OnFileDone(done, len(files), pr.res.File, pr.res, pr.dur)
		}
	}

	aggStarted := time.Now()
	counts, diag := aggregate.CountQualifiers(all, tbl)
	unique := aggregate.UniqueQualifiers(all, tbl)
	total := aggregate.TotalAthletes(all, tbl)
	rr.Summary.Qualifiers = diag.Qualifiers
	rr.Summary.NoStandard = diag.NoStandard
	if obs != nil {
		obs.OnPhaseDone("aggregate", map[string]any{
			"results":     len(all),
			"qualifiers":  diag.Qualifiers,
			"no_standard": diag.NoStandard,
		}, time.Since(aggStarted))
	}

	// 写报表：所有输入处理完才落盘（原子替换），失败不留半成品。
	writeStarted := time.Now()
	if err := writeReport(eff.OutputFile, tbl, counts, unique, total); err != nil {
		rr.Files = append(rr.Files, syntheticFailed(domain.ErrCodeWriteFailed, fmt.Sprintf("写报表失败：%v", err)))
	} else if obs != nil {
		obs.OnPhaseDone("write", map[string]any{"output": eff.OutputFile}, time.Since(writeStarted))
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}

// IsFatal 判断报告里是否有配置级故障（file=="" 的合成 failed 条目）。
// 文件级失败不算：运行照常完成并写出报表。
func IsFatal(rr domain.RunReport) bool {
	for _, f := range rr.Files {
		if f.File == "" && f.Status == domain.StatusFailed {
			return true
		}
	}
	return false
}

func loadStandards(path string) (*standards.Table, *domain.FileReport) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			fr := syntheticFailed(domain.ErrCodeStandardsMissing, fmt.Sprintf("标准表不存在：%q", path))
			return nil, &fr
		}
		fr := syntheticFailed(domain.ErrCodeIOFailed, fmt.Sprintf("标准表不可读 %q：%v", path, err))
		return nil, &fr
	}

	wb, err := xlsxio.Open(path)
	if err != nil {
		fr := syntheticFailed(domain.ErrCodeWorkbookFailed, fmt.Sprintf("打开标准表失败 %q：%v", path, err))
		return nil, &fr
	}
	defer func() { _ = wb.Close() }()

	sheets := make(map[string][][]sheet.Cell, len(standards.Sexes))
	for _, sex := range standards.Sexes {
		name := standards.SheetName(sex)
		rows, err := wb.ReadSheet(name)
		if err != nil {
			// 缺某个性别的 sheet 只得到空表（与缺数据同等对待）。
			continue
		}
		sheets[name] = rows
	}

	return standards.Build(sheets), nil
}

// parseOne 解析单个赛果文件。任何失败都降级为该文件的 failed 条目。
func parseOne(ctx context.Context, path string) (domain.FileReport, []domain.MeetResult) {
	base := filepath.Base(path)

	if err := ctx.Err(); err != nil {
		return failedFile(base, domain.ErrCodeIOFailed, fmt.Sprintf("已取消：%v", err)), nil
	}

	meta, err := meet.ParseFilename(base)
	if err != nil {
		var me *meet.MalformedFilenameError
		if errors.As(err, &me) {
			return failedFile(base, domain.ErrCodeMalformedFilename, err.Error()), nil
		}
		return failedFile(base, domain.ErrCodeIOFailed, err.Error()), nil
	}

	wb, err := xlsxio.Open(path)
	if err != nil {
		return failedFile(base, domain.ErrCodeWorkbookFailed, fmt.Sprintf("打开工作簿失败：%v", err)), nil
	}
	defer func() { _ = wb.Close() }()

	named := make([]meet.NamedSheet, 0, 8)
	for _, name := range wb.SheetNames() {
		rows, err := wb.ReadSheet(name)
		if err != nil {
			// 单个 sheet 读不出来：跳过该 sheet，文件整体继续。
			continue
		}
		named = append(named, meet.NamedSheet{Name: name, Rows: rows})
	}

	results, used := meet.Extract(meta, named)
	return domain.FileReport{
		File:    base,
		Status:  domain.StatusParsed,
		Sheets:  used,
		Results: len(results),
	}, results
}

func writeReport(path string, tbl *standards.Table,
	counts map[domain.StandardKey]int,
	unique map[domain.GroupKey]aggregate.NameSet,
	total map[domain.GroupKey]aggregate.NameSet,
) error {
	built := report.Build(tbl, counts, unique, total)

	out := make([]xlsxio.OutSheet, 0, len(built))
	for _, sh := range built {
		rows := make([][]any, len(sh.Rows))
		for i, row := range sh.Rows {
			rows[i] = row
		}
		out = append(out, xlsxio.OutSheet{Name: sh.Name, Rows: rows})
	}
	return xlsxio.Write(path, out)
}

func failedFile(file, code, msg string) domain.FileReport {
	return domain.FileReport{
		File:      file,
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	}
}

func syntheticFailed(code, msg string) domain.FileReport {
	return domain.FileReport{
		File:      "",
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	}
}
