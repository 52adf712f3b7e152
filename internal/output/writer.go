package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"screener/internal/logger"
	symbolpkg "screener/internal/pkg/symbol"
)

const (
	dateLayout     = "2006-01-02"
	fullDateLayout = "2006-01-02_15-04"
	targetsHeader  = "###Targets (Sort by score)\n"
)

// Writer 负责 output/<date>/ 下结果文件的写入与过期清理。
type Writer struct {
	BaseDir string
}

func NewWriter(baseDir string) Writer {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "output"
	}
	return Writer{BaseDir: baseDir}
}

// WriteTargets 写入 TradingView watchlist 文件并返回路径。
// 格式：标题行 + 逗号拼接的 BINANCE:SYM.P 列表。
func (w Writer) WriteTargets(symbols []string, timeframe string, now time.Time) (string, error) {
	dateDir := filepath.Join(w.BaseDir, now.Format(dateLayout))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	content := targetsHeader
	if len(symbols) > 0 {
		content += symbolpkg.TradingViewList(symbols)
	}

	name := fmt.Sprintf("%s_crypto_%s_strong_targets.txt", now.Format(fullDateLayout), timeframe)
	path := filepath.Join(dateDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("写入结果文件失败: %w", err)
	}
	return path, nil
}

// RemoveArtifact 删除已上传的结果文件；若日期目录因此变空则一并删除。
func (w Writer) RemoveArtifact(path string) error {
	if err := os.Remove(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			logger.Infof("已删除空日期目录: %s", dir)
		}
	}
	return nil
}

// CleanupOld 删除早于 daysToKeep 的日期目录（仅处理形如 YYYY-MM-DD 的目录），
// 返回被删除的目录名。
func (w Writer) CleanupOld(daysToKeep int, now time.Time) []string {
	if daysToKeep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(w.BaseDir)
	if err != nil {
		return nil
	}

	cutoff := now.AddDate(0, 0, -daysToKeep)
	var deleted []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderDate, err := time.Parse(dateLayout, entry.Name())
		if err != nil {
			// 非日期目录，跳过
			continue
		}
		if !folderDate.Before(cutoff) {
			continue
		}
		dir := filepath.Join(w.BaseDir, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			logger.Warnf("清理目录失败 %s: %v", dir, err)
			continue
		}
		deleted = append(deleted, entry.Name())
	}
	if len(deleted) > 0 {
		logger.Infof("已清理过期目录: %s", strings.Join(deleted, ", "))
	}
	return deleted
}
