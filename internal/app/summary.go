package app

import (
	"fmt"
	"strings"

	"screener/internal/logger"
	symbolpkg "screener/internal/pkg/symbol"
	"screener/internal/screener"
)

// printSummary 在日志里输出结果表与统计，格式贴近终端人工查看习惯。
func printSummary(ranked screener.Ranked, topN int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 27))
	fmt.Fprintf(&b, " Target : Score (TOP %d) ", topN)
	b.WriteString(strings.Repeat("=", 27))
	b.WriteString("\n")

	for idx, t := range ranked.Top(topN) {
		fmt.Fprintf(&b, "%d. %s: %.6f\n", idx+1, symbolpkg.Display(t.Symbol), t.Score)
	}
	b.WriteString(strings.Repeat("=", 79))

	logger.Infof("总处理数: %d，成功: %d，失败: %d", ranked.Processed, ranked.Succeeded, ranked.Failed)
	logger.InfoBlock(b.String())

	for _, f := range ranked.Failures {
		logger.Debugf("失败明细 %s: %s", f.Symbol, f.Reason)
	}
}
