package notifier

import (
	"fmt"
	"strings"
	"time"

	symbolpkg "screener/internal/pkg/symbol"
	"screener/internal/screener"
)

// RunMeta 描述一次批处理的运行元信息，随结果一起渲染。
type RunMeta struct {
	RunID     string
	Timeframe string
	Days      int
	Timestamp time.Time
}

// FormatResults 渲染 Discord 结果消息：TOP N 列表 + 统计尾部。
func FormatResults(ranked screener.Ranked, meta RunMeta, maxTargets int) string {
	if maxTargets <= 0 {
		maxTargets = screener.DefaultTopN
	}
	ts := meta.Timestamp.Format("2006-01-02_15-04")

	var b strings.Builder
	fmt.Fprintf(&b, "**🚀 Crypto Screener Results (%s, %d days)**\n", meta.Timeframe, meta.Days)
	fmt.Fprintf(&b, "**📊 TOP %d Strong Targets (%s)**\n\n", maxTargets, ts)

	for idx, t := range ranked.Top(maxTargets) {
		fmt.Fprintf(&b, "%d. %s: %.6f\n", idx+1, symbolpkg.Display(t.Symbol), t.Score)
	}

	fmt.Fprintf(&b, "\n📈 Total processed: %d", ranked.Processed)
	fmt.Fprintf(&b, "\n✅ Successfully calculated: %d", ranked.Succeeded)
	fmt.Fprintf(&b, "\n❌ Failed: %d", ranked.Failed)
	if meta.RunID != "" {
		fmt.Fprintf(&b, "\n🆔 Run: %s", meta.RunID)
	}
	return b.String()
}

// FormatFileCaption 渲染附件随附消息。
func FormatFileCaption(timeframe string, days int) string {
	return fmt.Sprintf("📎 **Crypto Screener Results File**\nTimeframe: %s | Days: %d", timeframe, days)
}

// FormatSummary 渲染不带目标明细的运行摘要。
func FormatSummary(ranked screener.Ranked, meta RunMeta) string {
	var b strings.Builder
	b.WriteString("**📊 Crypto Screening Summary**\n")
	fmt.Fprintf(&b, "**Time:** %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Timeframe:** %s | **Days:** %d\n\n", meta.Timeframe, meta.Days)
	fmt.Fprintf(&b, "📈 Total processed: %d\n", ranked.Processed)
	fmt.Fprintf(&b, "✅ Successfully calculated: %d\n", ranked.Succeeded)
	fmt.Fprintf(&b, "❌ Failed: %d\n", ranked.Failed)
	if ranked.Processed > 0 {
		rate := float64(ranked.Succeeded) / float64(ranked.Processed) * 100
		fmt.Fprintf(&b, "📊 Success rate: %.1f%%", rate)
	}
	return b.String()
}
