package app

import (
	"context"
	"fmt"
	"time"

	"screener/internal/analysis/indicator"
	scrcfg "screener/internal/config"
	"screener/internal/gateway/binance"
	"screener/internal/logger"
	"screener/internal/market"
	"screener/internal/notifier"
	"screener/internal/output"
	"screener/internal/ratelimit"
	"screener/internal/screener"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// App 负责应用级编排：构建依赖 → 跑批 → 排序 → 落盘 → 通知。
type App struct {
	cfg     *scrcfg.Config
	source  *binance.Source
	runner  *screener.Runner
	writer  output.Writer
	discord *notifier.Discord
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *scrcfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	source := binance.New(binance.Config{
		RESTBaseURL: cfg.Binance.RESTBaseURL,
		HTTPTimeout: cfg.Binance.Timeout(),
		QuoteAsset:  cfg.Binance.QuoteAsset,
	})
	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute:      cfg.RateLimit.RequestsPerMinute,
		BaseDelay:              cfg.RateLimit.BaseDelay(),
		MaxDelay:               cfg.RateLimit.MaxDelay(),
		ErrorBackoffMultiplier: cfg.RateLimit.ErrorBackoffMultiplier,
	})
	runner := screener.NewRunner(barSource{source: source, settings: indicator.Settings{}}, limiter)

	a := &App{
		cfg:    cfg,
		source: source,
		runner: runner,
		writer: output.NewWriter(cfg.Output.Dir),
	}
	if cfg.Discord.Enabled {
		a.discord = notifier.NewDiscord(cfg.Discord.WebhookURL)
	}
	return a, nil
}

// Run 执行一次完整的筛选批处理。ctx 取消时跑批提前结束，部分结果照常
// 排序输出。
func (a *App) Run(ctx context.Context) error {
	tf, err := market.ParseTimeframe(a.cfg.Screener.Timeframe)
	if err != nil {
		return err
	}
	days := a.cfg.Screener.Days
	runID := uuid.NewString()[:8]
	startedAt := time.Now()

	logger.Infof("开始筛选 (run=%s, timeframe=%s, days=%d)", runID, tf.Key, days)

	var results []screener.ScoreResult
	group, gctx := errgroup.WithContext(ctx)
	// 过期目录清理与跑批互不依赖，并行执行。
	group.Go(func() error {
		a.writer.CleanupOld(a.cfg.Discord.CleanupOldFoldersDays, startedAt)
		return nil
	})
	group.Go(func() error {
		symbols, err := a.source.ListSymbols(gctx)
		if err != nil {
			return fmt.Errorf("获取交易对列表失败: %w", err)
		}
		logger.Infof("共 %d 个交易对待处理（串行，避免触发限频）", len(symbols))
		results = a.runner.Run(gctx, symbols, tf, days)
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	ranked := screener.Rank(results)
	meta := notifier.RunMeta{RunID: runID, Timeframe: tf.Key, Days: days, Timestamp: startedAt}
	printSummary(ranked, a.cfg.Screener.TopN)

	path, err := a.writer.WriteTargets(ranked.TopSymbols(a.cfg.Screener.TopN), tf.Key, startedAt)
	if err != nil {
		return err
	}
	logger.Infof("结果已保存: %s", path)

	a.notify(ranked, meta, path)
	logger.Infof("筛选完成 (run=%s, 用时 %s)", runID, time.Since(startedAt).Round(time.Second))
	return nil
}

// notify 推送结果到 Discord；通知失败只记日志，不影响本次运行结果。
func (a *App) notify(ranked screener.Ranked, meta notifier.RunMeta, artifactPath string) {
	if a.discord == nil {
		logger.Infof("Discord 通知未启用")
		return
	}
	if ranked.Succeeded == 0 {
		logger.Warnf("无成功结果，仅推送运行摘要")
		if err := a.discord.SendText(notifier.FormatSummary(ranked, meta)); err != nil {
			logger.Errorf("Discord 摘要发送失败: %v", err)
		}
		return
	}

	if err := a.discord.SendText(notifier.FormatResults(ranked, meta, a.cfg.Screener.TopN)); err != nil {
		logger.Errorf("Discord 消息发送失败: %v", err)
	}

	caption := notifier.FormatFileCaption(meta.Timeframe, meta.Days)
	if err := a.discord.SendFile(artifactPath, caption); err != nil {
		logger.Errorf("Discord 附件发送失败: %v", err)
		return
	}
	if a.cfg.Discord.DeleteFilesAfterUpload {
		if err := a.writer.RemoveArtifact(artifactPath); err != nil {
			logger.Warnf("删除已上传文件失败 %s: %v", artifactPath, err)
		} else {
			logger.Infof("已删除上传后的文件: %s", artifactPath)
		}
	}
}
