package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"screener/internal/app"
	scrcfg "screener/internal/config"
	"screener/internal/logger"
)

func main() {
	cfgPath := os.Getenv("SCREENER_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	var timeframe string
	var days int
	flag.StringVar(&timeframe, "t", "", "K 线周期 (5m, 15m, 30m, 1h, 2h, 4h, 8h)，覆盖配置文件")
	flag.StringVar(&timeframe, "timeframe", "", "同 -t")
	flag.IntVar(&days, "d", 0, "计算时长（天），覆盖配置文件")
	flag.IntVar(&days, "days", 0, "同 -d")
	flag.Parse()

	cfg, err := scrcfg.Load(cfgPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	if timeframe != "" {
		cfg.Screener.Timeframe = timeframe
	}
	if days > 0 {
		cfg.Screener.Days = days
	}

	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("初始化日志文件失败: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)

	// 中断信号触发协作式取消：不打断在途请求，在下一个符号前停止。
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	if err := application.Run(ctx); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
