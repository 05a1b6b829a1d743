// Package main はmm-server（GSM L3 Mobility Managementサーバー）のエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/callcontrol"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/metrics"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/mm"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/ops"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/server"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. 環境変数読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定読み込み失敗", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化（JSON形式）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With("app", "mm-server")
	slog.SetDefault(logger)

	slog.Info("mm-server起動開始",
		"listen_addr", cfg.ListenAddr,
		"ops_listen_addr", cfg.OpsListenAddr,
		"registrar_url", cfg.RegistrarURL,
		"lai", cfg.LAI().String(),
		"open_registration", cfg.OpenRegistration,
	)

	// 3. Valkeyクライアント初期化
	valkeyClient, err := store.NewValkeyClient(context.Background(), cfg)
	if err != nil {
		slog.Error("Valkey接続失敗",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("Valkey接続完了", "addr", cfg.ValkeyAddr())

	// 4. Store層生成
	subs := store.NewSubscriberTable(valkeyClient)
	authCache := store.NewAuthCache(valkeyClient)
	transactions := store.NewTransactionStore(valkeyClient)

	// 5. 登録バックエンドクライアント
	registrarClient := registrar.NewClient(cfg)

	// 6. メトリクス
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 7. MMエンジン
	starter := callcontrol.NewStarter(cfg, subs, transactions)
	engine := mm.NewEngine(cfg, registrarClient, subs, authCache, starter, mm.WithRecorder(m))

	// 8. 論理チャネルの振り分け
	handler := server.NewHandler(engine, m, cfg.ChannelRecvTimeout)
	transport := channel.NewTransport(cfg.ListenAddr, handler)

	// 9. 運用HTTPサーバー
	opsServer := ops.New(cfg, ops.NewHandler(valkeyClient, subs, cfg.LogMaskIMSI), registry)

	// 10. サーバー起動（goroutine）
	go func() {
		slog.Info("L3チャネルサーバー起動", "addr", cfg.ListenAddr)
		if err := transport.ListenAndServe(); err != nil && !errors.Is(err, channel.ErrServerClosed) {
			slog.Error("チャネルサーバーエラー", "event_id", "CH_SERVER_ERR", "error", err)
		}
	}()
	go func() {
		if err := opsServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("運用サーバーエラー", "event_id", "OPS_SERVER_ERR", "error", err)
		}
	}()

	// 11. シグナル待機 → Graceful Shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	slog.Info("シグナル受信、シャットダウン開始", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := transport.Shutdown(ctx); err != nil {
		slog.Warn("チャネルサーバー停止エラー", "error", err)
	}
	if err := opsServer.Shutdown(ctx); err != nil {
		slog.Warn("運用サーバー停止エラー", "error", err)
	}

	slog.Info("mm-server停止完了")
}
