package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/rotlog"
	"github.com/lixenwraith/rotlog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg := rotlog.DefaultConfig()
	err := cfg.Override(
		"name=fasthttp",
		"directory=/var/log/fasthttp",
		"file_level=info",
		"max_file_bytes=10485760",
	)
	if err != nil {
		panic(err)
	}

	logger := rotlog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(rotlog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	access := logger.Trace("access")
	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(ctx)
			access.Info(string(ctx.Method()), " ", string(ctx.Path()), " ", ctx.Response.StatusCode())
		},
		Logger: fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	logger.Info("starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Error("server stopped: ", err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return rotlog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return rotlog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
