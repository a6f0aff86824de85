// Command generate is the Lambda entry point behind API Gateway for the
// generate route.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"tinyurl.local/internal/app/tinyurl"
	"tinyurl.local/internal/app/tinyurl/lambdaapi"
	"tinyurl.local/internal/app/tinyurl/store"
	"tinyurl.local/internal/platform/config"
	"tinyurl.local/internal/platform/logging"
	"tinyurl.local/internal/platform/metrics"
	"tinyurl.local/internal/platform/trace"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(os.Stdout, cfg)
	metrics.Init()

	if cfg.TracingEnabled {
		if shutdown := trace.InitTrace(cfg.OtlpGrpcEndpoint, cfg.OtlpServiceName); shutdown != nil {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	// 冷启动时建一次客户端，之后的调用复用
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mappings, closeStore, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	slog.Info("lambda starting", "op", tinyurl.OpGenerate, "store", mappings.Name())
	lambda.Start(lambdaapi.NewGenerateHandler(tinyurl.NewGenerateService(mappings, logger)))
}
