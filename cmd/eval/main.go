package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okozyrev/ragproof/internal/bootstrap"
	"github.com/okozyrev/ragproof/internal/config"
	"github.com/okozyrev/ragproof/internal/eval"
	"github.com/okozyrev/ragproof/internal/infrastructure/ragapi"
	"github.com/okozyrev/ragproof/internal/journal"
	"github.com/okozyrev/ragproof/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("rag-eval", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cases, err := eval.LoadCases(cfg.EvalCaseFile)
	if err != nil {
		log.Fatalf("load cases: %v", err)
	}

	evalLog, err := journal.NewEvalLog(cfg.EvalLogFile)
	if err != nil {
		log.Fatalf("init eval log: %v", err)
	}

	var runner eval.CaseRunner
	switch cfg.EvalTarget {
	case "api":
		client := ragapi.New(cfg.RAGAPIURL, time.Duration(cfg.EvalTimeoutSeconds)*time.Second)
		runner = eval.NewAPIRunner(client)
	case "agent":
		app, err := bootstrap.New(cfg)
		if err != nil {
			log.Fatalf("bootstrap error: %v", err)
		}
		runner = eval.NewAgentRunner(app.Orchestrator)
	default:
		log.Fatalf("unknown EVAL_TARGET %q (want agent or api)", cfg.EvalTarget)
	}

	summary, err := eval.NewHarness(runner, evalLog, os.Stdout).Run(ctx, cases)
	if err != nil {
		log.Fatalf("eval run: %v", err)
	}
	if summary.Passes < summary.Total {
		os.Exit(1)
	}
}
