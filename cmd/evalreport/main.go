package main

import (
	"log"
	"os"

	"github.com/okozyrev/ragproof/internal/config"
	"github.com/okozyrev/ragproof/internal/eval"
)

// Re-reads the eval log and recomputes the aggregates. Needs no running
// service; points at historical logs via EVAL_LOG_FILE or an argument.
func main() {
	cfg := config.Load()
	path := cfg.EvalLogFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	results, err := eval.ReadResults(path)
	if err != nil {
		log.Fatalf("read eval log: %v", err)
	}

	eval.Analyze(results).Print(os.Stdout)
}
