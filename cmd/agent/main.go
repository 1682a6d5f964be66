package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okozyrev/ragproof/internal/bootstrap"
	"github.com/okozyrev/ragproof/internal/config"
	"github.com/okozyrev/ragproof/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("rag-agent", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	fmt.Println("RAG agent ready. Type a question, or \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		answer, err := app.Orchestrator.Run(ctx, line)
		if err != nil {
			fmt.Printf("Agent error: %v\n", err)
			continue
		}
		fmt.Printf("Assistant: %s\n\n", answer)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}
