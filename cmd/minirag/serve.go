package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/filewatcher"
	"github.com/jismyseban/MINI-RAG-BOT/internal/config"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/ports"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/usecases"
	"github.com/jismyseban/MINI-RAG-BOT/internal/infrastructure/telegram"
)

// resyncDelay coalesces bursts of file events into one re-index pass.
const resyncDelay = 2 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the corpus and run the Telegram bot",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := syncCorpus(ctx, a); err != nil {
		log.Printf("[WARN] initial sync incomplete: %v", err)
	}

	watcher, err := filewatcher.NewFSNotifyWatcher(a.loader.SupportedExtensions())
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", a.cfg.DataDir, err)
	}
	go resyncLoop(ctx, a, events)

	token := config.Secret(a.cfg.Telegram.TokenEnv)
	if token == "" {
		return fmt.Errorf("telegram token env %s is not set", a.cfg.Telegram.TokenEnv)
	}

	bot, err := telegram.NewBot(token, a.answerer, usecases.NewHistory())
	if err != nil {
		return err
	}

	log.Printf("[INFO] serving corpus %s", a.cfg.DataDir)
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Println("[INFO] shutting down")
	return nil
}

// resyncLoop re-indexes the corpus after file changes, waiting out bursts so
// an editor save storm triggers a single pass.
func resyncLoop(ctx context.Context, a *app, events <-chan ports.FileEvent) {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			log.Printf("[INFO] corpus change detected: %s", ev.Path)
			if timer == nil {
				timer = time.NewTimer(resyncDelay)
			} else {
				timer.Reset(resyncDelay)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := syncCorpus(ctx, a); err != nil {
				log.Printf("[WARN] re-sync incomplete: %v", err)
			}
		}
	}
}

// syncCorpus scans the corpus directory and brings the store up to date.
func syncCorpus(ctx context.Context, a *app) error {
	docs, err := a.loader.Scan(ctx, a.cfg.DataDir)
	if err != nil {
		return err
	}
	if err := a.indexer.Sync(ctx, docs); err != nil {
		return err
	}

	count, err := a.store.Count(ctx)
	if err != nil {
		return err
	}
	log.Printf("[INFO] index up to date: %d documents, %d chunks", len(docs), count)
	return nil
}
