// Package main prints the XP leaderboard for the signed-in viewer.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	boardcmd "github.com/louisbranch/xpboard/internal/cmd/board"
	"github.com/louisbranch/xpboard/internal/platform/config"
)

func main() {
	cfg, err := boardcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BOARD] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := boardcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("board: %v", err)
	}
}
