package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/config"
	"github.com/tomz197/bombers/internal/loop/client"
	"github.com/tomz197/bombers/internal/loop/server"
)

func main() {
	// Logs would tear through the raw-mode screen, so they go to a file if asked for.
	opts := server.DefaultOptions()
	opts.Rules = config.ArenaRules(arena.DefaultRules())
	opts.Level.Seed = config.ArenaSeed(uint64(time.Now().UnixNano()))
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger := config.NewLogger("bombers")
		logger.SetOutput(f)
		opts.Logger = logger
	}

	gs, err := server.NewServer(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid game configuration: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gs.Run(ctx)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	name := "player"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}

	c := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{Username: name})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
