package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/votechain/docs"
	"github.com/AlexZinkM/votechain/internal/api"
	"github.com/AlexZinkM/votechain/internal/client"
	"github.com/AlexZinkM/votechain/internal/config"
	"github.com/AlexZinkM/votechain/internal/metrics"
	"github.com/AlexZinkM/votechain/internal/wallet"
	"github.com/AlexZinkM/votechain/votechain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd)
		},
	}
}

func serveRun(cmd *cobra.Command) error {
	cfg := config.Get()
	logger := commonRun()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addresses, err := votechain.ParseAddresses(cfg.TokenAddress, cfg.VotingAddress, cfg.Reputation)
	if err != nil {
		return err
	}

	ethClient, err := client.NewEthereumClient(ctx, config.GetRPCURL())
	if err != nil {
		return err
	}
	defer ethClient.Close()
	logger.Info("connected to node", "rpc_url", config.GetRPCURL(), "chain_id", ethClient.ChainID().String())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prompter := wallet.NewTerminalPrompter()
	app := votechain.New(
		wallet.NewFileAgent(config.GetKeyFilePath(), prompter),
		votechain.NewChainBinder(ethClient, addresses),
		ethClient,
		cfg.TokenSymbol,
		logger,
		metrics.New(registry),
	)

	router, err := api.SetupRouter(app, config.GetKeyFilePath(), prompter, registry)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", server.Addr, "swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", config.GetPort()))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		if err := app.Run(gctx, cfg.WatchInterval); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
