package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlexZinkM/votechain/deploy"
	"github.com/AlexZinkM/votechain/internal/client"
	"github.com/AlexZinkM/votechain/internal/config"
	"github.com/AlexZinkM/votechain/internal/wallet"

	"github.com/spf13/cobra"
)

func deployCommand() *cobra.Command {
	var (
		withReputation bool
		noPatch        bool
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the ledgers, seed a sample proposal and record the addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			logger := commonRun()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ethClient, err := client.NewEthereumClient(ctx, config.GetRPCURL())
			if err != nil {
				return err
			}
			defer ethClient.Close()

			agent := wallet.NewFileAgent(config.GetKeyFilePath(), wallet.NewTerminalPrompter())
			accounts, err := agent.RequestAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to unlock deployer account: %w", err)
			}
			if len(accounts) == 0 {
				return errors.New("no deployer account")
			}
			defer agent.Lock()

			opts, err := agent.Transactor(accounts[0], ethClient.ChainID())
			if err != nil {
				return err
			}
			logger.Info("deploying contracts", "deployer", accounts[0].Hex(), "chain_id", ethClient.ChainID().String())

			options := deploy.Options{
				InitialSupply:   big.NewInt(cfg.InitialSupply),
				WithReputation:  withReputation || cfg.DeployReputation,
				SampleProposals: cfg.SampleProposals,
				RegistryPath:    cfg.RegistryPath,
				SourcePath:      cfg.AddressesSource,
			}
			if noPatch {
				options.SourcePath = ""
			}

			registry, err := deploy.NewDeployer(deploy.NewChainBackend(ethClient, opts, cfg.ArtifactsDir), options, logger).Run(ctx)
			if err != nil {
				return err
			}

			fmt.Println("SimpleToken:", registry.SimpleToken)
			fmt.Println("SimpleVoting:", registry.SimpleVoting)
			if registry.ReputationSystem != "" {
				fmt.Println("ReputationSystem:", registry.ReputationSystem)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withReputation, "reputation", false, "deploy the reputation ledger and the weighted voting ledger")
	cmd.Flags().BoolVar(&noPatch, "no-patch", false, "only write the registry, do not rewrite the address descriptor")
	return cmd
}
