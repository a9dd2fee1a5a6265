package main

import (
	"errors"

	"github.com/AlexZinkM/votechain/deploy"
	"github.com/AlexZinkM/votechain/internal/config"

	"github.com/spf13/cobra"
)

func updateAddressesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update-addresses",
		Short: "Rewrite the address descriptor from the deployment registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			logger := commonRun()

			registry, err := deploy.UpdateAddresses(cfg.RegistryPath, cfg.AddressesSource)
			if err != nil {
				if errors.Is(err, deploy.ErrNoRegistry) {
					logger.Error("contracts registry not found, run deploy first", "path", cfg.RegistryPath)
				}
				return err
			}

			logger.Info("contract addresses updated",
				"path", cfg.AddressesSource,
				"token", registry.SimpleToken,
				"voting", registry.SimpleVoting,
			)
			return nil
		},
	}
}
