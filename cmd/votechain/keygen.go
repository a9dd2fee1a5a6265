package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/votechain/internal/config"
	"github.com/AlexZinkM/votechain/internal/wallet"

	"github.com/spf13/cobra"
)

func keygenCommand() *cobra.Command {
	var importKey bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create the .cwt key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompter := wallet.NewTerminalPrompter()

			var hexKey []byte
			if importKey {
				key, err := prompter.Prompt("Private key (hex): ")
				if err != nil {
					return err
				}
				defer clear(key)
				hexKey = key
			}

			password, err := newPassword(prompter)
			if err != nil {
				return err
			}
			defer clear(password)

			var address string
			if importKey {
				address, err = wallet.Import(config.GetKeyFilePath(), strings.TrimPrefix(strings.TrimSpace(string(hexKey)), "0x"), password)
			} else {
				address, err = wallet.Generate(config.GetKeyFilePath(), password)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "Wallet saved to", config.GetKeyFilePath())
			fmt.Fprintln(os.Stdout, "Address:", address)
			return nil
		},
	}
	cmd.Flags().BoolVar(&importKey, "import", false, "import an existing private key instead of generating one")
	return cmd
}

func passwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the key file password",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompter := wallet.NewTerminalPrompter()

			oldPassword, err := prompter.Prompt("Current password: ")
			if err != nil {
				return err
			}
			defer clear(oldPassword)

			password, err := newPassword(prompter)
			if err != nil {
				return err
			}
			defer clear(password)

			address, err := wallet.ChangePassword(config.GetKeyFilePath(), oldPassword, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Password changed for", address)
			return nil
		},
	}
}

// newPassword asks for a password twice
func newPassword(prompter wallet.Prompter) ([]byte, error) {
	password, err := prompter.Prompt("New password: ")
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	confirm, err := prompter.Prompt("Repeat password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(confirm)

	if !bytes.Equal(password, confirm) {
		clear(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}
