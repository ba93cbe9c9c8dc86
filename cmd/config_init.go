package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/nataliefeed/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultPath := filepath.Join(config.ConfigsDir(), config.DefaultLabel+".yaml")

		if _, err := os.Stat(defaultPath); err == nil {
			fmt.Println("Configuration already exists at:")
			fmt.Println("  ", defaultPath)
			fmt.Println("Use `nataliefeed config reset` to recreate it.")
			return nil
		}

		def := config.DefaultConfig()

		fmt.Println("Default configuration:")
		def.Print()
		fmt.Println()

		fmt.Printf("Create Default config at %s? [y/N]: ", defaultPath)
		resp, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		resp = strings.TrimSpace(strings.ToLower(resp))

		if resp != "y" && resp != "yes" {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := config.CreateConfig(config.DefaultLabel, def)
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		if err := config.SwitchConfig(config.DefaultLabel); err != nil {
			return fmt.Errorf("failed to set active config: %w", err)
		}

		fmt.Println("Config created at:", path)
		fmt.Println("This config is now active (label: Default).")

		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
