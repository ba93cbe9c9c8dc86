package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/nataliefeed/internal/config"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config (<config_label>)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		active, _ := config.CurrentLabel()

		if label == active && !forceRemove {
			fmt.Printf("Config %q is currently active. Remove it anyway? [y/N]: ", label)

			resp, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			resp = strings.TrimSpace(strings.ToLower(resp))

			if resp != "y" && resp != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		fellBack, err := config.RemoveConfig(label)
		if err != nil {
			return err
		}

		if fellBack {
			fmt.Println("Fallback switched to:", config.DefaultLabel)
		}
		fmt.Printf("Removed configuration %q\n", label)
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove the active config without asking")
	configCmd.AddCommand(configRemoveCmd)
}
