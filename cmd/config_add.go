package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/nataliefeed/internal/config"

	"github.com/spf13/cobra"
)

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config profile with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			fmt.Print("Enter label for new config: ")
			label, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		}
		label = strings.TrimSpace(label)

		path, err := config.CreateConfig(label, config.DefaultConfig())
		if err != nil {
			return err
		}

		fmt.Printf("Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configAddCmd)
}
