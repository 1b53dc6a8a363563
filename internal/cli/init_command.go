package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nathanclairmonte/foldup/internal/config"
	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	initUse              = "init [path]"
	initShortDescription = "write a default " + utils.ConfigFileName
	initLongDescription  = `Write the default configuration, including the default exclusion
patterns, to ` + utils.ConfigFileName + ` in the given directory (default: current directory).
An existing file is kept unless --force is given.`
	forceFlagName        = "force"
	forceFlagDescription = "overwrite an existing configuration file"
	initCreatedFormat    = "Created configuration: %s\n"
)

// createInitCommand builds the init subcommand.
func createInitCommand() *cobra.Command {
	var force bool
	command := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			directory := ""
			if len(arguments) > 0 {
				directory = arguments[0]
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Directory: directory, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initCreatedFormat, writtenPath)
			return nil
		},
	}
	command.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return command
}
