// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// configPath 配置文件路径，空则走默认查找顺序.
	configPath string
	// debug 让 config debug 子命令额外输出 viper 内部状态.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "dandelion",
		Short: "A self-hosted personal file locker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	registerServeCommands()
	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
	registerUserCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
