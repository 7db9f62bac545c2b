package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kadoinkus/chatbot-platform/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "chatbot-platform",
	Short: "Multi-tenant chatbot operations dashboard backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yml", "path to config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
