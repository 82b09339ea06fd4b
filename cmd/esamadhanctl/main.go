package main

import (
	"fmt"
	"os"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/spf13/cobra"
)

var catalogFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "esamadhanctl",
	Short: "Operator tools for the E-Samadhan volunteer API",
	Long: `esamadhanctl issues partner API keys and checks task catalog files
before they are deployed with CATALOG_PATH.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFiles()
	},
}

func init() {
	catalogListCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "catalog YAML file (defaults to the built-in catalog)")
	catalogCmd.AddCommand(catalogListCmd, catalogValidateCmd)
	rootCmd.AddCommand(keygenCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
