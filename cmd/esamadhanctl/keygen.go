package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/esamadhan/volunteer-api/pkg/auth"
	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/spf13/cobra"
)

var keygenRateLimit int

// keygenCmd signs a partner API key with API_MASTER_SECRET and registers it
var keygenCmd = &cobra.Command{
	Use:   "keygen <partner>",
	Short: "Generate and register a partner API key",
	Long: `Generate a partner API key and store it in the configured database
(DATABASE_URL or DATA_PATH). The server only accepts registered keys.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().IntVar(&keygenRateLimit, "rate-limit", 10000, "daily request limit for the key")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	secret := os.Getenv("API_MASTER_SECRET")
	if secret == "" {
		return errors.New("API_MASTER_SECRET not set")
	}
	if keygenRateLimit <= 0 {
		return fmt.Errorf("invalid rate limit %d", keygenRateLimit)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	partner := args[0]
	key := auth.New(config.AuthConfig{MasterSecret: secret}).GenerateAPIKey(partner)
	record := database.APIKey{
		Key:        key,
		KeyPreview: auth.KeyPreview(key),
		Name:       partner,
		RateLimit:  keygenRateLimit,
	}
	if err := db.Create(&record).Error; err != nil {
		return fmt.Errorf("register key for %s: %w", partner, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated Key for %s:\n%s\n", partner, key)
	return nil
}
