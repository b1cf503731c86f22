package commands

import (
	"context"
	"fmt"
	"os"

	"ibiassist-backend/lib/configutil"
	"ibiassist-backend/lib/scrapers/raspisan"
	"ibiassist-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "raspisan-cli",
	Short: "raspisan-cli scrapes schedules and grades from the inet.ibi.spb.ru portal.",
}

type Config struct {
	BaseUrl  string `json:"baseUrl"`
	Group    string `json:"group"`
	LastName string `json:"lastName"`
	Pin      string `json:"pin"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		cfg = Config{}
	}
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = "https://inet.ibi.spb.ru"
	}
	return cfg
}

func createClient(cfg Config) *raspisan.Client {
	client, err := raspisan.NewClient(cfg.BaseUrl)
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}
	return client
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
