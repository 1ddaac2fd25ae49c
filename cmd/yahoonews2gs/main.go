package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rostis232/yahoonews2googlesheet/config"
	"github.com/rostis232/yahoonews2googlesheet/internal/app/repository"
	"github.com/rostis232/yahoonews2googlesheet/internal/app/scraper"
	"github.com/rostis232/yahoonews2googlesheet/internal/pkg/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := initConfig(); err != nil {
		color.Red("error while config loading: %s", err)
		os.Exit(1)
	}
	config.SetupLogging(viper.GetString("log.level"), viper.GetString("log.dir"))

	rootCmd := &cobra.Command{
		Use:   "yahoonews2gs",
		Short: "Collects Yahoo! News articles into a Google Sheet on a schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "once",
		Short: "Runs a single collection and exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.RunOnce()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}

func newApp() (*app.App, error) {
	return app.NewApp(app.Config{
		DB: repository.Config{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.dbname"),
		},
		CredentialsFile: viper.GetString("sheets.credentials_file"),
		SpreadsheetID:   viper.GetString("sheets.spreadsheet_id"),
		SheetName:       viper.GetString("sheets.sheet_name"),
		ArchiveDir:      viper.GetString("archive.dir"),
		CronSpec:        viper.GetString("schedule.cron"),
		Scraper: scraper.Config{
			Timeout:           viper.GetDuration("scraper.timeout"),
			RequestsPerSecond: viper.GetFloat64("scraper.requests_per_second"),
			Retries:           viper.GetInt("scraper.retries"),
			MaxPerCategory:    viper.GetInt("scraper.max_per_category"),
		},
	})
}

func initConfig() error {
	viper.AddConfigPath("config")
	viper.SetConfigName("config")
	viper.SetDefault("sheets.credentials_file", "credentials.json")
	viper.SetDefault("sheets.sheet_name", "yahoo-news-scraper")
	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("log.dir", "logs")
	viper.SetDefault("schedule.cron", "0 * * * *")
	return viper.ReadInConfig()
}
