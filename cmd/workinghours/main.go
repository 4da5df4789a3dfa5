package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aitullalimon/WorkingHoursApp/internal/billing"
	"github.com/aitullalimon/WorkingHoursApp/internal/config"
	"github.com/aitullalimon/WorkingHoursApp/internal/db"
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
	"github.com/aitullalimon/WorkingHoursApp/internal/repository"
	"github.com/aitullalimon/WorkingHoursApp/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "workinghours",
	Short: "Personal time tracking and invoicing",
	Long:  `WorkingHours tracks work sessions and piecework per company and computes periodic earnings and payment status.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		database, err := db.Open()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		// Run initial migration if this is a fresh database
		status, _ := db.GetMigrationStatus()
		if status != nil && status.CurrentVersion == 0 {
			if err := db.RunMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Error running initial migrations: %v\n", err)
				os.Exit(1)
			}
		}

		logger := newLogger()
		defer logger.Sync()

		if err := tui.Run(database, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [date]",
	Short: "Print the billing period and earnings for a company",
	Long: `Print the billing period enclosing a reference date and the earnings
breakdown of the work records inside it.

Examples:
  workinghours report --company "Acme"             # current period
  workinghours report --company "Acme" 2025-01-25  # period around a date`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		database, err := db.OpenAndMigrate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		company, err := findCompany(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		refDate := time.Now()
		if len(args) > 0 {
			refDate, err = time.Parse("2006-01-02", args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid date: %s (expected YYYY-MM-DD)\n", args[0])
				os.Exit(1)
			}
		}

		logger := newLogger()
		defer logger.Sync()

		period := billing.NewResolver(logger).Resolve(company.MonthStartDay, refDate)

		records, err := repository.NewWorkRecordRepo(database).GetByCompanyAndDateRange(company.ID, period.Start, period.End)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading work records: %v\n", err)
			os.Exit(1)
		}

		breakdown := billing.ComputeEarnings(*company, billing.SelectRecords(records, company.ID, period))

		fmt.Printf("Company: %s (%s)\n", company.Name, company.PaymentType)
		fmt.Printf("Period:  %s — %s\n", period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))
		fmt.Printf("Records: %d\n\n", len(records))
		fmt.Printf("Hours:     %g\n", breakdown.Hours)
		fmt.Printf("Units:     %g\n", breakdown.Units)
		fmt.Printf("Hourly:    %s%.2f\n", cfg.Currency, breakdown.HourlyPay)
		fmt.Printf("Piecework: %s%.2f\n", cfg.Currency, breakdown.PiecePay)
		fmt.Printf("Transport: %s%.2f\n", cfg.Currency, breakdown.TransportPay)
		fmt.Printf("Total:     %s%.2f\n", cfg.Currency, breakdown.Total)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := db.OpenAndMigrate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		status, err := db.GetMigrationStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading migration status: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Database at version %d (latest %d)\n", status.CurrentVersion, status.LatestVersion)
	},
}

func findCompany(cmd *cobra.Command) (*models.Company, error) {
	name, _ := cmd.Flags().GetString("company")
	id, _ := cmd.Flags().GetInt64("company-id")

	repo := repository.NewCompanyRepo(db.Get())

	if id != 0 {
		company, err := repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, fmt.Errorf("no company with id %d", id)
		}
		return company, nil
	}

	if name == "" {
		return nil, fmt.Errorf("either --company or --company-id is required")
	}

	company, err := repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("no company named %q", name)
	}
	return company, nil
}

// newLogger writes to the error log next to the database, so calendar
// fallbacks in period resolution leave a trace without disturbing the TUI.
func newLogger() *zap.Logger {
	logPath, err := config.ErrorLogPath()
	if err != nil {
		return zap.NewNop()
	}
	if err := config.EnsureDirectories(); err != nil {
		return zap.NewNop()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{logPath}
	zapCfg.ErrorOutputPaths = []string{logPath}

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func init() {
	reportCmd.Flags().StringP("company", "c", "", "Company name")
	reportCmd.Flags().Int64("company-id", 0, "Company id")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
