package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/paydown/pkg/config"
	"github.com/yurifrl/paydown/pkg/csv"
	"github.com/yurifrl/paydown/pkg/schedule"
	"github.com/yurifrl/paydown/pkg/tracker"
	"github.com/yurifrl/paydown/pkg/ynab"
)

var (
	cliFilters filters
	cfgFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "paydown",
	Short: "Track recurring debt payments against a YNAB budget",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "paydown",
		Level:           level,
	})
}

// buildTracker wires config, token and the YNAB client together. Every
// command goes through here so flag overrides behave the same everywhere.
func buildTracker(cmd *cobra.Command, logger *log.Logger) (*config.Config, *tracker.Tracker, error) {
	_ = gotenv.Load()

	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	token, err := cfg.Token()
	if err != nil {
		return nil, nil, err
	}
	client := ynab.New(token, cfg.YNAB.BudgetID)
	return cfg, tracker.New(logger, cfg, client), nil
}

var statusCmd = &cobra.Command{
	Use:   "status [account...]",
	Short: "Show today's payment status for tracked accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, trk, err := buildTracker(cmd, logger)
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			names = cfg.Names()
		}

		completedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
		pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))   // yellow
		offStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))        // gray

		for _, name := range names {
			report, err := trk.Evaluate(name)
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%-20s | R$ %10.2f | %s", name, report.State.OutstandingBalance, report.Status)
			if report.Account.Deadline.Active() {
				if report.Account.Deadline.ShowDaysRemaining {
					line += fmt.Sprintf(" | %d payment(s) left, %d day(s) to deadline",
						report.State.PaymentsRemaining, report.State.CalendarDaysUntilDeadline)
				} else {
					line += fmt.Sprintf(" | %d day(s) to deadline", report.State.CalendarDaysUntilDeadline)
				}
			}
			if report.Projected {
				line += fmt.Sprintf(" | done ~%s", report.FinishDate.Format("2006-01-02"))
			} else {
				line += " | projection n/a"
			}

			switch report.Status {
			case schedule.StatusCompleted:
				fmt.Println(completedStyle.Render("✓ " + line))
			case schedule.StatusPending:
				fmt.Println(pendingStyle.Render("! " + line))
			default:
				fmt.Println(offStyle.Render("- " + line))
			}
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <account>",
	Short: "Print the reconciled payment history as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, trk, err := buildTracker(cmd, logger)
		if err != nil {
			return err
		}

		report, err := trk.Evaluate(args[0])
		if err != nil {
			return err
		}

		fmt.Print(string(csv.Create(report.History, cliFilters.toFilterFunc())))
		return nil
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <account> <amount>",
	Short: "Record a payment on the account, dated today",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, trk, err := buildTracker(cmd, logger)
		if err != nil {
			return err
		}

		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		return trk.RecordPayment(args[0], amount)
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <account>",
	Short: "Record a zero-amount acknowledgment for today's scheduled payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, trk, err := buildTracker(cmd, logger)
		if err != nil {
			return err
		}

		reason, _ := cmd.Flags().GetString("reason")
		return trk.RecordBlank(args[0], reason)
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <from> <to> <amount>",
	Short: "Record a transfer between two tracked accounts",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, trk, err := buildTracker(cmd, logger)
		if err != nil {
			return err
		}

		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[2], err)
		}
		memo, _ := cmd.Flags().GetString("memo")
		return trk.RecordTransfer(args[0], args[1], amount, memo)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <account>",
	Short: "Dump the full evaluation report for debugging",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, trk, err := buildTracker(cmd, logger)
		if err != nil {
			return err
		}

		report, err := trk.Evaluate(args[0])
		if err != nil {
			return err
		}
		pp.Println(report)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().String("budget", "", "Override the configured budget ID")

	// Filter flags for the report subcommand
	reportCmd.Flags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	reportCmd.Flags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	reportCmd.Flags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	reportCmd.Flags().BoolVar(&cliFilters.skipBlanks, "no-blanks", false, "Hide zero-amount acknowledgments")

	skipCmd.Flags().String("reason", "", "Why today's payment is being skipped (required)")
	transferCmd.Flags().String("memo", "", "Transfer memo")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
