package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/infrastructure/config"
	"github.com/iho/backoffice/internal/infrastructure/logger"
	"github.com/iho/backoffice/internal/infrastructure/postgres"
	"github.com/iho/backoffice/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backoffice-cli",
		Short: "Backoffice CLI tool",
		Long:  `A command line interface for interacting with the backoffice API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the backoffice API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(statementCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func statementCmd() *cobra.Command {
	var (
		firmID   string
		from     string
		to       string
		asJSON   bool
		interact bool
	)

	cmd := &cobra.Command{
		Use:   "statement <party-id>",
		Short: "Fetch a party's account statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := usecase.StatementRequest{
				FirmID:  firmID,
				PartyID: args[0],
			}

			var err error
			if req.DateFrom, err = parseDateFlag(from); err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			if req.DateTo, err = parseDateFlag(to); err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			client := &apiClient{baseURL: baseURL, client: &http.Client{Timeout: timeout}}

			if interact {
				return runInteractive(client, req, os.Stdin)
			}

			statement, err := client.ComputeStatement(context.Background(), req)
			if err != nil {
				return err
			}

			if asJSON {
				printJSON(statement)
				return nil
			}

			printStatement(statement)
			return nil
		},
	}

	cmd.Flags().StringVar(&firmID, "firm", "", "Firm ID (required)")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	cmd.Flags().BoolVar(&interact, "interactive", false, "Re-run the statement as you edit the date range")
	cobra.CheckErr(cmd.MarkFlagRequired("firm"))

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			resp, err := client.Get(baseURL + "/ready")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server not ready (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
			}

			fmt.Println("Server is ready")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
		},
	})

	return cmd
}

// runInteractive keeps one statement view open and reloads it for each date
// range typed on input. Stale responses never overwrite newer ones; the
// session handles that.
func runInteractive(client *apiClient, req usecase.StatementRequest, input io.Reader) error {
	session := usecase.NewStatementSession(client, zerolog.Nop(), nil)
	defer session.Close()

	ctx := context.Background()
	<-session.Load(ctx, req)
	printSession(session)

	fmt.Println(`Enter a date range ("FROM TO", dates as YYYY-MM-DD) or "q" to quit.`)

	scanner := bufio.NewScanner(input)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			break
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Println(`expected "FROM TO"`)
			continue
		}

		var err error
		if req.DateFrom, err = parseDateFlag(fields[0]); err != nil {
			fmt.Printf("invalid start date: %v\n", err)
			continue
		}
		if req.DateTo, err = parseDateFlag(fields[1]); err != nil {
			fmt.Printf("invalid end date: %v\n", err)
			continue
		}

		<-session.Load(ctx, req)
		printSession(session)
	}

	return scanner.Err()
}

func printSession(session *usecase.StatementSession) {
	state, statement, err := session.Snapshot()
	switch state {
	case usecase.SessionReady:
		printStatement(statement)
	case usecase.SessionFailed:
		fmt.Printf("statement failed: %v\n", err)
		if last := session.LastReady(); last != nil {
			fmt.Printf("last successful range: %s to %s\n",
				last.Summary.DateFrom.Format(domain.DateFormat),
				last.Summary.DateTo.Format(domain.DateFormat))
		}
	default:
		fmt.Printf("session state: %s\n", state)
	}
}

func printStatement(s *domain.Statement) {
	fmt.Printf("Statement %s to %s\n",
		s.Summary.DateFrom.Format(domain.DateFormat),
		s.Summary.DateTo.Format(domain.DateFormat))
	fmt.Printf("%-10s  %-30s  %12s  %12s  %12s\n", "DATE", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE")

	for _, e := range s.Entries {
		fmt.Printf("%-10s  %-30s  %12s  %12s  %12s\n",
			e.Date.Format(domain.DateFormat),
			truncate(e.Description, 30),
			e.Debit.StringFixed(2),
			e.Credit.StringFixed(2),
			e.Balance.StringFixed(2))
	}

	fmt.Printf("\nOpening: %s  Debits: %s  Credits: %s  Closing: %s  (%d movements)\n",
		s.Summary.OpeningBalance.StringFixed(2),
		s.Summary.TotalDebit.StringFixed(2),
		s.Summary.TotalCredit.StringFixed(2),
		s.Summary.ClosingBalance.StringFixed(2),
		s.Summary.EntryCount)
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
