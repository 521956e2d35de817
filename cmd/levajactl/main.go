// Command levajactl runs operator tasks against the marketplace database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apiapp "github.com/levaja/marketplace-api/internal/app/api"
	platformauth "github.com/levaja/marketplace-api/internal/platform/auth"
	"github.com/levaja/marketplace-api/internal/platform/migrations"
	"github.com/levaja/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/levaja/marketplace-api/internal/platform/postgres"
	"github.com/levaja/marketplace-api/internal/platform/seed"
)

var errNoDatabase = errors.New("POSTGRES_DSN not set or connection failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "levajactl",
		Short:        "Operate the LevaJá marketplace",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	root.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newTokenCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

// session holds what a database-backed subcommand needs.
type session struct {
	cfg         *apiapp.Config
	db          *gorm.DB
	instruments *observability.Instruments
	close       func()
}

func openSession(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := apiapp.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	instruments, shutdown, err := observability.Init(ctx, observability.Options{
		ServiceName:    "levajactl",
		Environment:    cfg.Environment,
		LogLevel:       cfg.LogLevel,
		Registerer:     prometheus.NewRegistry(),
		LogOutput:      cmd.ErrOrStderr(),
		DisableTracing: true,
	})
	if err != nil {
		return nil, err
	}
	db, closeDB := platformpostgres.Open(ctx, cfg.Postgres.DSN, apiapp.PostgresOptions(cfg), instruments.Logger)
	s := &session{
		cfg:         cfg,
		db:          db,
		instruments: instruments,
		close: func() {
			closeDB()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		},
	}
	if db == nil {
		s.close()
		return nil, errNoDatabase
	}
	return s, nil
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every marketplace table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := migrations.Run(s.db); err != nil {
				return err
			}
			for _, step := range migrations.Steps() {
				fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", step.Context)
			}
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset, skipping records that already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := migrations.Run(s.db); err != nil {
				return err
			}
			services, err := apiapp.BuildServices(s.cfg, s.db, s.instruments)
			if err != nil {
				return err
			}
			ds, err := seed.Demo()
			if err != nil {
				return err
			}
			sum, err := seed.Apply(ctx, ds, services.Seeding(), time.Now(), s.instruments.Logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded users=%d markets=%d sectors=%d products=%d promotions=%d\n",
				sum.Users, sum.Markets, sum.Sectors, sum.Products, sum.Promotions)
			return nil
		},
	}
}

// newTokenCmd signs in through the accounts service so the token is backed by a stored session.
func newTokenCmd(opts *rootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign in and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			services, err := apiapp.BuildServices(s.cfg, s.db, s.instruments)
			if err != nil {
				return err
			}
			auth, err := services.Accounts.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), auth.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash stored for a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := platformauth.BcryptHasher{Cost: cost}.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
