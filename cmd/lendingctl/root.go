package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/lending/shell/config"
)

// Exit codes per error category.
const (
	exitInfrastructure = 1
	exitValidation     = 2
	exitAuth           = 3
	exitNotFound       = 4
	exitPolicyDenied   = 5
)

type rootState struct {
	viper      *viper.Viper
	configFile string
	app        *app
}

func newRootCommand() *cobra.Command {
	state := &rootState{viper: config.NewViper()}

	root := &cobra.Command{
		Use:           "lendingctl",
		Short:         "Library lending rules engine",
		Long:          "lendingctl borrows, extends and returns books and reports fines.\nWith the memory engine all state is lost when the command exits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadConfigFile(state.viper, state.configFile); err != nil {
				return err
			}

			cfg, err := config.Load(state.viper)
			if err != nil {
				return err
			}

			state.app, err = newApp(cmd.Context(), cfg, cmd.ErrOrStderr())

			return err
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if state.app == nil {
				return nil
			}

			return state.app.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&state.configFile, "config", "", "config file (default ./lending.yaml if present)")
	flags.String("engine", config.EngineMemory, "storage engine: memory, pgx.pool, sql.db or sqlx.db")
	flags.String("postgres-dsn", "", "postgres connection string")
	flags.StringSlice("kafka-brokers", nil, "kafka brokers; events are only logged when empty")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", config.LogFormatText, "log format: text or json")

	mustBind(state.viper, config.KeyEngine, root, "engine")
	mustBind(state.viper, config.KeyPostgresDSN, root, "postgres-dsn")
	mustBind(state.viper, config.KeyKafkaBrokers, root, "kafka-brokers")
	mustBind(state.viper, config.KeyLogLevel, root, "log-level")
	mustBind(state.viper, config.KeyLogFormat, root, "log-format")

	root.AddCommand(
		newAddBookCommand(state),
		newRegisterCommand(state),
		newTokenCommand(state),
		newBorrowCommand(state),
		newExtendCommand(state),
		newReturnCommand(state),
		newFinesCommand(state),
		newSearchCommand(state),
		newListCommand(state),
		newLoansCommand(state),
		newMigrateCommand(state),
	)

	return root
}

func mustBind(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func exitCode(err error) int {
	switch shell.CategoryOf(err) {
	case shell.CategoryValidation:
		return exitValidation
	case shell.CategoryAuth:
		return exitAuth
	case shell.CategoryNotFound:
		return exitNotFound
	case shell.CategoryPolicyDenied:
		return exitPolicyDenied
	default:
		if isUsageError(err) {
			return exitValidation
		}

		return exitInfrastructure
	}
}

func isUsageError(err error) bool {
	for _, usageErr := range []error{
		config.ErrUnknownEngine,
		config.ErrMissingPostgresDSN,
		ErrMissingBorrower,
		ErrMissingJWTSecret,
		ErrMigrationNeedsPostgres,
	} {
		if errors.Is(err, usageErr) {
			return true
		}
	}

	return false
}
