package config

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage engines selectable with the engine key.
const (
	EngineMemory  = "memory"
	EnginePGXPool = "pgx.pool"
	EngineSQLDB   = "sql.db"
	EngineSQLXDB  = "sqlx.db"
)

// Configuration keys. Environment variables use the LENDING_ prefix with dots replaced by underscores,
// e.g. LENDING_POSTGRES_DSN.
const (
	KeyEngine                  = "engine"
	KeyPostgresDSN             = "postgres.dsn"
	KeyPostgresReplicaDSN      = "postgres.replica_dsn"
	KeyPostgresBooksTable      = "postgres.books_table"
	KeyPostgresBorrowersTable  = "postgres.borrowers_table"
	KeyKafkaBrokers            = "kafka.brokers"
	KeyKafkaTopic              = "kafka.topic"
	KeyJWTSecret               = "jwt.secret"
	KeyJWTTTL                  = "jwt.ttl"
	KeyServiceOperationTimeout = "service.operation_timeout"
	KeyServiceRetryMaxAttempts = "service.retry_max_attempts"
	KeyServiceRetryBaseDelay   = "service.retry_base_delay"
	KeyFinesCurrency           = "fines.currency"
	KeyLogLevel                = "log.level"
	KeyLogFormat               = "log.format"
	KeyObservabilityEnabled    = "observability.enabled"
	KeyObservabilityTraces     = "observability.traces_endpoint"
	KeyObservabilityMetrics    = "observability.metrics_endpoint"
	KeyObservabilityService    = "observability.service_name"
)

const (
	envPrefix      = "LENDING"
	configFileName = "lending"
)

var (
	// ErrUnknownEngine is returned when the engine key names no supported storage engine.
	ErrUnknownEngine = errors.New("unknown storage engine")

	// ErrMissingPostgresDSN is returned when a postgres engine is selected without a DSN.
	ErrMissingPostgresDSN = errors.New("postgres dsn must be set for postgres engines")

	// ErrNonPositiveOperationTimeout is returned when the operation timeout is zero or negative.
	ErrNonPositiveOperationTimeout = errors.New("operation timeout must be positive")

	// ErrReadingConfigFileFailed is returned when a config file exists but can't be read.
	ErrReadingConfigFileFailed = errors.New("reading config file failed")
)

// Config is the complete runtime configuration.
type Config struct {
	Engine        string
	Postgres      PostgresConfig
	Kafka         KafkaConfig
	JWT           JWTConfig
	Service       ServiceConfig
	Fines         FinesConfig
	Log           LogConfig
	Observability ObservabilityConfig
}

// PostgresConfig configures the postgres engines. ReplicaDSN is only used by the pgx.pool engine.
type PostgresConfig struct {
	DSN            string
	ReplicaDSN     string
	BooksTable     string
	BorrowersTable string
}

// KafkaConfig configures event publishing. No brokers means events are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// HasBrokers reports whether Kafka publishing is configured.
func (c KafkaConfig) HasBrokers() bool {
	return len(c.Brokers) > 0
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type ServiceConfig struct {
	OperationTimeout time.Duration
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
}

type FinesConfig struct {
	Currency string
}

type LogConfig struct {
	Level  string
	Format string
}

type ObservabilityConfig struct {
	Enabled         bool
	TracesEndpoint  string
	MetricsEndpoint string
	ServiceName     string
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEngine, EngineMemory)
	v.SetDefault(KeyPostgresBooksTable, "books")
	v.SetDefault(KeyPostgresBorrowersTable, "borrowers")
	v.SetDefault(KeyKafkaTopic, "library_topic")
	v.SetDefault(KeyJWTTTL, time.Hour)
	v.SetDefault(KeyServiceOperationTimeout, 5*time.Second)
	v.SetDefault(KeyServiceRetryMaxAttempts, 6)
	v.SetDefault(KeyServiceRetryBaseDelay, 10*time.Millisecond)
	v.SetDefault(KeyFinesCurrency, "TRY")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyObservabilityEnabled, false)
	v.SetDefault(KeyObservabilityTraces, "localhost:4317")
	v.SetDefault(KeyObservabilityMetrics, "localhost:4317")
	v.SetDefault(KeyObservabilityService, "library-lending")
}

// NewViper creates a viper instance with defaults and environment binding.
// Flags can be bound afterward with BindPFlag, they take precedence over everything else.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadConfigFile reads configFile, or lending.{yaml,json,toml} from the working directory if configFile is empty.
// A missing default config file is not an error.
func ReadConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return errors.Join(ErrReadingConfigFileFailed, err)
	}

	return nil
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Engine: strings.TrimSpace(v.GetString(KeyEngine)),
		Postgres: PostgresConfig{
			DSN:            v.GetString(KeyPostgresDSN),
			ReplicaDSN:     v.GetString(KeyPostgresReplicaDSN),
			BooksTable:     v.GetString(KeyPostgresBooksTable),
			BorrowersTable: v.GetString(KeyPostgresBorrowersTable),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetStringSlice(KeyKafkaBrokers)),
			Topic:   v.GetString(KeyKafkaTopic),
		},
		JWT: JWTConfig{
			Secret: v.GetString(KeyJWTSecret),
			TTL:    v.GetDuration(KeyJWTTTL),
		},
		Service: ServiceConfig{
			OperationTimeout: v.GetDuration(KeyServiceOperationTimeout),
			RetryMaxAttempts: v.GetInt(KeyServiceRetryMaxAttempts),
			RetryBaseDelay:   v.GetDuration(KeyServiceRetryBaseDelay),
		},
		Fines: FinesConfig{
			Currency: v.GetString(KeyFinesCurrency),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Observability: ObservabilityConfig{
			Enabled:         v.GetBool(KeyObservabilityEnabled),
			TracesEndpoint:  v.GetString(KeyObservabilityTraces),
			MetricsEndpoint: v.GetString(KeyObservabilityMetrics),
			ServiceName:     v.GetString(KeyObservabilityService),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings that can't be defaulted away.
func (c Config) Validate() error {
	var errs []error

	switch c.Engine {
	case EngineMemory:
	case EnginePGXPool, EngineSQLDB, EngineSQLXDB:
		if c.Postgres.DSN == "" {
			errs = append(errs, ErrMissingPostgresDSN)
		}
	default:
		errs = append(errs, ErrUnknownEngine)
	}

	if c.Service.OperationTimeout <= 0 {
		errs = append(errs, ErrNonPositiveOperationTimeout)
	}

	return errors.Join(errs...)
}

// IsPostgres reports whether the selected engine stores records in postgres.
func (c Config) IsPostgres() bool {
	return c.Engine != EngineMemory
}

// splitList accepts both list values and comma separated strings, as they come from env variables.
func splitList(values []string) []string {
	var result []string

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" && !slices.Contains(result, part) {
				result = append(result, part)
			}
		}
	}

	return result
}
