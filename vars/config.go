package vars

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"labor-contract/logic/compliance"
)

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level       string
	Development bool
}

type LLMConfig struct {
	Provider      string
	BaseURL       string
	Model         string
	APIKey        string
	Timeout       time.Duration
	RatePerMinute int
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Seoul",
		c.Host, c.User, c.Password, c.DBName, c.Port)
}

type SessionConfig struct {
	Driver    string
	IdleTTL   time.Duration
	PurgeCron string
}

type CatalogConfig struct {
	Enabled          bool
	Path             string
	TopK             int
	ESAddr           string
	ESIndex          string
	MilvusAddr       string
	MilvusCollection string
	EmbeddingURL     string
	EmbeddingModel   string
	EmbeddingTimeout time.Duration
}

// Config is the typed view of everything Load reads.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	LLM        LLMConfig
	Postgres   PostgresConfig
	Session    SessionConfig
	Catalog    CatalogConfig
	Compliance compliance.Policy
}

func FromViper(v *viper.Viper) Config {
	return Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		LLM: LLMConfig{
			Provider:      v.GetString("llm.provider"),
			BaseURL:       v.GetString("llm.base_url"),
			Model:         v.GetString("llm.model"),
			APIKey:        v.GetString("llm.api_key"),
			Timeout:       v.GetDuration("llm.timeout"),
			RatePerMinute: v.GetInt("llm.rate_per_minute"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			DBName:   v.GetString("postgres.dbname"),
		},
		Session: SessionConfig{
			Driver:    v.GetString("storage.driver"),
			IdleTTL:   v.GetDuration("session.idle_ttl"),
			PurgeCron: v.GetString("session.purge_cron"),
		},
		Catalog: CatalogConfig{
			Enabled:          v.GetBool("catalog.enabled"),
			Path:             v.GetString("catalog.path"),
			TopK:             v.GetInt("catalog.top_k"),
			ESAddr:           v.GetString("es.addr"),
			ESIndex:          v.GetString("es.index"),
			MilvusAddr:       v.GetString("milvus.addr"),
			MilvusCollection: v.GetString("milvus.collection"),
			EmbeddingURL:     v.GetString("embedding.base_url"),
			EmbeddingModel:   v.GetString("embedding.model"),
			EmbeddingTimeout: v.GetDuration("embedding.timeout"),
		},
		Compliance: compliance.Policy{
			MinimumWage:                   v.GetInt64("compliance.minimum_wage"),
			ProbationMaxMonths:            v.GetInt("compliance.probation_max_months"),
			ProbationMinPercent:           v.GetInt("compliance.probation_min_percent"),
			ProbationMinContractYears:     v.GetInt("compliance.probation_min_contract_years"),
			MinorDailyCapMinutes:          v.GetInt("compliance.minor_daily_cap_minutes"),
			WeeklyHolidayThresholdMinutes: v.GetInt("compliance.weekly_holiday_threshold_minutes"),
		},
	}
}

// Validate fails fast on settings the services cannot run with.
func (c Config) Validate() error {
	if err := c.Compliance.Validate(); err != nil {
		return fmt.Errorf("compliance: %w", err)
	}
	return nil
}
