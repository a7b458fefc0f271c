package vars

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// 模型名称
	NOMIC      = "nomic-embed-text"
	BGEM3      = "bge-m3"
	QWEN7B     = "qwen2.5:7b"
	QWEN3B     = "qwen2.5:3b"
	GEMINI     = "gemini-2.5-flash"
	GPT4OMINI  = "gpt-4o-mini"
	EXAONE     = "exaone3.5:7.8b"
	ENV_PREFIX = "LCW"

	// Milvus Collection / ES index 名称
	COLLECTION = "ksco_occupation_v1"
	ES_INDEX   = "ksco_occupation_v1"

	// 模型提供方
	PROVIDER_OLLAMA = "ollama"
	PROVIDER_OPENAI = "openai"
	PROVIDER_GEMINI = "gemini"

	// 会话存储
	STORE_MEMORY   = "memory"
	STORE_POSTGRES = "postgres"
)

// Load reads defaults, then config.yaml (if found in "." or /etc/labor-contract),
// then LCW_* environment variables. A key like llm.api_key maps to LCW_LLM_API_KEY.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/labor-contract")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8081")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("llm.provider", PROVIDER_OLLAMA)
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", QWEN7B)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.rate_per_minute", 30)

	v.SetDefault("storage.driver", STORE_MEMORY)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "root")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "labor_contract")

	v.SetDefault("session.idle_ttl", 2*time.Hour)
	v.SetDefault("session.purge_cron", "@every 10m")

	v.SetDefault("catalog.enabled", false)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.top_k", 5)
	v.SetDefault("es.addr", "http://localhost:9200")
	v.SetDefault("es.index", ES_INDEX)
	v.SetDefault("milvus.addr", "127.0.0.1:19530")
	v.SetDefault("milvus.collection", COLLECTION)
	v.SetDefault("embedding.base_url", "http://localhost:11434")
	v.SetDefault("embedding.model", BGEM3)
	v.SetDefault("embedding.timeout", 60*time.Second)

	v.SetDefault("compliance.minimum_wage", 10030)
	v.SetDefault("compliance.probation_max_months", 3)
	v.SetDefault("compliance.probation_min_percent", 90)
	v.SetDefault("compliance.probation_min_contract_years", 1)
	v.SetDefault("compliance.minor_daily_cap_minutes", 420)
	v.SetDefault("compliance.weekly_holiday_threshold_minutes", 900)
}
