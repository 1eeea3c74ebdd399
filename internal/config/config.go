package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Backends aceitos para o registro de cooldown
const (
	CooldownBackendNone     = "none"
	CooldownBackendPostgres = "postgres"
	CooldownBackendRedis    = "redis"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Audit       Audit       `mapstructure:",squash"`
	LLM         LLM         `mapstructure:",squash"`
	Cooldown    Cooldown    `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	AdsPlatform AdsPlatform `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	LogFormat      string   `mapstructure:"log_format"`
	APIToken       string   `mapstructure:"api_token"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Audit struct {
	Workers             int `mapstructure:"audit_workers"`
	GenerationTimeoutMs int `mapstructure:"audit_generation_timeout_ms"`
}

// LLM configura o gerador externo opcional de textos
type LLM struct {
	Enabled   bool   `mapstructure:"llm_enabled"`
	BaseURL   string `mapstructure:"llm_base_url"`
	APIKey    string `mapstructure:"llm_api_key"`
	Model     string `mapstructure:"llm_model"`
	RPM       int    `mapstructure:"llm_rpm"`
	QPS       int    `mapstructure:"llm_qps"`
	TimeoutMs int    `mapstructure:"llm_timeout_ms"`
}

type Cooldown struct {
	Backend      string `mapstructure:"cooldown_backend"`
	TTLHours     int    `mapstructure:"cooldown_ttl_hours"`
	PurgeCron    string `mapstructure:"cooldown_purge_cron"`
	PurgeEnabled bool   `mapstructure:"cooldown_purge_enabled"`
}

type Database struct {
	DSN             string `mapstructure:"-"`
	Driver          string `mapstructure:"database_driver"`
	Password        string `mapstructure:"database_password"`
	URL             string `mapstructure:"database_url"`
	User            string `mapstructure:"database_user"`
	MaxOpenConns    int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int    `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"database_conn_max_lifetime_min"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// AdsPlatform aponta para a API que recebe as mudanças executadas.
// Sem URL, as mudanças vão para o executor sandbox.
type AdsPlatform struct {
	URL       string `mapstructure:"ads_platform_url"`
	Token     string `mapstructure:"ads_platform_token"`
	TimeoutMs int    `mapstructure:"ads_platform_timeout_ms"`
	Sandbox   bool   `mapstructure:"ads_platform_sandbox"`
}

func (a Audit) GenerationTimeout() time.Duration {
	return time.Duration(a.GenerationTimeoutMs) * time.Millisecond
}

func (l LLM) Timeout() time.Duration {
	return time.Duration(l.TimeoutMs) * time.Millisecond
}

func (c Cooldown) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

func (d Database) MaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Minute
}

func (a AdsPlatform) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("AUDIT_WORKERS", 4)
	viper.SetDefault("AUDIT_GENERATION_TIMEOUT_MS", 3000)

	viper.SetDefault("LLM_ENABLED", false)
	viper.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("LLM_API_KEY", "")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_RPM", 60)
	viper.SetDefault("LLM_QPS", 2)
	viper.SetDefault("LLM_TIMEOUT_MS", 3000)

	viper.SetDefault("COOLDOWN_BACKEND", CooldownBackendNone)
	viper.SetDefault("COOLDOWN_TTL_HOURS", 72)
	viper.SetDefault("COOLDOWN_PURGE_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("COOLDOWN_PURGE_ENABLED", false)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/rsa_auditor?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME_MIN", 30)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("ADS_PLATFORM_URL", "")
	viper.SetDefault("ADS_PLATFORM_TOKEN", "")
	viper.SetDefault("ADS_PLATFORM_TIMEOUT_MS", 10000)
	viper.SetDefault("ADS_PLATFORM_SANDBOX", true)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate recusa combinações que deixariam o serviço em estado inconsistente
func (c *Config) Validate() error {
	switch c.Cooldown.Backend {
	case "", CooldownBackendNone, CooldownBackendPostgres, CooldownBackendRedis:
	default:
		return fmt.Errorf("cooldown backend inválido: %q", c.Cooldown.Backend)
	}
	if c.Audit.Workers < 1 {
		return fmt.Errorf("audit workers deve ser maior que zero: %d", c.Audit.Workers)
	}
	if c.LLM.Enabled && (c.LLM.APIKey == "" || c.LLM.Model == "") {
		return fmt.Errorf("llm habilitado sem api key ou modelo")
	}
	if c.LLM.Enabled && c.LLM.RPM < 1 {
		return fmt.Errorf("llm rpm deve ser maior que zero: %d", c.LLM.RPM)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
