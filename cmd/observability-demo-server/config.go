package main

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration
type Config struct {
	Port           string
	EnableTLS      bool
	CertFile       string
	KeyFile        string
	EnableCORS     bool
	LogRequests    bool
	LogLevel       string
	LogFormat      string
	MaxBodySize    int64
	Hostname       string
	ProfileFile    string
	RateLimitRPS   float64
	RateLimitBurst int
	StatsInterval  time.Duration
	Simulation     SimulationConfig
}

// SimulationConfig holds the latency bounds and probabilities that shape
// the synthetic traffic. All durations are milliseconds in the profile file.
type SimulationConfig struct {
	Seed                    int64   `yaml:"seed"`
	UserLatencyMinMs        int     `yaml:"user_latency_min_ms"`
	UserLatencyMaxMs        int     `yaml:"user_latency_max_ms"`
	DBInsertLatencyMinMs    int     `yaml:"db_insert_latency_min_ms"`
	DBInsertLatencyMaxMs    int     `yaml:"db_insert_latency_max_ms"`
	SlowLatencyMinMs        int     `yaml:"slow_latency_min_ms"`
	SlowLatencyMaxMs        int     `yaml:"slow_latency_max_ms"`
	ErrorProbability        float64 `yaml:"error_probability"`
	OrderSuccessProbability float64 `yaml:"order_success_probability"`
	DemoOrderValueMin       float64 `yaml:"demo_order_value_min"`
	DemoOrderValueMax       float64 `yaml:"demo_order_value_max"`
	InitialActiveUsersMin   int     `yaml:"initial_active_users_min"`
	InitialActiveUsersMax   int     `yaml:"initial_active_users_max"`
}

// loadConfigFromEnv builds a Config from environment variables. The
// simulation block starts at defaults; initializeServer overlays the
// profile file and then environment overrides so precedence is
// defaults < profile < env < flags.
func loadConfigFromEnv() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		EnableTLS:      getEnv("ENABLE_TLS", "false") == "true",
		CertFile:       getEnv("CERT_FILE", "server.crt"),
		KeyFile:        getEnv("KEY_FILE", "server.key"),
		EnableCORS:     getEnv("ENABLE_CORS", "true") == "true",
		LogRequests:    getEnv("LOG_REQUESTS", "true") == "true",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		MaxBodySize:    parseInt64(getEnv("MAX_BODY_SIZE", "1048576")),
		ProfileFile:    getEnv("SIM_PROFILE_FILE", "simulation.yaml"),
		RateLimitRPS:   parseFloat64(getEnv("RATE_LIMIT_RPS", "0")),
		RateLimitBurst: int(parseInt64(getEnv("RATE_LIMIT_BURST", "0"))),
		StatsInterval:  parseDuration(getEnv("STATS_INTERVAL", "5s"), 5*time.Second),
		Simulation:     defaultSimulation(),
	}
}

func defaultSimulation() SimulationConfig {
	return SimulationConfig{
		UserLatencyMinMs:        50,
		UserLatencyMaxMs:        300,
		DBInsertLatencyMinMs:    10,
		DBInsertLatencyMaxMs:    100,
		SlowLatencyMinMs:        1000,
		SlowLatencyMaxMs:        3000,
		ErrorProbability:        0.3,
		OrderSuccessProbability: 0.8,
		DemoOrderValueMin:       10,
		DemoOrderValueMax:       1000,
		InitialActiveUsersMin:   10,
		InitialActiveUsersMax:   50,
	}
}

// applySimulationEnv overrides only the fields whose environment variable
// is explicitly set, so env wins over the profile file.
func applySimulationEnv(sc *SimulationConfig) {
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			*dst = int(parseInt64(v))
		}
	}
	setFloat := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			*dst = parseFloat64(v)
		}
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		sc.Seed = parseInt64(v)
	}
	setInt("USER_LATENCY_MIN_MS", &sc.UserLatencyMinMs)
	setInt("USER_LATENCY_MAX_MS", &sc.UserLatencyMaxMs)
	setInt("DB_INSERT_LATENCY_MIN_MS", &sc.DBInsertLatencyMinMs)
	setInt("DB_INSERT_LATENCY_MAX_MS", &sc.DBInsertLatencyMaxMs)
	setInt("SLOW_LATENCY_MIN_MS", &sc.SlowLatencyMinMs)
	setInt("SLOW_LATENCY_MAX_MS", &sc.SlowLatencyMaxMs)
	setFloat("ERROR_PROBABILITY", &sc.ErrorProbability)
	setFloat("ORDER_SUCCESS_PROBABILITY", &sc.OrderSuccessProbability)
	setFloat("DEMO_ORDER_VALUE_MIN", &sc.DemoOrderValueMin)
	setFloat("DEMO_ORDER_VALUE_MAX", &sc.DemoOrderValueMax)
	setInt("INITIAL_ACTIVE_USERS_MIN", &sc.InitialActiveUsersMin)
	setInt("INITIAL_ACTIVE_USERS_MAX", &sc.InitialActiveUsersMax)
}

// mergeProfileFile overlays the YAML simulation profile onto cfg. A missing
// file is skipped; a present but unparsable file is an error because a half
// applied profile would silently change the traffic shape.
func mergeProfileFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, &cfg.Simulation)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64(s string) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return 0
}

func parseFloat64(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
