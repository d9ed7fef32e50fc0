package main

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const serviceVersion = "1.0.0"

var (
	configLock sync.RWMutex
	config     Config
	startTime  time.Time
	logger     *logrus.Logger
	sim        *simulator
)

// newLogger builds a logrus logger from the configured format and level.
func newLogger(format, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// initializeServer performs explicit initialization previously done in init().
func initializeServer() {
	startTime = time.Now()

	// Load configuration: defaults < profile file < environment < flags
	// (flags are written into the environment by the CLI before this runs)
	cfg := loadConfigFromEnv()
	if err := mergeProfileFile(&cfg, cfg.ProfileFile); err != nil {
		logrus.Fatalf("Failed to parse simulation profile %s: %v", cfg.ProfileFile, err)
	}
	applySimulationEnv(&cfg.Simulation)
	if hostname, _ := os.Hostname(); hostname != "" {
		cfg.Hostname = hostname
	}
	configLock.Lock()
	config = cfg
	configLock.Unlock()

	logger = newLogger(cfg.LogFormat, cfg.LogLevel)

	// Initialize rate limiter
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	sim = newSimulator(cfg.Simulation)

	// Register Prometheus metrics; duplicate or type-conflicting
	// registrations abort startup here.
	metricsRegistry = newMetricsRegistry()
	appInfo.WithLabelValues(serviceVersion).Set(1)

	// Seed the active-users gauge so the first scrape has signal.
	setActiveUsers(sim.intBetween(cfg.Simulation.InitialActiveUsersMin, cfg.Simulation.InitialActiveUsersMax))
}
