package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/ebn"
	"github.com/joho/godotenv"
)

// Load reads the .env file specified by BEHAVENET_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("BEHAVENET_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL is optional. Without it tick history is kept in memory.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// TickInterval is the period of the background decision loop. Zero or an
// unparsable value disables the loop; ticks are then driven over HTTP.
func TickInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("TICK_INTERVAL"))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// TickHistory is the number of ticks kept by the in-memory store.
func TickHistory() int {
	n, err := strconv.Atoi(os.Getenv("TICK_HISTORY"))
	if err != nil || n <= 0 {
		return 1000
	}
	return n
}

func NetworkName() string {
	name := os.Getenv("NETWORK_NAME")
	if name == "" {
		return "soccer"
	}
	return name
}

// NetworkParams builds the decision parameters from EBN_* variables,
// falling back to the defaults for anything unset or malformed.
func NetworkParams() ebn.Params {
	p := ebn.DefaultParams()
	p.Beta = floatEnv("EBN_BETA", p.Beta)
	p.Gamma = floatEnv("EBN_GAMMA", p.Gamma)
	p.Delta = floatEnv("EBN_DELTA", p.Delta)
	p.Sigma = floatEnv("EBN_SIGMA", p.Sigma)
	p.Theta = floatEnv("EBN_THETA", p.Theta)
	p.ThetaReduction = floatEnv("EBN_THETA_REDUCTION", p.ThetaReduction)
	p.Gain = floatEnv("EBN_GAIN", p.Gain)
	p.ExecutionTries = intEnv("EBN_EXECUTION_TRIES", p.ExecutionTries)
	p.GoalTracking = boolEnv("EBN_GOAL_TRACKING", p.GoalTracking)
	p.TransferFunction = boolEnv("EBN_TRANSFER_FUNCTION", p.TransferFunction)
	p.ConcurrentActions = boolEnv("EBN_CONCURRENT_ACTIONS", p.ConcurrentActions)
	p.InboxProcessing = boolEnv("EBN_INBOX_PROCESSING", true)
	return p
}

func floatEnv(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func boolEnv(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
