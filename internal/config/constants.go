package config

import "time"

// Configuration file paths
const (
	ConfigPathXPAmounts = "configs/xp_amounts.json"
)

// Default configuration values
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "gracepath-api"
	DefaultVersion     = "dev"

	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "gracepath"

	DefaultDBMaxConns = 25

	DefaultDeadLetterPath = "logs/dead_letter_events.jsonl"
)

// Default durations
const (
	DefaultDBMaxIdleTime           = 5 * time.Minute
	DefaultDBMaxLifetime           = 30 * time.Minute
	DefaultRewardReconcileInterval = time.Hour
)
