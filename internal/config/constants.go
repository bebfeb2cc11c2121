package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "Data Weaver"
	AppVersion = "1.0.0"

	// EnvPrefix is the envconfig prefix for all environment variables
	EnvPrefix = "DATAWEAVER"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultWebDir     = "web"
	DefaultReportsDir = "data/reports"

	// Source files
	DefaultTemperatureFile = "data/temperature.csv"
	DefaultEggPriceFile    = "data/egg_prices.csv"

	// Well-known export file stems
	RowsExportStem         = "weather_egg_data"
	CorrelationsExportStem = "correlation_analysis"
)
