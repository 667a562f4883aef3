package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "reservationmanager"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = ""
	DefaultCacheTTL  = 15 * time.Minute

	DefaultPort = "8080"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Business rule bounds. Reservations can be placed up to 30 days in
	// advance and last between 1 and 3 nights.
	DefaultMaxAdvanceDays = 30
	DefaultMinStayDays    = 1
	DefaultMaxStayDays    = 3

	// Advisory locks auto-expire so a crashed writer cannot wedge the unit.
	DefaultLockTTL = 10 * time.Second

	// Empty topic disables event publishing.
	DefaultEventsTopic = ""

	DefaultLogLevel = "info"
)
