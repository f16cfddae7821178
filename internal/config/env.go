package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	CatalogSource string // "csv" or "mysql"
	CatalogPath   string
	CatalogTable  string
	MySQLDSN      string

	CORSOrigins    []string
	SearchCacheTTL time.Duration

	LogJSON bool
	Debug   bool
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	source := strings.ToLower(strings.TrimSpace(os.Getenv("CATALOG_SOURCE")))
	if source == "" {
		source = "csv"
	}

	path := strings.TrimSpace(os.Getenv("CATALOG_PATH"))
	if path == "" {
		path = "bus_data.csv"
	}

	table := strings.TrimSpace(os.Getenv("CATALOG_TABLE"))
	if table == "" {
		table = "bus_routes"
	}

	ttl := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("SEARCH_CACHE_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        ginMode,
		CatalogSource:  source,
		CatalogPath:    path,
		CatalogTable:   table,
		MySQLDSN:       strings.TrimSpace(os.Getenv("MYSQL_DSN")),
		CORSOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SearchCacheTTL: ttl,
		LogJSON:        strings.EqualFold(os.Getenv("BUS_LOG_FORMAT"), "JSON"),
		Debug:          os.Getenv("BUS_DEBUG") == "YES",
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
