package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/jsphweid/pianobench/constants"
)

// Config contains the paths and optional integrations for one invocation
type Config struct {
	CatalogPath   string // JSON list of test cases
	AudioDir      string // rendered audio, already in TargetExt
	ConvertScript string // batch conversion run when audio is missing
	SourceExt     string // extension used by the catalog
	TargetExt     string // extension of the files on disk

	SentryDSN        string // error reporting (optional)
	MetadataEndpoint string // DynamoDB endpoint for piece metadata (optional)
	MetadataTable    string
	Port             string
}

// Load reads .env (if present) and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	table := os.Getenv("METADATA_TABLE")
	if table == "" {
		table = constants.MetadataTable
	}

	return &Config{
		CatalogPath:      constants.GetCatalogPath(),
		AudioDir:         constants.GetAudioDir(),
		ConvertScript:    constants.GetConvertScript(),
		SourceExt:        constants.GetSourceExt(),
		TargetExt:        constants.GetTargetExt(),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		MetadataEndpoint: os.Getenv("METADATA_ENDPOINT"),
		MetadataTable:    table,
		Port:             constants.GetPort(),
	}
}
