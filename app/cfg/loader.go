package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Artifact locations
	DataDir      string `long:"data-dir" env:"DATA_DIR" default:"./data/portfolio" description:"Directory holding the corpus and generated indexes"`
	CompaniesDir string `long:"companies-dir" env:"COMPANIES_DIR" default:"./companies" description:"Directory containing company source configuration files"`
	DigestFile   string `long:"digest-file" env:"DIGEST_FILE" default:"./data/portfolio.json" description:"Path of the daily digest ledger"`
	ArchiveDB    string `long:"archive-db" env:"ARCHIVE_DB" default:"./data/collector.db" description:"Path of the run history database"`

	// Collection behavior
	SocialToken  string `long:"social-token" env:"TWITTER_BEARER_TOKEN" description:"X API v2 bearer token (social source disabled when empty)"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"12" description:"Per-request timeout in seconds"`
	RequestDelay int    `long:"request-delay" env:"REQUEST_DELAY" default:"1500" description:"Delay between outbound requests in milliseconds"`
	MaxItems     int    `long:"max-items" env:"MAX_ITEMS_PER_SOURCE" default:"8" description:"Maximum items fetched per source"`
	SocialItems  int    `long:"social-items" env:"SOCIAL_ITEMS" default:"5" description:"Maximum posts fetched per social handle"`

	// Serve mode
	Serve bool   `long:"serve" description:"Serve generated artifacts over HTTP instead of collecting"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`

	// Modes
	Reindex bool `long:"reindex" description:"Rebuild all indexes from the persisted corpus without fetching"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"portfolio-pulse/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Berlin)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DataDir:      raw.DataDir,
		CompaniesDir: raw.CompaniesDir,
		DigestFile:   raw.DigestFile,
		ArchiveDB:    raw.ArchiveDB,
		SocialToken:  raw.SocialToken,
		FetchTimeout: raw.FetchTimeout,
		RequestDelay: raw.RequestDelay,
		MaxItems:     raw.MaxItems,
		SocialItems:  raw.SocialItems,
		Serve:        raw.Serve,
		Port:         raw.Port,
		Reindex:      raw.Reindex,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
