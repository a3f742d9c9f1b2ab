package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/dayti/agribot/internal/domain"
)

// Config holds the full bot configuration. It is loaded from a JSON file,
// deep-merged over Defaults, overlaid with environment variables and
// validated once. Call sites never apply fallbacks of their own.
type Config struct {
	LogPath       string                     `json:"log_path"`
	PlantSettings PlantSettings              `json:"plant_settings"`
	SessionPause  int                        `json:"session_pause" validate:"min=0"` // seconds between sessions
	Delays        Delays                     `json:"delays"`
	Positions     map[string]domain.Position `json:"positions"`
	Stations      []domain.Station           `json:"stations" validate:"dive"`
	HomesSpecial  HomesSpecial               `json:"homes_special"`
	AutoReply     AutoReply                  `json:"auto_reply"`
	StatusAddr    string                     `json:"status_addr"` // empty disables the status server
}

// PlantSettings selects the crop and drives the inter-session pause.
type PlantSettings struct {
	PlantType   string  `json:"plant_type"`
	GrowthTime  int     `json:"growth_time" validate:"min=0"` // minutes, fallback when PlantType is unknown
	GrowthBoost float64 `json:"growth_boost"`
}

// Delays tunes the humanized pacing of simulated input, in seconds.
type Delays struct {
	Short          float64 `json:"short" validate:"min=0"`
	Medium         float64 `json:"medium" validate:"min=0"`
	Long           float64 `json:"long" validate:"min=0"`
	HumanVariation float64 `json:"human_variation" validate:"min=0,max=1"`
	StartupDelay   int     `json:"startup_delay" validate:"min=0"` // seconds before first input
}

// HomesSpecial names the teleport homes used for bucket management.
type HomesSpecial struct {
	Coffre1 string `json:"coffre1"`
	Coffre2 string `json:"coffre2"`
}

// AutoReply configures the chat auto-reply loop. The API key is never read
// from the JSON file, only from the environment.
type AutoReply struct {
	Enabled      bool   `json:"enabled"`
	Pseudo       string `json:"pseudo"`
	WordlistPath string `json:"wordlist_path"`
	APIKey       string `json:"-"`
}

// Position keys used by the game client.
const (
	PosServerConnect  = "server_connect"
	PosServerConfirm  = "server_confirm"
	PosDisconnect     = "disconnect"
	PosDefaultHarvest = "default_harvest"
	PosBucketChest    = "bucket_chest"
)

// Defaults returns the documented default configuration.
func Defaults() Config {
	return Config{
		LogPath: "",
		PlantSettings: PlantSettings{
			PlantType:   "",
			GrowthTime:  600,
			GrowthBoost: 0,
		},
		SessionPause: 900,
		Delays: Delays{
			Short:          0.3,
			Medium:         0.8,
			Long:           1.5,
			HumanVariation: 0.25,
			StartupDelay:   5,
		},
		Positions: map[string]domain.Position{
			PosServerConnect:  {},
			PosServerConfirm:  {},
			PosDisconnect:     {},
			PosDefaultHarvest: {},
			PosBucketChest:    {},
		},
		Stations: []domain.Station{},
		HomesSpecial: HomesSpecial{
			Coffre1: "coffre1",
			Coffre2: "coffre2",
		},
		AutoReply: AutoReply{
			Enabled:      false,
			Pseudo:       "Dayti",
			WordlistPath: "auto_reply_wordlist.txt",
		},
	}
}

// Load reads the configuration file at path, merging missing keys with
// Defaults. A missing or unparseable file degrades to the full defaults;
// only invariant violations in the merged result are reported as errors.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		// Unmarshalling into the prefilled struct deep-merges: absent keys
		// keep their defaults, nested objects merge field by field.
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			cfg = Defaults()
		}
	}

	applyEnv(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overlays environment variables on top of the file values.
// A .env file beside the process is honored when present.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("AGRIBOT_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := os.LookupEnv("AGRIBOT_STATUS_ADDR"); ok {
		cfg.StatusAddr = v
	}
	cfg.AutoReply.APIKey = os.Getenv("MISTRAL_API_KEY")
}

// Validate checks the merged configuration against its invariants.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for i, st := range cfg.Stations {
		if strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("invalid configuration: station %d has an empty name", i)
		}
	}
	return nil
}

// Save writes the configuration back to path as indented JSON.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// StatePath derives the bucket-state filename colocated with the config file.
func StatePath(configPath string) string {
	ext := filepath.Ext(configPath)
	return strings.TrimSuffix(configPath, ext) + ".bucket_state.json"
}

// Position returns a named screen position and whether it is configured.
func (c *Config) Position(key string) (domain.Position, bool) {
	pos, ok := c.Positions[key]
	return pos, ok && !pos.IsZero()
}

// PauseDuration returns the configured inter-session pause.
func (c *Config) PauseDuration() time.Duration {
	return time.Duration(c.SessionPause) * time.Second
}
