package menagerie

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/eldermoor/menagerie/menagerie/engine"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	DB      DBConfig      `toml:"db"`
	Farm    EconomyConfig `toml:"farm"`
	Academy EconomyConfig `toml:"academy"`

	// FlushIntervalSeconds paces the write-behind persistence loop.
	FlushIntervalSeconds int `toml:"flush_interval_seconds"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// EconomyConfig overrides the numeric schedule of one realm. Zero values
// keep the preset defaults; cooldowns are given in seconds.
type EconomyConfig struct {
	MintFee       int64 `toml:"mint_fee"`
	StructureFee  int64 `toml:"structure_fee"`
	BreedingFee   int64 `toml:"breeding_fee"`
	CatalystPrice int64 `toml:"catalyst_price"`
	EssencePrice  int64 `toml:"essence_price"`

	TrainCooldownSeconds    int64 `toml:"train_cooldown_seconds"`
	GroomCooldownSeconds    int64 `toml:"groom_cooldown_seconds"`
	HarvestCooldownSeconds  int64 `toml:"harvest_cooldown_seconds"`
	BreedingCooldownSeconds int64 `toml:"breeding_cooldown_seconds"`
}

// Apply lays the file overrides over a realm preset.
func (c EconomyConfig) Apply(preset *engine.EconomyConfig) *engine.EconomyConfig {
	if c.MintFee > 0 {
		preset.MintFee = c.MintFee
	}
	if c.StructureFee > 0 {
		preset.StructureFee = c.StructureFee
	}
	if c.BreedingFee > 0 {
		preset.BreedingFee = c.BreedingFee
	}
	if c.CatalystPrice > 0 {
		preset.CatalystPrice = c.CatalystPrice
	}
	if c.EssencePrice > 0 {
		preset.EssencePrice = c.EssencePrice
	}
	if c.TrainCooldownSeconds > 0 {
		preset.TrainCooldown = time.Duration(c.TrainCooldownSeconds) * time.Second
	}
	if c.GroomCooldownSeconds > 0 {
		preset.GroomCooldown = time.Duration(c.GroomCooldownSeconds) * time.Second
	}
	if c.HarvestCooldownSeconds > 0 {
		preset.HarvestCooldown = time.Duration(c.HarvestCooldownSeconds) * time.Second
	}
	if c.BreedingCooldownSeconds > 0 {
		preset.BreedingCooldown = time.Duration(c.BreedingCooldownSeconds) * time.Second
	}
	return preset
}

// FlushInterval returns the configured flush cadence, defaulting to 15s.
func (c *Config) FlushInterval() time.Duration {
	if c.FlushIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.FlushIntervalSeconds) * time.Second
}
