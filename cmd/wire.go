package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/confbot/internal/adapters/masterfile"
	masterlistrender "github.com/bnema/confbot/internal/adapters/render/masterlist"
	"github.com/bnema/confbot/internal/adapters/snapshot"
	"github.com/bnema/confbot/internal/domain"
	"github.com/bnema/confbot/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	configDir       = ".confbot"
	listenKey       = "listen"
	masterPathKey   = "masters.path"
	snapshotPathKey = "snapshot.path"
	botNameKey      = "bot.name"
	purgeDaysKey    = "bot.purge_days"
)

type app struct {
	masters       ports.MasterRegistry
	snapshots     ports.SnapshotStore
	renderMasters func([]domain.Identity, masterlistrender.RenderOptions) string
	config        botConfig
	now           func() time.Time
}

type botConfig struct {
	ListenAddr   string
	MasterPath   string
	SnapshotPath string
	BotName      string
	PurgeLimit   time.Duration
}

func wireApp() (*app, error) {
	cfg, err := loadConfig(viper.New())
	if err != nil {
		return nil, err
	}

	return &app{
		masters:       masterfile.NewStore(cfg.MasterPath),
		snapshots:     snapshot.NewStore(cfg.SnapshotPath),
		renderMasters: masterlistrender.Render,
		config:        cfg,
		now:           time.Now,
	}, nil
}

func loadConfig(v *viper.Viper) (botConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return botConfig{}, fmt.Errorf("resolve home directory: %w", err)
	}

	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix("CONFBOT")
	v.AutomaticEnv()

	v.SetDefault(listenKey, "127.0.0.1:8439")
	v.SetDefault(masterPathKey, filepath.Join(baseDir, "masterkeys"))
	v.SetDefault(snapshotPathKey, filepath.Join(baseDir, "profile.toml"))
	v.SetDefault(botNameKey, "confbot")
	v.SetDefault(purgeDaysKey, 30)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return botConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	purgeDays := v.GetInt(purgeDaysKey)
	if purgeDays <= 0 {
		return botConfig{}, fmt.Errorf("bot.purge_days must be positive, got %d", purgeDays)
	}

	return botConfig{
		ListenAddr:   v.GetString(listenKey),
		MasterPath:   v.GetString(masterPathKey),
		SnapshotPath: v.GetString(snapshotPathKey),
		BotName:      v.GetString(botNameKey),
		PurgeLimit:   time.Duration(purgeDays) * domain.SecondsPerDay * time.Second,
	}, nil
}
