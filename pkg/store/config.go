package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the runtime configuration shared by every command.
type Config interface {
	// BasePath is the diskv directory holding planner records.
	BasePath() string
	// DirectoryPath is the sqlite file with users and notifications.
	DirectoryPath() string
	// Admins lists the emails allowed into the admin surface.
	Admins() []string
	// Secret signs session tokens.
	Secret() string
	// SessionPath is where the signed-in token is kept.
	SessionPath() string
	LogLevel() string
	Addr() string
}

const (
	defaultPath      = "~/.pilot.db"
	defaultDirectory = "~/.pilot.sqlite"
	defaultSession   = "~/.pilot.session"
	defaultAddr      = "127.0.0.1:8080"
)

// LoadConfig reads .env, then the .pilot config file and PILOT_ environment
// variables.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: load .env: %w", err)
	}

	viper.SetDefault("path", defaultPath)
	viper.SetDefault("directory", defaultDirectory)
	viper.SetDefault("session", defaultSession)
	viper.SetDefault("log", "info")
	viper.SetDefault("addr", defaultAddr)
	viper.SetConfigName(".pilot") // .yaml is implicit
	viper.SetEnvPrefix("PILOT")
	viper.AutomaticEnv()

	if override := os.Getenv("PILOT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	s := &Settings{
		Path:      viper.GetString("path"),
		Directory: viper.GetString("directory"),
		AdminList: splitList(viper.GetStringSlice("admins")),
		Key:       viper.GetString("secret"),
		Session:   viper.GetString("session"),
		Log:       viper.GetString("log"),
		Listen:    viper.GetString("addr"),
	}
	if err := s.expand(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings is a plain Config, used by LoadConfig and handy in tests.
type Settings struct {
	Path      string   `json:"path"`
	Directory string   `json:"directory"`
	AdminList []string `json:"admins"`
	Key       string   `json:"-"`
	Session   string   `json:"session"`
	Log       string   `json:"log"`
	Listen    string   `json:"addr"`
}

func (s *Settings) BasePath() string      { return s.Path }
func (s *Settings) DirectoryPath() string { return s.Directory }
func (s *Settings) Admins() []string      { return s.AdminList }
func (s *Settings) Secret() string        { return s.Key }
func (s *Settings) SessionPath() string   { return s.Session }
func (s *Settings) LogLevel() string      { return s.Log }
func (s *Settings) Addr() string          { return s.Listen }

// ForUser returns a copy of cfg whose base path holds only the records of
// userID. User trees live next to the local planner, under "<path>.users".
func ForUser(cfg Config, userID string) (Config, error) {
	if cfg == nil || cfg.BasePath() == "" {
		return nil, errors.New("store: base path unknown")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("store: user id required")
	}
	return &Settings{
		Path:      filepath.Join(cfg.BasePath()+".users", toID(userID)),
		Directory: cfg.DirectoryPath(),
		AdminList: cfg.Admins(),
		Key:       cfg.Secret(),
		Session:   cfg.SessionPath(),
		Log:       cfg.LogLevel(),
		Listen:    cfg.Addr(),
	}, nil
}

func (s *Settings) expand() error {
	for _, p := range []*string{&s.Path, &s.Directory, &s.Session} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("store: expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// splitList accepts both yaml lists and a comma separated env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
