package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"intellicath/logger"
)

// DefaultMaxPredictionTime is twelve hours, in minutes.
const DefaultMaxPredictionTime = 12 * 60

type Config struct {
	Database struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`
	Http struct {
		Port           int           `yaml:"port"`
		CertFile       string        `yaml:"cert_file"`
		KeyFile        string        `yaml:"key_file"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log   logger.Config `yaml:"log"`
	Model struct {
		Type       string `yaml:"type"`
		Path       string `yaml:"path"`
		ScalerPath string `yaml:"scaler_path"`
	} `yaml:"model"`
	MaxPredictionTime int `yaml:"max_prediction_time"`
}

// Default targets a local deployment: MySQL as root, database
// intellicath, HTTPS on 5001 and artifacts under models/.
func Default() *Config {
	c := &Config{}
	c.Database.Driver = "mysql"
	c.Database.Host = "localhost"
	c.Database.Port = 3306
	c.Database.User = "root"
	c.Database.Name = "intellicath"
	c.Http.Port = 5001
	c.Http.Timeout = 30 * time.Second
	c.Http.AllowedOrigins = []string{"*"}
	c.Log.Level = "info"
	c.Model.Type = "decision_tree"
	c.Model.Path = "models/decision_tree.json"
	c.Model.ScalerPath = "models/scaler.json"
	c.MaxPredictionTime = DefaultMaxPredictionTime
	return c
}

// Load reads path over the defaults, then .env, then the environment.
// A missing config file or .env is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(config); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DATABASE_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		c.Database.Name = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"DATABASE_PORT", &c.Database.Port},
		{"HTTP_PORT", &c.Http.Port},
		{"MAX_PREDICTION_TIME", &c.MaxPredictionTime},
	}
	for _, item := range ints {
		v := os.Getenv(item.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", item.key, err)
		}
		*item.dst = n
	}
	return nil
}

// DataSource returns the driver name and DSN for database/sql. An explicit
// DSN wins; otherwise a MySQL DSN is assembled from the connection fields.
func (c *Config) DataSource() (string, string) {
	if c.Database.DSN != "" {
		return c.Database.Driver, c.Database.DSN
	}
	if c.Database.Driver != "mysql" {
		return c.Database.Driver, c.Database.Name
	}

	dsn := mysql.NewConfig()
	dsn.User = c.Database.User
	dsn.Passwd = c.Database.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port))
	dsn.DBName = c.Database.Name
	return c.Database.Driver, dsn.FormatDSN()
}
