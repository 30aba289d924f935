package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var GConfig *Config

func Init(filePath string) {
	config, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	initFromYaml(config)
	err = GConfig.Verify()
	if err != nil {
		panic(err)
	}
}

func initFromYaml(config []byte) {
	err := yaml.Unmarshal(config, &GConfig)
	if err != nil {
		panic(err)
	}
}

type Config struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	RequestTimeout  string `yaml:"request_timeout"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
	LogMaxSize      int    `yaml:"log_max_size"`
	LogMaxBackups   int    `yaml:"log_max_backups"`
	LogMaxAge       int    `yaml:"log_max_age"`
	StorageEnabled  bool   `yaml:"storage_enabled"`
	StorageSupplier string `yaml:"storage_supplier"`
	URLExpires      string `yaml:"url_expires"`
	AliOss          `yaml:"ali_oss"`
	Retry           `yaml:"retry"`
}

func (c *Config) Verify() error {
	if c.RequestTimeout != "" {
		_, err := time.ParseDuration(c.RequestTimeout)
		if err != nil {
			return err
		}
	}
	if c.Retry.InitialDelay != "" {
		_, err := time.ParseDuration(c.Retry.InitialDelay)
		if err != nil {
			return err
		}
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must be >= 0")
	}
	if c.StorageEnabled {
		if c.StorageSupplier != "ali_oss" && c.StorageSupplier != "local" {
			return fmt.Errorf("storage_supplier must be ali_oss or local")
		}
		if c.StorageSupplier == "ali_oss" && c.URLExpires != "" {
			_, err := time.ParseDuration(c.URLExpires)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

type AliOss struct {
	AccessKeyId     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Directory       string `yaml:"directory"`
}

type Retry struct {
	MaxRetries   int    `yaml:"max_retries"`
	InitialDelay string `yaml:"initial_delay"`
}
