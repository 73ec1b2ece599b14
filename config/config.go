// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(".env"); envErr != nil {
			slog.Warn("无法加载 .env 文件", "error", envErr)
		}

		k = koanf.New(".")

		// 先加载配置文件
		if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			err = fmt.Errorf("加载配置文件失败: %w", err)
			return
		}

		// 再加载环境变量（覆盖配置文件）
		if envErr := k.Load(env.Provider("", ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(s), "_", ".")
		}), nil); envErr != nil {
			slog.Warn("加载环境变量失败", "error", envErr)
		}

		Conf, err = unmarshal()
	})

	return err
}

// MustLoad 加载配置，失败则 panic
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}
}

// GetString 获取字符串配置
func GetString(key string) string {
	mustInit()
	return k.String(key)
}

func unmarshal() (*AppConfig, error) {
	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 转换时间单位
	conf.Server.ReadTimeout = conf.Server.ReadTimeout * time.Second
	conf.Server.WriteTimeout = conf.Server.WriteTimeout * time.Second

	applyDefaults(conf)
	return conf, nil
}

// applyDefaults 补齐未配置的业务默认值
func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.GRPC.Port == 0 {
		c.GRPC.Port = 9090
	}
	if c.Registry.PageSize <= 0 {
		c.Registry.PageSize = 15
	}
	if c.Registry.SpamReplacement == "" {
		c.Registry.SpamReplacement = "spam/spam"
	}
	if c.Registry.PoisonDumpedAt == "" {
		c.Registry.PoisonDumpedAt = "2100-01-01T00:00:00Z"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "registry.jobs"
	}
	if c.FrontendURL == "" {
		c.FrontendURL = "http://localhost:5173"
	}
}

// PoisonTime 解析配置的隔离时间，格式错误时回退到 2100-01-01
func (c RegistryConfig) PoisonTime() time.Time {
	t, err := time.Parse(time.RFC3339, c.PoisonDumpedAt)
	if err != nil {
		return time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t.UTC()
}

func mustInit() {
	if k == nil {
		panic("配置未初始化")
	}
}
