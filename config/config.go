package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string
	Path   string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type JWT struct {
	Secret   string
	Issuer   string
	ExpHours int
}

type Redis struct {
	Addr         string
	RosterTTLSec int
}

type Seed struct {
	ManagerUsername string
	ManagerPassword string
}

type Config struct {
	HTTP     HTTP
	Timezone string
	DB       DB
	JWT      JWT
	Redis    Redis
	Seed     Seed
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "timeclock.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "timeclock")
	v.SetDefault("jwt.issuer", "timeclock")
	v.SetDefault("jwt.exp_hours", 8)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.roster_ttl_sec", 60)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP:     HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		Timezone: v.GetString("server.timezone"),
		DB: DB{
			Driver: v.GetString("db.driver"),
			Path:   v.GetString("db.path"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
		},
		Redis: Redis{
			Addr:         v.GetString("redis.addr"),
			RosterTTLSec: v.GetInt("redis.roster_ttl_sec"),
		},
		Seed: Seed{
			ManagerUsername: v.GetString("seed.manager_username"),
			ManagerPassword: v.GetString("seed.manager_password"),
		},
	}
	// No default for the signing secret. Login reports a server
	// misconfiguration when it is left empty.
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.ExpHours = v.GetInt("jwt.exp_hours")
	if cfg.JWT.ExpHours <= 0 {
		cfg.JWT.ExpHours = 8
	}
	return cfg, nil
}
