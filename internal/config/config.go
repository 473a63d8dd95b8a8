package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel       string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string     `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage        string     `yaml:"storage" env:"STORAGE" env-default:"redis"`
	Redis          Redis      `yaml:"redis"`
	CardSource     CardSource `yaml:"card-source"`
	Game           Game       `yaml:"game"`
	JWTSecretKey   string     `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	WorkerPoolSize int        `yaml:"worker-pool-size" env:"WORKER_POOL_SIZE" env-default:"256"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// CardSource configures where decks are fetched from. Local deals from in-process decks.
type CardSource struct {
	URL         string        `yaml:"url" env:"CARD_SOURCE_URL" env-default:"https://deckofcardsapi.com"`
	Local       bool          `yaml:"local" env:"CARD_SOURCE_LOCAL" env-default:"false"`
	Timeout     time.Duration `yaml:"timeout" env:"CARD_SOURCE_TIMEOUT" env-default:"5s"`
	MaxAttempts int           `yaml:"max-attempts" env:"CARD_SOURCE_MAX_ATTEMPTS" env-default:"3"`
}

type Game struct {
	MaxPlayers    int `yaml:"max-players" env:"GAME_MAX_PLAYERS" env-default:"5"`
	HandSize      int `yaml:"hand-size" env:"GAME_HAND_SIZE" env-default:"7"`
	DefuseReserve int `yaml:"defuse-reserve" env:"GAME_DEFUSE_RESERVE" env-default:"2"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
