package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	AI       AIConfig       `mapstructure:"ai"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddress    string        `mapstructure:"http_address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	IntentRate     float64       `mapstructure:"intent_rate"`
	IntentBurst    int           `mapstructure:"intent_burst"`
	SendQueue      int           `mapstructure:"send_queue"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

// GameConfig holds round timing and limits. RoundDuration and HintCheckpoints are in ticks.
type GameConfig struct {
	RoundDuration    int           `mapstructure:"round_duration"`
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	HintCheckpoints  []int         `mapstructure:"hint_checkpoints"`
	Cooldown         time.Duration `mapstructure:"cooldown"`
	DrawInterval     time.Duration `mapstructure:"draw_interval"`
	DefaultMaxRounds int           `mapstructure:"default_max_rounds"`
	MaxRoundsLimit   int           `mapstructure:"max_rounds_limit"`
	WordOptions      int           `mapstructure:"word_options"`
	StrokeBuffer     int           `mapstructure:"stroke_buffer"`
}

// AIConfig gates the synthetic guesser. Delays and spacing are in ticks.
type AIConfig struct {
	MinDelay        int `mapstructure:"min_delay"`
	MinDelayMedium  int `mapstructure:"min_delay_medium"`
	MinStrokes      int `mapstructure:"min_strokes"`
	MaxGuesses      int `mapstructure:"max_guesses"`
	GuessSpacing    int `mapstructure:"guess_spacing"`
	NonsenseGuesses int `mapstructure:"nonsense_guesses"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":3000")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.intent_rate", 240)
	v.SetDefault("server.intent_burst", 480)
	v.SetDefault("server.send_queue", 512)
	v.SetDefault("server.ping_interval", "30s")
	v.SetDefault("server.idle_timeout", "30m")

	v.SetDefault("game.round_duration", 180)
	v.SetDefault("game.tick_interval", "1s")
	v.SetDefault("game.hint_checkpoints", []int{120, 60})
	v.SetDefault("game.cooldown", "3s")
	v.SetDefault("game.draw_interval", "60ms")
	v.SetDefault("game.default_max_rounds", 3)
	v.SetDefault("game.max_rounds_limit", 20)
	v.SetDefault("game.word_options", 3)
	v.SetDefault("game.stroke_buffer", 1000)

	v.SetDefault("ai.min_delay", 10)
	v.SetDefault("ai.min_delay_medium", 5)
	v.SetDefault("ai.min_strokes", 40)
	v.SetDefault("ai.max_guesses", 6)
	v.SetDefault("ai.guess_spacing", 5)
	v.SetDefault("ai.nonsense_guesses", 3)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.timeout", "5s")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.password", "postgres")
	v.SetDefault("database.postgres.dbname", "drawguess")

	v.SetDefault("metrics.namespace", "drawguess")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yaml from path if present. Every key has a default and can be
// overridden from the environment, e.g. GAME_ROUND_DURATION=90.
func LoadConfig(path string) (config *Config, err error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
