// Package config loads application settings from a .env file, the
// environment (MEMTY_*), an optional YAML file and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/llm"
	"github.com/abhisek/memty/internal/store"
)

// EnvPrefix prefixes every environment variable: store.backend is read
// from MEMTY_STORE_BACKEND.
const EnvPrefix = "MEMTY"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Blank policies.
const (
	BlankPolicyEven   = "even"
	BlankPolicyRandom = "random"
)

// Quiz synthesizers.
const (
	SynthTemplate = "template"
	SynthLLM      = "llm"
)

// Config is the resolved application configuration.
type Config struct {
	DB      string // empty selects store.DefaultDBPath
	Store   StoreConfig
	LogMode string
	Lesson  LessonConfig
	Quiz    QuizConfig
	LLM     llm.Config
	Profile ProfileConfig
}

type StoreConfig struct {
	Backend  string
	RedisURL string
	Prefix   string
}

type LessonConfig struct {
	ChunkSize        int
	BlankPolicy      string
	BlankSeed        uint64
	SynthConcurrency int
}

type QuizConfig struct {
	Synthesizer string
}

type ProfileConfig struct {
	Name  string
	Email string
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an optional YAML file. A missing file is an error
	// only when set explicitly.
	ConfigFile string

	// EnvFile is loaded into the process environment when present.
	// Defaults to ".env".
	EnvFile string

	// Flags are bound over every other source.
	Flags *pflag.FlagSet
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.redis_url", "redis://localhost:6379/0")
	v.SetDefault("store.prefix", store.DefaultPrefix)
	v.SetDefault("log.mode", "quiet")
	v.SetDefault("lesson.chunk_size", lesson.DefaultChunkSize)
	v.SetDefault("lesson.blank_policy", BlankPolicyEven)
	v.SetDefault("lesson.blank_seed", 1)
	v.SetDefault("lesson.synth_concurrency", 1)
	v.SetDefault("quiz.synthesizer", SynthTemplate)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", def.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", def.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", def.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", def.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.rpm", def.RequestsPerMinute)
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("profile.name", "Learner")
	v.SetDefault("profile.email", "learner@localhost")
}

// Load resolves the configuration. Precedence, highest first: flags,
// MEMTY_* environment, config file, defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":         "db",
	"chunk-size": "lesson.chunk_size",
	"log-mode":   "log.mode",
	"provider":   "llm.provider",
	"synth":      "quiz.synthesizer",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DB: v.GetString("db"),
		Store: StoreConfig{
			Backend:  strings.ToLower(v.GetString("store.backend")),
			RedisURL: v.GetString("store.redis_url"),
			Prefix:   v.GetString("store.prefix"),
		},
		LogMode: v.GetString("log.mode"),
		Lesson: LessonConfig{
			ChunkSize:        v.GetInt("lesson.chunk_size"),
			BlankPolicy:      strings.ToLower(v.GetString("lesson.blank_policy")),
			BlankSeed:        v.GetUint64("lesson.blank_seed"),
			SynthConcurrency: v.GetInt("lesson.synth_concurrency"),
		},
		Quiz: QuizConfig{
			Synthesizer: strings.ToLower(v.GetString("quiz.synthesizer")),
		},
		Profile: ProfileConfig{
			Name:  v.GetString("profile.name"),
			Email: v.GetString("profile.email"),
		},
	}

	l := llm.DefaultConfig()
	l.Provider = strings.ToLower(v.GetString("llm.provider"))
	l.Anthropic = llm.AnthropicConfig{
		APIKey: v.GetString("llm.anthropic.api_key"),
		Model:  v.GetString("llm.anthropic.model"),
	}
	l.OpenAI = llm.OpenAIConfig{
		APIKey:  v.GetString("llm.openai.api_key"),
		Model:   v.GetString("llm.openai.model"),
		BaseURL: v.GetString("llm.openai.base_url"),
	}
	l.Gemini = llm.GeminiConfig{
		APIKey: v.GetString("llm.gemini.api_key"),
		Model:  v.GetString("llm.gemini.model"),
	}
	l.OpenRouter = llm.OpenRouterConfig{
		APIKey:  v.GetString("llm.openrouter.api_key"),
		Model:   v.GetString("llm.openrouter.model"),
		BaseURL: v.GetString("llm.openrouter.base_url"),
	}
	l.RequestsPerMinute = v.GetInt("llm.rpm")
	l.Timeout = v.GetDuration("llm.timeout")
	l.Retry.MaxAttempts = v.GetInt("llm.retry.max_attempts")

	if l.Provider == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			found.RequestsPerMinute = l.RequestsPerMinute
			found.Timeout = l.Timeout
			found.Retry = l.Retry
			l = found
		}
	}
	cfg.LLM = l
	return cfg
}

// Validate rejects unknown enumerations and out-of-range values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	switch c.Lesson.BlankPolicy {
	case BlankPolicyEven, BlankPolicyRandom:
	default:
		return fmt.Errorf("lesson.blank_policy: unknown policy %q", c.Lesson.BlankPolicy)
	}
	switch c.Quiz.Synthesizer {
	case SynthTemplate:
	case SynthLLM:
		if c.LLM.Provider == "" {
			return errors.New("quiz.synthesizer is llm but no LLM provider is configured")
		}
		if err := c.LLM.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("quiz.synthesizer: unknown synthesizer %q", c.Quiz.Synthesizer)
	}
	if c.Lesson.SynthConcurrency < 1 {
		return fmt.Errorf("lesson.synth_concurrency must be at least 1, got %d", c.Lesson.SynthConcurrency)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	return nil
}

// ChunkSize returns the configured chunk size clamped to the supported range.
func (c *Config) ChunkSize() int {
	p := lesson.DefaultPreferences()
	p.ChunkSize = c.Lesson.ChunkSize
	return p.Normalize().ChunkSize
}
