package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"tamilnews/internal/enrich"

	"github.com/joho/godotenv"
)

// DefaultFeedURL лента Google News на тамильском языке.
const DefaultFeedURL = "https://news.google.com/rss?hl=ta&gl=IN&ceid=IN:ta"

// Config представляет основную конфигурацию приложения.
// Содержит настройки сервера, логгера, приложения, каталога издателей и базы данных.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Logger     LoggerConfig     `json:"logger"`
	App        AppConfig        `json:"app"`
	Publishers PublishersConfig `json:"publishers"`
	Database   DatabaseConfig   `json:"database"`
}

// ServerConfig содержит настройки HTTP-сервера.
type ServerConfig struct {
	Address string `json:"address"`
}

// LoggerConfig содержит настройки логирования.
// Если File пуст, логи пишутся в stderr.
type LoggerConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	ErrorFile string `json:"error_file"`
}

// AppConfig содержит настройки загрузки и обогащения ленты.
type AppConfig struct {
	FeedURL          string `json:"feed_url"`
	RefreshInterval  string `json:"refresh_interval"`
	FetchTimeout     string `json:"fetch_timeout"`
	UserAgent        string `json:"user_agent"`
	Timezone         string `json:"timezone"`
	PlaceholderImage string `json:"placeholder_image"`
	DefaultNewsLimit int    `json:"default_news_limit"`
}

// PublishersConfig задает каталог издателей. Пустой список означает встроенный каталог.
type PublishersConfig struct {
	UnknownLogo string             `json:"unknown_logo"`
	List        []enrich.Publisher `json:"list"`
}

// DatabaseConfig содержит параметры подключения к PostgreSQL.
// Архив статей включается только если задан Host.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

// Enabled сообщает, настроен ли архив в PostgreSQL.
func (c *DatabaseConfig) Enabled() bool { return c.Host != "" }

// DSN возвращает строку подключения к PostgreSQL в формате URI.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode)
}

// New создает новый экземпляр Config со значениями по умолчанию.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		App: AppConfig{
			FeedURL:          DefaultFeedURL,
			RefreshInterval:  "10m",
			FetchTimeout:     "30s",
			UserAgent:        "tamilnews/1.0",
			Timezone:         "UTC",
			PlaceholderImage: enrich.DefaultPlaceholderImage,
			DefaultNewsLimit: 50,
		},
		Publishers: PublishersConfig{
			UnknownLogo: enrich.DefaultUnknownLogo(),
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "disable",
		},
	}
}

// Load загружает конфигурацию из JSON-файла поверх значений по умолчанию.
// Отсутствующий файл не считается ошибкой.
func Load(configPath string) (*Config, error) {
	cfg := New()
	if configPath == "" {
		return cfg, nil
	}
	fileData, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := json.Unmarshal(fileData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
	}
	return cfg, nil
}

// LoadEnvFile загружает переменные окружения из .env-файла, если он существует.
// Уже заданные переменные окружения не перезаписываются.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv переопределяет значения конфигурации переменными окружения TAMILNEWS_*.
func (c *Config) ApplyEnv() error {
	setString(&c.App.FeedURL, "TAMILNEWS_FEED_URL")
	setString(&c.Logger.Level, "TAMILNEWS_LOG_LEVEL")
	setString(&c.Server.Address, "TAMILNEWS_SERVER_ADDRESS")
	setString(&c.App.RefreshInterval, "TAMILNEWS_REFRESH_INTERVAL")
	setString(&c.App.Timezone, "TAMILNEWS_TIMEZONE")
	setString(&c.Database.Host, "TAMILNEWS_DB_HOST")
	setString(&c.Database.Username, "TAMILNEWS_DB_USER")
	setString(&c.Database.Password, "TAMILNEWS_DB_PASSWORD")
	setString(&c.Database.DBName, "TAMILNEWS_DB_NAME")
	if v := os.Getenv("TAMILNEWS_DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TAMILNEWS_DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate проверяет корректность конфигурации.
// Возвращает ошибку с описанием первой найденной проблемы.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.App.FeedURL); err != nil {
		return fmt.Errorf("invalid app.feed_url: %s", c.App.FeedURL)
	}
	if err := positiveDuration("app.refresh_interval", c.App.RefreshInterval); err != nil {
		return err
	}
	if err := positiveDuration("app.fetch_timeout", c.App.FetchTimeout); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid app.timezone: %w", err)
	}
	if c.App.DefaultNewsLimit <= 0 {
		return fmt.Errorf("app.default_news_limit must be a positive number")
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("invalid publishers: %w", err)
	}
	if c.Database.Enabled() {
		if c.Database.Username == "" {
			return fmt.Errorf("database username is not set")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database password is not set")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is not set")
		}
	}
	return nil
}

// Catalog строит каталог издателей из конфигурации.
func (c *Config) Catalog() (*enrich.Catalog, error) {
	list := c.Publishers.List
	if len(list) == 0 {
		list = enrich.DefaultPublishers()
	}
	return enrich.NewCatalog(list, c.Publishers.UnknownLogo)
}

// Location возвращает часовой пояс для форматирования дат.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// RefreshEvery возвращает интервал обновления ленты.
// Вызывается после Validate, поэтому ошибка разбора не ожидается.
func (c *Config) RefreshEvery() time.Duration {
	d, _ := time.ParseDuration(c.App.RefreshInterval)
	return d
}

// FetchTimeoutDuration возвращает таймаут загрузки ленты.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.App.FetchTimeout)
	return d
}

func positiveDuration(name, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
