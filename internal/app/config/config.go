package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8090"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env:"HTTP_TIMEOUT_GRACEFUL" env-default:"15s"`
}

// StoreConfig selects where the single cart slot lives. The file backend
// is the default; redis and mongo let several kiosks share one slot.
type StoreConfig struct {
	Backend  string        `yaml:"backend" env:"CART_STORE" env-default:"file"`
	Slot     string        `yaml:"slot" env:"CART_SLOT" env-default:"default"`
	FilePath string        `yaml:"file_path" env:"CART_FILE_PATH" env-default:"data/cart.json"`
	TTL      time.Duration `yaml:"ttl" env:"CART_TTL" env-default:"0"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User       string `yaml:"user" env:"MONGO_USER"`
	Password   string `yaml:"password" env:"MONGO_PASSWORD"`
	Database   string `yaml:"database" env:"MONGO_DATABASE" env-default:"cart_widget_db"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"cart_slots"`
}

// NATSConfig enables the remote event source when URL is non-empty.
type NATSConfig struct {
	URL           string `yaml:"url" env:"NATS_URL"`
	SubjectPrefix string `yaml:"subject_prefix" env:"NATS_SUBJECT_PREFIX" env-default:"cart"`
}

// MessagingConfig holds the deep-link template pieces. Destination is the
// external contact identifier, fixed at deployment time.
type MessagingConfig struct {
	BaseURL     string `yaml:"base_url" env:"MESSAGING_BASE_URL" env-default:"https://wa.me"`
	Destination string `yaml:"destination" env:"MESSAGING_DESTINATION" env-required:"true"`
}

// SMTPConfig is optional: when Host and ShopEmail are set, a plain-text
// copy of each prepared order goes to the shop.
type SMTPConfig struct {
	Host        string `yaml:"host" env:"SMTP_HOST"`
	Port        int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string `yaml:"username" env:"SMTP_USERNAME"`
	Password    string `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	Encryption  string `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName  string `yaml:"server_name" env:"SMTP_SERVER_NAME"`
	ShopEmail   string `yaml:"shop_email" env:"SMTP_SHOP_EMAIL"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Store      StoreConfig      `yaml:"store"`
	Redis      RedisConfig      `yaml:"redis"`
	MongoDB    MongoDBConfig    `yaml:"mongo"`
	NATS       NATSConfig       `yaml:"nats"`
	Messaging  MessagingConfig  `yaml:"messaging"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Logger     LoggerConfig     `yaml:"logger"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			log.Printf("Warning: Config file not found at %s, loading from environment variables only.", path)
			if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
