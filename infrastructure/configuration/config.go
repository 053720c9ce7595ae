package configuration

import (
	"fmt"
	"os"
	"strconv"

	"comment-insights/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	YouTube     YouTube     `json:"youtube"`
	GenAI       GenAI       `json:"genAI"`
	Pubsub      Pubsub      `json:"pubsub"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type YouTube struct {
	APIKey       string   `json:"apiKey"`
	ClientID     string   `json:"clientId"`
	ClientSecret string   `json:"clientSecret"`
	RedirectURI  string   `json:"redirectURI"`
	Scopes       []string `json:"scopes"`
}

// GenAI configures the generative-AI provider. BaseURL allows any
// OpenAI-compatible endpoint, including Gemini's compatibility layer.
type GenAI struct {
	APIKey  string `json:"apiKey"`
	Model   string `json:"model"`
	BaseURL string `json:"baseURL"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initDatabase(&C)
	initGenAI(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initDatabase(C *Config) {
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = os.Getenv("MONGO_DB_NAME")
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Port == "" {
		if v := os.Getenv("MONGO_PORT"); v != "" {
			C.Database.Mongo.Port = v
		} else {
			C.Database.Mongo.Port = "27017"
		}
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = "localhost"
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = "comment_insights"
	}
}

func initGenAI(C *Config) {
	if v := os.Getenv("GENAI_API_KEY"); v != "" {
		C.GenAI.APIKey = v
	}
	if C.GenAI.Model == "" {
		C.GenAI.Model = "gemini-2.0-flash"
	}
	if v := os.Getenv("GENAI_BASE_URL"); v != "" {
		C.GenAI.BaseURL = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		C.YouTube.APIKey = v
	}
}
