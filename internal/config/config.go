package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		SessionSecret     string
		SessionTTLMinutes int
		SecureCookie      bool
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Site struct {
		Title string
	}
	Messages Messages
}

// Messages are the user-facing notices shown by the web layer.
type Messages struct {
	LoginRequired       string
	Registered          string
	IncorrectPassword   string
	UnknownUser         string // first %s is replaced with the submitted username
	UsernameTaken       string
	EmailTaken          string
	InvalidRegistration string
	TitleTooLong        string
	ContentTooLong      string
	NotFound            string
	Forbidden           string
	LoggedOut           string
}

// DefaultMessages mirrors the copy of the original English application.
func DefaultMessages() Messages {
	return Messages{
		LoginRequired:       "you need to login for see this page ,please wait while redirecting to login page",
		Registered:          "you succesfully signed up  .....",
		IncorrectPassword:   "incorrect password",
		UnknownUser:         "no user named %s",
		UsernameTaken:       "that username is already taken",
		EmailTaken:          "that email is already registered",
		InvalidRegistration: "please fill in every field with a valid value",
		TitleTooLong:        "title must be at most 80 characters",
		ContentTooLong:      "content must be at most 1200 characters",
		NotFound:            "todo not found",
		Forbidden:           "you are not allowed to access this todo",
		LoggedOut:           "you have been logged out",
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// real environment always wins over .env
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TODOLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("database.path", "data/database.sqlite")
	v.SetDefault("auth.sessionsecret", "")
	v.SetDefault("auth.sessionttlminutes", 24*60)
	v.SetDefault("auth.securecookie", false)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "static")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("site.title", "Todo App")

	// every key needs a default so AutomaticEnv can override it during Unmarshal
	m := DefaultMessages()
	v.SetDefault("messages.loginrequired", m.LoginRequired)
	v.SetDefault("messages.registered", m.Registered)
	v.SetDefault("messages.incorrectpassword", m.IncorrectPassword)
	v.SetDefault("messages.unknownuser", m.UnknownUser)
	v.SetDefault("messages.usernametaken", m.UsernameTaken)
	v.SetDefault("messages.emailtaken", m.EmailTaken)
	v.SetDefault("messages.invalidregistration", m.InvalidRegistration)
	v.SetDefault("messages.titletoolong", m.TitleTooLong)
	v.SetDefault("messages.contenttoolong", m.ContentTooLong)
	v.SetDefault("messages.notfound", m.NotFound)
	v.SetDefault("messages.forbidden", m.Forbidden)
	v.SetDefault("messages.loggedout", m.LoggedOut)
}
