package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	StorageConfig struct {
		Driver string // badger | memory
		Path   string
	}

	ScheduleConfig struct {
		OriginHour      int
		WindowMinutes   int
		GutterMinutes   int
		MinBlockMinutes int
		RefreshSpec     string
	}

	CalendarConfig struct {
		BaseURL string
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		Location     *time.Location
		Server       ServerConfig
		Storage      StorageConfig
		Schedule     ScheduleConfig
		Calendar     CalendarConfig
	}
)

// NewConfig reads the configuration from defaults, the optional config/.env.<env> file and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Daftari")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("timezone", "Asia/Jerusalem")
	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("storage.driver", "badger")
	v.SetDefault("storage.path", filepath.Join("data", "daftari"))
	v.SetDefault("schedule.originHour", 7)
	v.SetDefault("schedule.windowMinutes", 660)
	v.SetDefault("schedule.gutterMinutes", 5)
	v.SetDefault("schedule.minBlockMinutes", 1)
	v.SetDefault("schedule.refreshSpec", "@every 1m")
	v.SetDefault("calendar.baseURL", "https://www.google.com/calendar/render")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("storage.driver", "memory")
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		log.Printf("config: unknown timezone %q, falling back to UTC", v.GetString("timezone"))
		loc = time.UTC
	}

	return &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		Location:     loc,
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			Path:   v.GetString("storage.path"),
		},
		Schedule: ScheduleConfig{
			OriginHour:      v.GetInt("schedule.originHour"),
			WindowMinutes:   v.GetInt("schedule.windowMinutes"),
			GutterMinutes:   v.GetInt("schedule.gutterMinutes"),
			MinBlockMinutes: v.GetInt("schedule.minBlockMinutes"),
			RefreshSpec:     v.GetString("schedule.refreshSpec"),
		},
		Calendar: CalendarConfig{
			BaseURL: v.GetString("calendar.baseURL"),
		},
	}
}
