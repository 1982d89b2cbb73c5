package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/db"
	formflowDB "github.com/inbal0012/wild-ginger-bot-sub001/pkg/db/formflow"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/filestore"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/engine"
	formstore "github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/store"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/sheets"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/users"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/utils"
	"github.com/inbal0012/wild-ginger-bot-sub001/services/admin-api/apihandlers"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_GIN_DEBUG_MODE        = "GIN_DEBUG_MODE"
	ENV_ADMIN_API_LISTEN_PORT = "ADMIN_API_LISTEN_PORT"
	ENV_CORS_ALLOW_ORIGINS    = "CORS_ALLOW_ORIGINS"

	// Variables to override "secrets" in the config file
	ENV_ADMIN_JWT_SIGN_KEY      = "ADMIN_JWT_SIGN_KEY"
	ENV_ADMIN_API_KEYS          = "ADMIN_API_KEYS"
	ENV_SHEETS_CREDENTIALS_FILE = "SHEETS_CREDENTIALS_FILE"
	ENV_FORM_FLOW_DB_USERNAME   = "FORM_FLOW_DB_USERNAME"
	ENV_FORM_FLOW_DB_PASSWORD   = "FORM_FLOW_DB_PASSWORD"
)

// Form state storage kinds
const (
	STORAGE_KIND_MEMORY = "memory"
	STORAGE_KIND_FILE   = "file"
	STORAGE_KIND_SHEET  = "sheet"
	STORAGE_KIND_MONGO  = "mongo"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// JWT configs
	AdminJWTSignKey      string `json:"admin_jwt_sign_key" yaml:"admin_jwt_sign_key"`
	AdminJWTExpiresIn    string `json:"admin_jwt_expires_in" yaml:"admin_jwt_expires_in"`
	adminJWTExpiresInDur time.Duration

	// Admin users and service API keys
	AdminUsers []apihandlers.AdminUser `json:"admin_users" yaml:"admin_users"`
	APIKeys    []string                `json:"api_keys" yaml:"api_keys"`

	// Question catalog config
	Catalog struct {
		Path string `json:"path" yaml:"path"`
	} `json:"catalog" yaml:"catalog"`

	// Google Sheets configs
	Sheets struct {
		CredentialsFile  string        `json:"credentials_file" yaml:"credentials_file"`
		SpreadsheetID    string        `json:"spreadsheet_id" yaml:"spreadsheet_id"`
		Timeout          time.Duration `json:"timeout" yaml:"timeout"`
		UsersTab         string        `json:"users_tab" yaml:"users_tab"`
		EventsTab        string        `json:"events_tab" yaml:"events_tab"`
		RegistrationsTab string        `json:"registrations_tab" yaml:"registrations_tab"`
		FormStatesTab    string        `json:"form_states_tab" yaml:"form_states_tab"`
	} `json:"sheets" yaml:"sheets"`

	// Form state storage config
	FormStateStorage struct {
		Kind string `json:"kind" yaml:"kind"`
		Dir  string `json:"dir" yaml:"dir"`
	} `json:"form_state_storage" yaml:"form_state_storage"`

	// DB configs (for kind "mongo")
	DBConfigs struct {
		FormFlowDB db.DBConfigYaml `json:"form_flow_db" yaml:"form_flow_db"`
	} `json:"db_configs" yaml:"db_configs"`
}

var conf config

var (
	questionCatalog     *catalog.Catalog
	sheetsClient        *sheets.Client
	userService         *users.Service
	eventService        *events.Service
	registrationService *registrations.Service
	formStateStore      formstore.FormStateStore
	formEngine          *engine.Engine
)

func init() {
	// Local development convenience, ignored when no .env file exists
	_ = godotenv.Load()

	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	conf.adminJWTExpiresInDur, err = utils.ParseDurationString(conf.AdminJWTExpiresIn)
	if err != nil {
		slog.Error("invalid admin_jwt_expires_in", slog.String("error", err.Error()))
		panic(err)
	}

	initCatalog()
	initSheets()
	initFormStateStore()

	formEngine = engine.New(questionCatalog, formStateStore, nil, userService, eventService, nil)
}

func secretsOverride() {
	if debugMode := os.Getenv(ENV_GIN_DEBUG_MODE); debugMode != "" {
		conf.GinConfig.DebugMode = debugMode == "true"
	}
	if port := os.Getenv(ENV_ADMIN_API_LISTEN_PORT); port != "" {
		conf.GinConfig.Port = port
	}
	if origins := os.Getenv(ENV_CORS_ALLOW_ORIGINS); origins != "" {
		conf.GinConfig.AllowOrigins = strings.Split(origins, ",")
	}

	if signKey := os.Getenv(ENV_ADMIN_JWT_SIGN_KEY); signKey != "" {
		conf.AdminJWTSignKey = signKey
	}
	if apiKeys := os.Getenv(ENV_ADMIN_API_KEYS); apiKeys != "" {
		conf.APIKeys = strings.Split(apiKeys, ",")
	}

	if credentialsFile := os.Getenv(ENV_SHEETS_CREDENTIALS_FILE); credentialsFile != "" {
		conf.Sheets.CredentialsFile = credentialsFile
	}
	if dbUsername := os.Getenv(ENV_FORM_FLOW_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.FormFlowDB.Username = dbUsername
	}
	if dbPassword := os.Getenv(ENV_FORM_FLOW_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.FormFlowDB.Password = dbPassword
	}

	// Override admin password hashes per user
	for i := range conf.AdminUsers {
		user := &conf.AdminUsers[i]
		if user.Username == "" {
			continue
		}
		envVarName := utils.GenerateAdminPasswordEnvVarName(user.Username)
		if hash := os.Getenv(envVarName); hash != "" {
			user.PasswordHash = hash
		}
	}
}

func initCatalog() {
	var err error
	if conf.Catalog.Path != "" {
		questionCatalog, err = catalog.LoadFromFile(conf.Catalog.Path)
	} else {
		questionCatalog, err = catalog.Default()
	}
	if err != nil {
		slog.Error("Error loading question catalog", slog.String("error", err.Error()))
		panic(err)
	}
}

func initSheets() {
	var err error
	sheetsClient, err = sheets.NewClient(
		context.Background(),
		conf.Sheets.CredentialsFile,
		conf.Sheets.SpreadsheetID,
		conf.Sheets.Timeout,
	)
	if err != nil {
		slog.Error("Error connecting to Google Sheets", slog.String("error", err.Error()))
		panic(err)
	}

	userService = users.NewService(sheetsClient, conf.Sheets.UsersTab)
	eventService = events.NewService(sheetsClient, conf.Sheets.EventsTab)
	registrationService = registrations.NewService(sheetsClient, conf.Sheets.RegistrationsTab)
}

func initFormStateStore() {
	var err error
	switch conf.FormStateStorage.Kind {
	case STORAGE_KIND_MEMORY:
		formStateStore = formstore.NewMemoryStore()
	case STORAGE_KIND_FILE:
		formStateStore, err = filestore.NewFormStateStore(conf.FormStateStorage.Dir)
	case STORAGE_KIND_SHEET:
		formStateStore = sheets.NewFormStateStore(sheetsClient, conf.Sheets.FormStatesTab)
	case STORAGE_KIND_MONGO:
		var dbService *formflowDB.FormFlowDBService
		dbService, err = formflowDB.NewFormFlowDBService(db.DBConfigFromYamlObj(conf.DBConfigs.FormFlowDB))
		if err == nil {
			formStateStore = formflowDB.NewStore(dbService)
		}
	default:
		slog.Error("Unknown form state storage kind", slog.String("kind", conf.FormStateStorage.Kind))
		panic("unknown form state storage kind")
	}
	if err != nil {
		slog.Error("Error initializing form state storage", slog.String("error", err.Error()))
		panic(err)
	}
}
