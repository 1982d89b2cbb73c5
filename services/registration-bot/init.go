package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/db"
	formflowDB "github.com/inbal0012/wild-ginger-bot-sub001/pkg/db/formflow"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/filestore"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	formstore "github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/store"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/sheets"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/users"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_TELEGRAM_BOT_TOKEN      = "TELEGRAM_BOT_TOKEN"
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

	// Telegram configs
	Telegram struct {
		BotToken     string  `json:"bot_token" yaml:"bot_token"`
		AdminUserIDs []int64 `json:"admin_user_ids" yaml:"admin_user_ids"`
	} `json:"telegram" yaml:"telegram"`

	// Question catalog config
	Catalog struct {
		// Path to a JSON catalog file; empty means the built-in catalog
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
		// For kind "file"
		Dir string `json:"dir" yaml:"dir"`
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

	initCatalog()
	initSheets()
	initFormStateStore()
}

func secretsOverride() {
	if botToken := os.Getenv(ENV_TELEGRAM_BOT_TOKEN); botToken != "" {
		conf.Telegram.BotToken = botToken
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
