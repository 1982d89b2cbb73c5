package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/db"
	formflowDB "github.com/inbal0012/wild-ginger-bot-sub001/pkg/db/formflow"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/filestore"
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
	STORAGE_KIND_FILE  = "file"
	STORAGE_KIND_SHEET = "sheet"
	STORAGE_KIND_MONGO = "mongo"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Telegram configs
	Telegram struct {
		BotToken    string `json:"bot_token" yaml:"bot_token"`
		AdminChatID int64  `json:"admin_chat_id" yaml:"admin_chat_id"`
	} `json:"telegram" yaml:"telegram"`

	// Google Sheets configs
	Sheets struct {
		CredentialsFile  string        `json:"credentials_file" yaml:"credentials_file"`
		SpreadsheetID    string        `json:"spreadsheet_id" yaml:"spreadsheet_id"`
		Timeout          time.Duration `json:"timeout" yaml:"timeout"`
		UsersTab         string        `json:"users_tab" yaml:"users_tab"`
		FormStatesTab    string        `json:"form_states_tab" yaml:"form_states_tab"`
		IntakeTab        string        `json:"intake_tab" yaml:"intake_tab"`
		RegistrationsTab string        `json:"registrations_tab" yaml:"registrations_tab"`
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

	MonitorConfig struct {
		// Forms untouched for longer than this get a nudge
		StaleAfter time.Duration `json:"stale_after" yaml:"stale_after"`
		// Intake column holding the submission id (the sync key)
		IntakeKeyColumn string `json:"intake_key_column" yaml:"intake_key_column"`
		// Intake header -> managed-tab column
		ColumnMapping map[string]string `json:"column_mapping" yaml:"column_mapping"`
	} `json:"monitor_config" yaml:"monitor_config"`
}

var conf config

var (
	userService         *users.Service
	registrationService *registrations.Service
	intakeRows          *sheets.RowStore
	formStateStore      formstore.FormStateStore
)

func init() {
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

	if conf.MonitorConfig.StaleAfter <= 0 {
		conf.MonitorConfig.StaleAfter = 24 * time.Hour
	}
	if conf.MonitorConfig.IntakeKeyColumn == "" {
		conf.MonitorConfig.IntakeKeyColumn = "Submission ID"
	}

	initStores()
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

func initStores() {
	sheetsClient, err := sheets.NewClient(
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
	registrationService = registrations.NewService(sheetsClient, conf.Sheets.RegistrationsTab)
	intakeRows = sheets.NewRowStore(sheetsClient, conf.Sheets.IntakeTab, conf.MonitorConfig.IntakeKeyColumn)

	switch conf.FormStateStorage.Kind {
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
