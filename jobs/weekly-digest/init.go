package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/sheets"
	smtpclient "github.com/inbal0012/wild-ginger-bot-sub001/pkg/smtp-client"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_TELEGRAM_BOT_TOKEN      = "TELEGRAM_BOT_TOKEN"
	ENV_SHEETS_CREDENTIALS_FILE = "SHEETS_CREDENTIALS_FILE"
	ENV_SMTP_USERNAME           = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD           = "SMTP_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Telegram configs (optional; the digest also goes to the admin chat)
	Telegram struct {
		BotToken    string `json:"bot_token" yaml:"bot_token"`
		AdminChatID int64  `json:"admin_chat_id" yaml:"admin_chat_id"`
	} `json:"telegram" yaml:"telegram"`

	// Google Sheets configs
	Sheets struct {
		CredentialsFile  string        `json:"credentials_file" yaml:"credentials_file"`
		SpreadsheetID    string        `json:"spreadsheet_id" yaml:"spreadsheet_id"`
		Timeout          time.Duration `json:"timeout" yaml:"timeout"`
		EventsTab        string        `json:"events_tab" yaml:"events_tab"`
		RegistrationsTab string        `json:"registrations_tab" yaml:"registrations_tab"`
	} `json:"sheets" yaml:"sheets"`

	// Digest configs
	DigestConfig struct {
		// Path to the smtp server list yaml
		SmtpServerConfigPath string   `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`
		Recipients           []string `json:"recipients" yaml:"recipients"`
	} `json:"digest_config" yaml:"digest_config"`
}

var conf config

var (
	eventService        *events.Service
	registrationService *registrations.Service
	smtpClients         *smtpclient.SmtpClients
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

	if botToken := os.Getenv(ENV_TELEGRAM_BOT_TOKEN); botToken != "" {
		conf.Telegram.BotToken = botToken
	}
	if credentialsFile := os.Getenv(ENV_SHEETS_CREDENTIALS_FILE); credentialsFile != "" {
		conf.Sheets.CredentialsFile = credentialsFile
	}

	initSheets()
	initSmtp()
}

func initSheets() {
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

	eventService = events.NewService(sheetsClient, conf.Sheets.EventsTab)
	registrationService = registrations.NewService(sheetsClient, conf.Sheets.RegistrationsTab)
}

func initSmtp() {
	serverList := smtpclient.SmtpServerList{}
	if err := serverList.ReadFromFile(conf.DigestConfig.SmtpServerConfigPath); err != nil {
		slog.Error("Error reading smtp server config", slog.String("error", err.Error()))
		panic(err)
	}

	// Override smtp credentials from environment variables
	username := os.Getenv(ENV_SMTP_USERNAME)
	password := os.Getenv(ENV_SMTP_PASSWORD)
	for i := range serverList.Servers {
		if username != "" {
			serverList.Servers[i].SetUsername(username)
		}
		if password != "" {
			serverList.Servers[i].SetPassword(password)
		}
	}

	var err error
	smtpClients, err = smtpclient.NewSmtpClients(serverList)
	if err != nil {
		slog.Error("Error setting up smtp clients", slog.String("error", err.Error()))
		panic(err)
	}
}
