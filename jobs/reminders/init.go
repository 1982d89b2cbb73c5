package main

import (
	"context"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
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
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Telegram configs
	Telegram struct {
		BotToken string `json:"bot_token" yaml:"bot_token"`
	} `json:"telegram" yaml:"telegram"`

	// Google Sheets configs
	Sheets struct {
		CredentialsFile  string        `json:"credentials_file" yaml:"credentials_file"`
		SpreadsheetID    string        `json:"spreadsheet_id" yaml:"spreadsheet_id"`
		Timeout          time.Duration `json:"timeout" yaml:"timeout"`
		UsersTab         string        `json:"users_tab" yaml:"users_tab"`
		EventsTab        string        `json:"events_tab" yaml:"events_tab"`
		RegistrationsTab string        `json:"registrations_tab" yaml:"registrations_tab"`
	} `json:"sheets" yaml:"sheets"`

	// Reminder configs
	ReminderConfig struct {
		// How long a registration waits for the partner before the nudge
		PartnerPendingFor string `json:"partner_pending_for" yaml:"partner_pending_for"`
		// How long an approved registration stays unpaid before the nudge
		PaymentPendingFor string `json:"payment_pending_for" yaml:"payment_pending_for"`

		partnerPendingForDur time.Duration
		paymentPendingForDur time.Duration
	} `json:"reminder_config" yaml:"reminder_config"`
}

var conf config

var (
	userService         *users.Service
	eventService        *events.Service
	registrationService *registrations.Service
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

	initReminderIntervals()
	initSheets()
}

func initReminderIntervals() {
	if conf.ReminderConfig.PartnerPendingFor == "" {
		conf.ReminderConfig.PartnerPendingFor = "24h"
	}
	if conf.ReminderConfig.PaymentPendingFor == "" {
		conf.ReminderConfig.PaymentPendingFor = "72h"
	}

	var err error
	conf.ReminderConfig.partnerPendingForDur, err = utils.ParseDurationString(conf.ReminderConfig.PartnerPendingFor)
	if err != nil {
		panic(err)
	}
	conf.ReminderConfig.paymentPendingForDur, err = utils.ParseDurationString(conf.ReminderConfig.PaymentPendingFor)
	if err != nil {
		panic(err)
	}
}

func secretsOverride() {
	if botToken := os.Getenv(ENV_TELEGRAM_BOT_TOKEN); botToken != "" {
		conf.Telegram.BotToken = botToken
	}

	if credentialsFile := os.Getenv(ENV_SHEETS_CREDENTIALS_FILE); credentialsFile != "" {
		conf.Sheets.CredentialsFile = credentialsFile
	}
}

func initSheets() {
	sheetsClient, err := sheets.NewClient(
		context.Background(),
		conf.Sheets.CredentialsFile,
		conf.Sheets.SpreadsheetID,
		conf.Sheets.Timeout,
	)
	if err != nil {
		panic(err)
	}

	userService = users.NewService(sheetsClient, conf.Sheets.UsersTab)
	eventService = events.NewService(sheetsClient, conf.Sheets.EventsTab)
	registrationService = registrations.NewService(sheetsClient, conf.Sheets.RegistrationsTab)
}
