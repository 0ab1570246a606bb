package shared

type ServerConfig struct {
	Hospital HospitalConfig `mapstructure:"hospital" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Google   GoogleConfig   `mapstructure:"google"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
}

type HospitalConfig struct {
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
	Cron     CronConfig     `mapstructure:"cron" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type SessionConfig struct {
	LifetimeMinutes int    `mapstructure:"lifetimeMinutes" validate:"required"`
	PurgeSchedule   string `mapstructure:"purgeSchedule" validate:"required"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket                    string      `mapstructure:"bucket" validate:"required_with=EnableSqliteBackupAndSync"`
	Prefix                    string      `mapstructure:"prefix" validate:"required_with=EnableSqliteBackupAndSync"`
	SqliteBackupSchedule      string      `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackupAndSync"`
	EnableSqliteBackupAndSync interface{} `mapstructure:"enableSqliteBackupAndSync" validate:"omitempty,bool"`
}

type TwilioConfig struct {
	AccountSid            string      `mapstructure:"accountSid"`
	AuthToken             string      `mapstructure:"authToken"`
	MessagingServiceSid   string      `mapstructure:"messagingServiceSid"`
	AlertPhoneNumber      string      `mapstructure:"alertPhoneNumber" validate:"required_with=EnableEmergencyAlerts"`
	EnableEmergencyAlerts interface{} `mapstructure:"enableEmergencyAlerts" validate:"omitempty,bool"`
}

// SqliteBackupEnabled reports whether the config asks for scheduled
// sqlite backups to cloud storage.
func (c ServerConfig) SqliteBackupEnabled() bool {
	enabled, ok := c.Google.Storage.EnableSqliteBackupAndSync.(bool)
	return ok && enabled && c.Database.Driver == "sqlite"
}

// EmergencyAlertsEnabled reports whether high priority emergency cases
// should trigger an SMS to the on-call number.
func (c ServerConfig) EmergencyAlertsEnabled() bool {
	enabled, ok := c.Twilio.EnableEmergencyAlerts.(bool)
	return ok && enabled
}
