package config

const SERVER_YML = `
hospital:
  listener:
    port: 3000
  session:
    lifetimeMinutes: 1440
    purgeSchedule: "0 * * * *"
  cron:
    timeZone: "America/Toronto"

database:
  driver: sqlite
  sqlite:
    passPhrase: passphrase
  postgres:
    dsn:

google:
  storage:
    bucket: "hospital"
    prefix: "hospital-dev"
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackupAndSync: false
  applicationCredentials:

twilio:
  accountSid:
  authToken:
  messagingServiceSid:
  alertPhoneNumber:
  enableEmergencyAlerts: false
`
