package server

import (
	"github.com/RASHMI-2005/hospital-management-system/server/gstorage"
	"github.com/RASHMI-2005/hospital-management-system/server/models"
	"github.com/RASHMI-2005/hospital-management-system/shared"
	"github.com/RASHMI-2005/hospital-management-system/utils"
	"github.com/go-co-op/gocron"
)

var (
	gStorage   *gstorage.GStorage
	dbFilePath string
)

// setupDbBackups prepares the cloud storage client for scheduled sqlite
// backups and, when no local db file exists yet, restores the latest
// remote copy. Must run before the database is opened so the restored
// file is the one that gets mounted.
func setupDbBackups(serverConfig *shared.ServerConfig, rootDir string) {
	var err error

	gStorage, err = gstorage.NewGStorage(
		serverConfig.Google.ApplicationCredentials,
		serverConfig.Google.Storage.Bucket,
		serverConfig.Google.Storage.Prefix,
	)
	if err != nil {
		logg.Errorf("sqlite backups disabled: %v", err)
		return
	}

	dbFilePath, err = models.DbFilePath(rootDir)
	if err != nil {
		logg.Errorf("sqlite backups disabled: %v", err)
		gStorage = nil
		return
	}

	restoreDbBackup()
}

func scheduleJobs(scheduler *gocron.Scheduler, serverConfig *shared.ServerConfig) {
	_, err := scheduler.Cron(serverConfig.Hospital.Session.PurgeSchedule).
		Tag("purge-expired-sessions").
		Do(purgeExpiredSessions)
	if err != nil {
		logg.Errorf("failed to schedule session purge: %v", err)
	}

	if gStorage == nil {
		return
	}

	_, err = scheduler.Cron(serverConfig.Google.Storage.SqliteBackupSchedule).
		Tag("backup-sqlite-db").
		Do(runDbBackup)
	if err != nil {
		logg.Errorf("failed to schedule db backup: %v", err)
	}
}

func purgeExpiredSessions() {
	count, err := sessionStore.PurgeExpired()
	if err != nil {
		logg.Errorf("failed to purge expired sessions: %v", err)
		return
	}

	if count > 0 {
		logg.Infof("purged %v expired session(s)", count)
	}
}

func runDbBackup() {
	if gStorage == nil || dbFilePath == "" {
		return
	}

	if err := gStorage.UploadFile(dbFilePath); err != nil {
		logg.Errorf("db backup failed: %v", err)
		return
	}

	logg.Infof("db backup uploaded")
}

// restoreDbBackup pulls the latest remote copy of the db file when none
// exists locally. An already-present file is never overwritten.
func restoreDbBackup() {
	if gStorage == nil || dbFilePath == "" || utils.FileExist(dbFilePath) {
		return
	}

	err := gStorage.DownloadFile(models.DB_NAME, dbFilePath)
	switch {
	case err == gstorage.ErrObjectNotExist:
		logg.Infof("no remote db backup to restore")
	case err != nil:
		logg.Errorf("db restore failed: %v", err)
	default:
		logg.Infof("restored db file from remote backup")
	}
}
