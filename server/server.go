package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/RASHMI-2005/hospital-management-system/server/cron"
	"github.com/RASHMI-2005/hospital-management-system/server/logger"
	"github.com/RASHMI-2005/hospital-management-system/server/models"
	"github.com/RASHMI-2005/hospital-management-system/server/session"
	"github.com/RASHMI-2005/hospital-management-system/server/sms"
	"github.com/RASHMI-2005/hospital-management-system/shared"
	"github.com/RASHMI-2005/hospital-management-system/utils"
	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/spf13/viper"
)

var (
	logg     = logger.NewLogger()
	validate = validator.New()

	sessionStore *session.Store
	smsClient    *sms.ClientWrapper
)

// Start boots the hospital server: database, session store, scheduled
// jobs and the HTTP listener. Blocks until an interrupt arrives, then
// shuts everything down gracefully.
func Start(config *viper.Viper, devMode bool) {
	serverConfig := parseServerConfig(config)
	rootDir := configDirectory(devMode)

	if serverConfig.SqliteBackupEnabled() {
		setupDbBackups(serverConfig, rootDir)
	}

	fatalOnError(models.InitializeDb(serverConfig.Database, rootDir))

	sessionStore = session.NewStore(
		time.Duration(serverConfig.Hospital.Session.LifetimeMinutes) * time.Minute)

	if serverConfig.EmergencyAlertsEnabled() {
		smsClient = sms.NewClient(serverConfig.Twilio, false)
	}

	scheduler := cron.NewScheduler(serverConfig.Hospital.Cron.TimeZone)
	scheduleJobs(scheduler, serverConfig)
	scheduler.StartAsync()

	srv := &http.Server{
		Handler:      NewRouter(),
		Addr:         fmt.Sprintf(":%v", serverConfig.Hospital.Listener.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	go serve(srv)

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
	<-sigChannel

	cleanup(scheduler, srv, serverConfig.SqliteBackupEnabled())
}

// NewRouter wires up every page route. Everything past the auth pages
// sits behind the session gate.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/login", logInPage).Methods("GET", "POST")
	router.HandleFunc("/signup", signUpPage).Methods("GET", "POST")
	router.HandleFunc("/logout", logOut).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.Use(requireSessionMiddleware)
	protected.HandleFunc("/dashboard", dashboardPage).Methods("GET")
	protected.HandleFunc("/doctors", doctorsPage).Methods("GET", "POST")
	protected.HandleFunc("/staff", staffPage).Methods("GET", "POST")
	protected.HandleFunc("/patients", patientsPage).Methods("GET", "POST")
	protected.HandleFunc("/laboratory", laboratoryPage).Methods("GET", "POST")
	protected.HandleFunc("/medical-records", medicalRecordsPage).Methods("GET", "POST")
	protected.HandleFunc("/emergency", emergencyPage).Methods("GET", "POST")
	protected.Handle("/", http.RedirectHandler("/dashboard", http.StatusFound)).Methods("GET")

	return router
}

// ---------------------------------------------------------------------------------//
// Server helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Hospital server is listening on port%v...", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(scheduler *gocron.Scheduler, server *http.Server, backupDb bool) {
	scheduler.Stop()

	if backupDb {
		runDbBackup()
	}

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Hospital server shutdown failed: %+s", err)
	}

	logg.Infof("Hospital server stopped properly")
}

func parseServerConfig(config *viper.Viper) *shared.ServerConfig {
	serverConfig := &shared.ServerConfig{}

	fatalOnError(config.Unmarshal(serverConfig))
	fatalOnError(validate.Struct(serverConfig))

	return serverConfig
}

// configDirectory retrieves the directory holding the server's data,
// or logs an error message and exits if it's unable to.
func configDirectory(devMode bool) string {
	// 'hospital' folder in home directory for prod
	folderName := "hospital"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// 'dev' folder in current directory for dev mode
	if devMode {
		folderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, folderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
