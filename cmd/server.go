/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	devConfig "github.com/RASHMI-2005/hospital-management-system/dev/config"
	"github.com/RASHMI-2005/hospital-management-system/server"
	"github.com/RASHMI-2005/hospital-management-system/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the hospital server",
	Long:  `The hospital server houses the administration pages and their session gate`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(serverConfig(), isDevEnv)
	},
}

var serverConfigFile string

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "Config for server")
}

func serverConfig() *viper.Viper {
	config := viper.New()

	// dev and test runs share the generated local config
	if isDevEnv || isTestEnv {
		serverConfigFile = devConfigFilePath()
	}

	config.SetConfigFile(serverConfigFile)
	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		log.Panic(fmt.Sprintf("error reading server config file: %v", err))
	}

	return config
}

// devConfigFilePath returns the dev config location, creating the file
// with default content on first run.
func devConfigFilePath() string {
	workingDir, err := os.Getwd()
	if err != nil {
		log.Panic(err)
	}

	configDir := filepath.Join(workingDir, "dev", "config")
	if err := utils.CreateDirIfNotExist(configDir); err != nil {
		log.Panic(err)
	}

	configFilePath := filepath.Join(configDir, "server.yml")
	if !utils.FileExist(configFilePath) {
		if err := os.WriteFile(configFilePath, []byte(devConfig.SERVER_YML), 0600); err != nil {
			log.Panic(err)
		}
	}

	return configFilePath
}
