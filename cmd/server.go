/*
Copyright © 2026 Lena Delaney <lena.delaney@fastmail.com>

*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	devConfig "github.com/ldelaney/rolodex/dev/config"
	"github.com/ldelaney/rolodex/server"
	"github.com/ldelaney/rolodex/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a rolodex server",
	Long:  `The rolodex server hosts the contact book: registration, login & per-user contact management`,
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

	if isDevEnv {
		serverConfigFile = devConfigFilePath()
	}

	if serverConfigFile == "" {
		fmt.Printf("%v no --sconfig provided, falling back to dev config\n", warningLabel)
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

// devConfigFilePath returns the path of the dev server config,
// writing the default one first if none exists yet.
func devConfigFilePath() string {
	configDir, err := os.Getwd()
	if err != nil {
		log.Panic(err)
	}

	configFilePath := filepath.Join(configDir, "dev", "config", "server.yml")

	exists, err := utils.FileExist(configFilePath)
	if err != nil {
		log.Panic(err)
	}

	if !exists {
		if err := utils.CreateDirIfNotExist(filepath.Dir(configFilePath)); err != nil {
			log.Panic(err)
		}

		if err := ioutil.WriteFile(configFilePath, []byte(devConfig.SERVER_YML), 0600); err != nil {
			log.Panic(err)
		}
	}

	return configFilePath
}
