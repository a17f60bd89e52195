/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/materials-commons/mceln/pkg/config"
	"github.com/materials-commons/mceln/pkg/mcdb"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/mceln"
	"github.com/materials-commons/mceln/pkg/tsa"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcelnd",
	Short: "Run the mcelnd experiment record server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		db := mcdb.MustConnectToDB()
		c := config.MustLoadFromDotenv()

		dataDir := c.MustGetKey("MCELN_DIR")
		log.Infof("MCELN Dir: %s", dataDir)

		stors := stor.NewGormStors(db, dataDir)

		tsaClient := tsa.NewClient(c.MustGetKey("MCELN_TSA_URL"))
		service := mceln.NewExperimentService(stors, tsaClient, dataDir)

		setupRoutes(e, RouteOpts{
			stors:   stors,
			service: service,
		})

		if err := e.Start(":" + c.GetKeyWithDefault("MCELND_PORT", "1360")); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
}
