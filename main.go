package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/cobra"

	"github.com/estadio/stadium-api/cmd/app"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stadium-api",
	Short: "Stadium ticketing and membership API",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Migrate(configPath)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	return app.Start(configPath)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./cmd/app/config.yml", "path to the config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// @title           Stadium API
// @version         1.0
// @termsOfService  http://swagger.io/terms/
// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
