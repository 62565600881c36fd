package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Vet Clinic API
// @version 1.0
// @description API REST de la clínica veterinaria: clientes, mascotas, citas e historias clínicas.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "vet-clinic-api",
	Short:        "API de la clínica veterinaria",
	SilenceUsage: true,
	// Sin subcomando se levanta el servidor.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crea o actualiza las tablas y termina",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "archivo de configuración (default: ./config.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
