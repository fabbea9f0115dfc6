package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tasksphere/core/cmd/api/commands"
)

// @title TaskSphere API
// @version 1.0
// @description Project and task tracking system with a reward points economy

// @contact.name TaskSphere Support
// @contact.url https://github.com/tasksphere/core

// @license.name MIT
// @license.url https://github.com/tasksphere/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasksphere",
		Short: "TaskSphere API Server",
		Long:  `TaskSphere is a project and task tracking system where completing tasks earns reward points that can be spent in the reward store.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
