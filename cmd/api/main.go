package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/padelpro/academy/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "padelpro",
		Short: "PadelPro Academy API Server",
		Long:  `PadelPro Academy serves the public padel academy site and its admin back office: coaching staff, student registrations, events, court bookings, contact messages and the blog.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
