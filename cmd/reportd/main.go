package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reportd",
	Short: "Course progress and completion reports",
	Long: `reportd serves activity progress and course completion reports over HTTP,
exports them as CSV, Excel CSV, XLSX or PDF files and delivers scheduled
exports through a Telegram bot.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
