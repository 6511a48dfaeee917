package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check if the HTTP server is running",
	Long:  `Check if the HTTP server has been started and answer 200 for /status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get("http://" + config.ServerAddr() + "/status")
		if err != nil {
			return fmt.Errorf("the HTTP server is not running: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected HTTP status code: %s", resp.Status)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK, the HTTP server is ready.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
