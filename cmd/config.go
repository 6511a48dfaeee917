package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/cozy/exavatar/pkg/utils"
	"github.com/spf13/cobra"
)

var configCmdGroup = &cobra.Command{
	Use:   "config [command]",
	Short: "Show the configuration",
	Long: `
exavatar config allows to print the configuration, and the places where the
configuration file is searched.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Usage()
	},
}

// printableConfig is the configuration without the secrets.
type printableConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	AdminHost   string `json:"admin_host"`
	AdminPort   int    `json:"admin_port"`
	Environment string `json:"environment"`
	Log         struct {
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"log"`
	Assets struct {
		URL           string `json:"url"`
		Timeout       string `json:"timeout"`
		S3Endpoint    string `json:"s3_endpoint,omitempty"`
		SwiftAuthURL  string `json:"swift_auth_url,omitempty"`
		SwiftUsername string `json:"swift_username,omitempty"`
	} `json:"assets"`
	Cache struct {
		Backend string `json:"backend"`
		Size    int    `json:"size"`
		TTL     string `json:"ttl"`
	} `json:"cache"`
	Avatar struct {
		TextLength   int    `json:"text_length"`
		Lenient      bool   `json:"lenient"`
		DefaultColor string `json:"default_color,omitempty"`
	} `json:"avatar"`
}

func makePrintableConfig(cfg *config.Config) printableConfig {
	var p printableConfig
	p.Host = cfg.Host
	p.Port = cfg.Port
	p.AdminHost = cfg.AdminHost
	p.AdminPort = cfg.AdminPort
	p.Environment = cfg.Environment
	p.Log.Level = cfg.Log.Level
	p.Log.Format = cfg.Log.Format
	p.Assets.URL = cfg.Assets.URL.Redacted()
	p.Assets.Timeout = cfg.Assets.Timeout.String()
	p.Assets.S3Endpoint = cfg.Assets.S3.Endpoint
	p.Assets.SwiftAuthURL = cfg.Assets.Swift.AuthURL
	p.Assets.SwiftUsername = cfg.Assets.Swift.Username
	p.Cache.Backend = "memory"
	if cfg.Cache.Redis != nil {
		p.Cache.Backend = "redis"
	}
	p.Cache.Size = cfg.Cache.Size
	p.Cache.TTL = cfg.Cache.TTL.String()
	p.Avatar.TextLength = cfg.Avatar.TextLength
	p.Avatar.Lenient = cfg.Avatar.Lenient
	if c := cfg.Avatar.DefaultColor; c != nil {
		p.Avatar.DefaultColor = c.String()
	}
	return p
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Display the configuration",
	Long: `Read the environment variables, the config file and
the given parameters to display the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := json.MarshalIndent(makePrintableConfig(config.GetConfig()), "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(cfg))
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the directories where the config file is searched",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, dir := range config.Paths {
			fmt.Fprintln(out, utils.AbsPath(dir))
		}
		if file, err := config.FindConfigFile(config.Filename + ".yaml"); err == nil {
			fmt.Fprintln(out, "\nUsing", file)
		}
		return nil
	},
}

func init() {
	configCmdGroup.AddCommand(configPrintCmd)
	configCmdGroup.AddCommand(configPathsCmd)
	RootCmd.AddCommand(configCmdGroup)
}
