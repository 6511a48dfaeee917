package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// ErrUsage is returned by the cmd.Usage() method
var ErrUsage = errors.New("Bad usage of command")

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "exavatar",
	Short: "exavatar is the main command",
	Long: `exavatar serves avatar images: either pre-rendered images of a collection
(animals, Rick and Morty characters...), or SVG images generated from a short
text on a colored background.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Setup(cfgFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Display the usage/help by default
		return cmd.Usage()
	},
	// Do not display usage on error
	SilenceUsage: true,
	// We have our own way to display error messages
	SilenceErrors: true,
}

func init() {
	usageFunc := RootCmd.UsageFunc()

	RootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		_ = usageFunc(cmd)
		return ErrUsage
	})

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "configuration file (default \"$HOME/.exavatar/exavatar.yaml\")")

	flags.String("host", "localhost", "server host")
	checkNoErr(viper.BindPFlag("host", flags.Lookup("host")))

	flags.IntP("port", "p", 8080, "server port")
	checkNoErr(viper.BindPFlag("port", flags.Lookup("port")))

	flags.String("admin-host", "localhost", "administration server host")
	checkNoErr(viper.BindPFlag("admin.host", flags.Lookup("admin-host")))

	flags.Int("admin-port", 6060, "administration server port")
	checkNoErr(viper.BindPFlag("admin.port", flags.Lookup("admin-port")))

	flags.String("environment", config.EnvDevelopment, "production or development")
	checkNoErr(viper.BindPFlag("environment", flags.Lookup("environment")))

	flags.String("log-level", "info", "define the log level")
	checkNoErr(viper.BindPFlag("log.level", flags.Lookup("log-level")))

	flags.String("log-format", "text", "format of the logs: text or json")
	checkNoErr(viper.BindPFlag("log.format", flags.Lookup("log-format")))

	flags.String("assets-url", "", "URL of the asset store: file://, mem://, http(s)://, s3:// or swift://")
	checkNoErr(viper.BindPFlag("assets.url", flags.Lookup("assets-url")))
}

func checkNoErr(err error) {
	if err != nil {
		panic(err)
	}
}

func errPrintfln(format string, vals ...interface{}) {
	_, err := fmt.Fprintf(os.Stderr, format+"\n", vals...)
	if err != nil {
		panic(err)
	}
}
