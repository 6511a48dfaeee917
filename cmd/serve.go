package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	build "github.com/cozy/exavatar/pkg/config"
	"github.com/cozy/exavatar/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flagAllowRoot bool
var flagDevMode bool

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts exavatar and listens for HTTP calls",
	Long: `Starts exavatar and listens for HTTP calls
It will accept HTTP requests on localhost:8080 by default.
Use the --port and --host flags to change the listening option.

The avatars are served on /api/avatar, and the prometheus metrics on the
administration server (localhost:6060/metrics by default).

The SIGINT signal will trigger a graceful stop of exavatar: it will wait that
current HTTP requests are finished (in a limit of 2 minutes) before exiting.
`,
	Example: `The most often, this command is used in its simple form:

	$ exavatar serve

But if you want to serve the avatars from a S3 bucket, with a redis shared
between several instances for the cache:

	$ exavatar serve --assets-url s3://avatars --assets-s3-endpoint minio:9000 \
		--cache-redis redis://localhost:6379/0
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagAllowRoot && os.Getuid() == 0 {
			errPrintfln("Use --allow-root if you really want to start with the root user")
			return errors.New("Starting exavatar serve as root not allowed")
		}

		if flagDevMode {
			build.BuildMode = build.ModeDev
		}

		servers, err := web.ListenAndServe(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Ready and waiting for connections:")
		servers.Start()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)

		select {
		case err := <-servers.Wait():
			return err
		case <-sigs:
			fmt.Println("\nReceived interrupt signal:")
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel() // make gometalinter happy
			if err := servers.Shutdown(ctx); err != nil {
				return err
			}
			fmt.Println("All settled, bye bye !")
			return nil
		}
	},
}

func init() {
	flags := serveCmd.PersistentFlags()

	flags.Duration("assets-timeout", 10*time.Second, "maximal duration of a fetch from the asset store")
	checkNoErr(viper.BindPFlag("assets.timeout", flags.Lookup("assets-timeout")))

	flags.String("assets-s3-endpoint", "", "endpoint of the S3 server")
	checkNoErr(viper.BindPFlag("assets.s3.endpoint", flags.Lookup("assets-s3-endpoint")))

	flags.String("assets-s3-access-key", "", "access key for the S3 server")
	checkNoErr(viper.BindPFlag("assets.s3.access_key", flags.Lookup("assets-s3-access-key")))

	flags.String("assets-s3-secret-key", "", "secret key for the S3 server")
	checkNoErr(viper.BindPFlag("assets.s3.secret_key", flags.Lookup("assets-s3-secret-key")))

	flags.String("assets-s3-region", "", "region of the S3 bucket")
	checkNoErr(viper.BindPFlag("assets.s3.region", flags.Lookup("assets-s3-region")))

	flags.Bool("assets-s3-use-ssl", true, "use https to reach the S3 server")
	checkNoErr(viper.BindPFlag("assets.s3.use_ssl", flags.Lookup("assets-s3-use-ssl")))

	flags.String("assets-swift-auth-url", "", "authentication URL of the Swift server")
	checkNoErr(viper.BindPFlag("assets.swift.auth_url", flags.Lookup("assets-swift-auth-url")))

	flags.String("assets-swift-username", "", "username for the Swift server")
	checkNoErr(viper.BindPFlag("assets.swift.username", flags.Lookup("assets-swift-username")))

	flags.String("assets-swift-api-key", "", "API key for the Swift server")
	checkNoErr(viper.BindPFlag("assets.swift.api_key", flags.Lookup("assets-swift-api-key")))

	flags.String("cache-redis", "", "URL of a redis shared by the instances for the cache, in-memory if empty")
	checkNoErr(viper.BindPFlag("cache.redis", flags.Lookup("cache-redis")))

	flags.Int("cache-size", 1024, "number of avatars kept by the in-memory cache")
	checkNoErr(viper.BindPFlag("cache.size", flags.Lookup("cache-size")))

	flags.Duration("cache-ttl", 24*time.Hour, "expiration of the avatars in the cache")
	checkNoErr(viper.BindPFlag("cache.ttl", flags.Lookup("cache-ttl")))

	flags.Int("avatar-text-length", 2, "number of characters of the text avatars")
	checkNoErr(viper.BindPFlag("avatar.text_length", flags.Lookup("avatar-text-length")))

	flags.Bool("avatar-lenient", false, "use the defaults instead of rejecting an invalid size, color or text")
	checkNoErr(viper.BindPFlag("avatar.lenient", flags.Lookup("avatar-lenient")))

	flags.String("avatar-default-color", "", "background color of the text avatars without color (random by default)")
	checkNoErr(viper.BindPFlag("avatar.default_color", flags.Lookup("avatar-default-color")))

	flags.BoolVar(&flagDevMode, "dev", false, "Allow to run in dev mode for a prod release (disabled by default)")
	flags.BoolVar(&flagAllowRoot, "allow-root", false, "Allow to start as root (disabled by default)")

	RootCmd.AddCommand(serveCmd)
}
