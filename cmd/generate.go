package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cozy/exavatar/model/stack"
	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/cozy/exavatar/pkg/initials"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagAvatar avatar.Params
var flagOutput string
var flagBaseURL string
var flagCanonical bool
var flagName string

func addAvatarFlags(cmd *cobra.Command, p *avatar.Params) {
	flags := cmd.Flags()
	flags.StringVar(&p.Set, "set", "", "collection of the image: "+joinSets())
	flags.StringVar(&p.ID, "id", "", "identifier of the image in its collection")
	flags.StringVar(&p.Size, "size", "", "width and height in pixels (256 by default)")
	flags.StringVar(&p.Format, "format", "", "format of the image: png, jpeg or webp (webp by default)")
	flags.StringVar(&p.Color, "color", "", "background color of a text avatar, as a CSS color")
	flags.StringVar(&p.Text, "text", "", "text of a generated avatar")
	flags.StringVar(&p.Shape, "shape", "", "shape of a text avatar: square, circle or rounded")
	flags.StringVar(&flagName, "name", "", "name of a person, to fill the text and the color with its initials")
}

// avatarParams returns the parameters given by the flags. With --name, the
// text and the color default to the initials of the name and its color.
func avatarParams() (avatar.Params, error) {
	params := flagAvatar
	if flagName == "" {
		return params, nil
	}
	if params.Text == "" {
		params.Text = initials.Of(flagName, config.GetConfig().Avatar.TextLength)
		if params.Text == "" {
			return params, fmt.Errorf("no initials in the name %q", flagName)
		}
	}
	if params.Color == "" {
		params.Color = initials.Color(flagName)
	}
	return params, nil
}

func joinSets() string {
	sets := make([]string, len(avatar.Sets))
	for i, set := range avatar.Sets {
		sets[i] = set.String()
	}
	return strings.Join(sets, ", ")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resolve an avatar and write it in a file",
	Long: `Resolve an avatar like the HTTP server would do for the same parameters, and
write it in a file (or on the standard output with --output -).

The image avatars are loaded from the configured asset store.`,
	Example: `$ exavatar generate --text AB --color '#3b82f6' --shape circle --output ab.svg
$ exavatar generate --name 'Alice Martin' --shape rounded
$ exavatar generate --set animals --id cat --size 64 --format png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return cmd.Usage()
		}
		params, err := avatarParams()
		if err != nil {
			return err
		}
		svc, _, err := stack.Start(cmd.Context(), stack.Quiet, stack.NoStoreCheck)
		if err != nil {
			return err
		}
		res, err := svc.Resolve(cmd.Context(), params.Raw())
		if err != nil {
			if errors.Is(err, avatar.ErrNotFound) {
				return fmt.Errorf("no image for %s in the %s store", describeParams(params), svc.Store().Kind())
			}
			return err
		}

		output := flagOutput
		if output == "" {
			output = outputName(res.Config)
		}
		var w io.Writer = cmd.OutOrStdout()
		if output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if _, err := w.Write(res.Data); err != nil {
			return err
		}
		if output != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s) written to %s\n",
				res.ContentType, humanize.Bytes(uint64(len(res.Data))), output)
		}
		return nil
	},
}

func describeParams(p avatar.Params) string {
	values, err := p.Values()
	if err != nil || len(values) == 0 {
		return "the default parameters"
	}
	return values.Encode()
}

// outputName returns the default name of the file for an avatar.
func outputName(cfg *avatar.Config) string {
	if cfg.Mode() == avatar.ModeText {
		return "avatar.svg"
	}
	return fmt.Sprintf("%s-%d-%s", cfg.Set(), cfg.Size(), cfg.Filename())
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the URL of an avatar",
	Long: `Print the URL to request an avatar from the HTTP server. With --canonical,
the parameters are resolved first: the defaults (including the random ones)
are made explicit.`,
	Example: `$ exavatar url --text ab --color red
http://localhost:8080/api/avatar?color=red&text=ab`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return cmd.Usage()
		}
		params, err := avatarParams()
		if err != nil {
			return err
		}
		if flagCanonical {
			cfg, err := avatar.NewConfig(params.Raw(), config.GetConfig().AvatarOptions())
			if err != nil {
				return err
			}
			params = cfg.Params()
		}
		u, err := avatarURL(flagBaseURL, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	},
}

// avatarURL returns the URL of the avatar endpoint for the given parameters.
func avatarURL(base string, params avatar.Params) (string, error) {
	if base == "" {
		base = "http://" + config.ServerAddr()
	}
	values, err := params.Values()
	if err != nil {
		return "", err
	}
	u := strings.TrimSuffix(base, "/") + "/api/avatar"
	if q := values.Encode(); q != "" {
		u += "?" + q
	}
	return u, nil
}

func init() {
	addAvatarFlags(generateCmd, &flagAvatar)
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file, - for the standard output")
	RootCmd.AddCommand(generateCmd)

	addAvatarFlags(urlCmd, &flagAvatar)
	urlCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "URL of the server (http://{host}:{port} by default)")
	urlCmd.Flags().BoolVar(&flagCanonical, "canonical", false, "resolve the defaults")
	RootCmd.AddCommand(urlCmd)
}
