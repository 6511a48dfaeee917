package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cozy/exavatar/pkg/assets"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var flagConcurrency int
var flagSkipDecode bool

var assetsCmdGroup = &cobra.Command{
	Use:   "assets <command>",
	Short: "Show and check the image assets",
	Long:  `exavatar assets can be used to check a tree of image assets before publishing it`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Usage()
	},
}

var checkAssetsCmd = &cobra.Command{
	Use:   "check <directory>",
	Short: "Check the paths and the images of a directory",
	Long: `Check that each file of the directory is at a path {set}/{size}/{id}.{format}
with a known set, size, id and format, and that it is an image with this
format and dimensions.`,
	Example: "$ exavatar assets check ./avatars",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return cmd.Usage()
		}
		dir := args[0]
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}

		fs := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
		report, err := assets.Check(cmd.Context(), fs, "/", assets.Options{
			Concurrency: flagConcurrency,
			SkipDecode:  flagSkipDecode,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range report.Problems {
			fmt.Fprintln(out, p)
		}
		fmt.Fprintln(out, report.Summary())
		if !report.OK() {
			return errors.New("Some assets are invalid")
		}
		return nil
	},
}

func init() {
	flags := checkAssetsCmd.Flags()
	flags.IntVar(&flagConcurrency, "concurrency", assets.DefaultConcurrency, "number of files checked in parallel")
	flags.BoolVar(&flagSkipDecode, "skip-decode", false, "only check the paths")

	assetsCmdGroup.AddCommand(checkAssetsCmd)
	RootCmd.AddCommand(assetsCmdGroup)
}
