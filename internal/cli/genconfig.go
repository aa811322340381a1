package cli

import (
	"fmt"
	"os"

	"github.com/MaxGeldner/gulp-include-source/pkg/config"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(global *globalFlags) *cobra.Command {
	var (
		format    string
		commented bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			if commented {
				if format != string(config.FormatTOML) {
					return errors.New(errors.ErrInvalidInput, "--commented is only available for toml")
				}
				content = []byte(config.GenerateCommented())
			} else {
				cfg, err := config.Load(config.LoadOptions{WorkDir: ".", ConfigFile: global.config})
				if err != nil {
					return err
				}
				content, err = config.Generate(cfg, config.Format(format))
				if err != nil {
					return err
				}
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}

			path := ".include-source." + format
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, "%s already exists", path).
					WithDetail("path", path)
			}
			if err := os.WriteFile(path, content, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
					WithDetail("path", path)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", path)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), MsgFlagFormat)
	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagCommented)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}
