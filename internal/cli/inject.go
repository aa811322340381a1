package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MaxGeldner/gulp-include-source/pkg/config"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/filesystem"
	"github.com/MaxGeldner/gulp-include-source/pkg/inject"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/MaxGeldner/gulp-include-source/pkg/output"
	"github.com/MaxGeldner/gulp-include-source/pkg/watch"
	"github.com/spf13/cobra"
)

func newInjectCmd(global *globalFlags) *cobra.Command {
	var (
		watchMode  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "inject <glob>...",
		Short:   MsgInjectShort,
		Long:    MsgInjectLong,
		Example: MsgInjectExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.inject")

			cfg, err := config.Load(config.LoadOptions{
				WorkDir:    ".",
				ConfigFile: global.config,
				Overrides:  injectOverrides(cmd),
			})
			if err != nil {
				return err
			}
			applyLogConfig(global, cfg)

			var renderer output.Reporter = output.NewRenderer(cmd.OutOrStdout(), global.noColor)
			if jsonOutput {
				renderer = output.NewJSONRenderer(cmd.OutOrStdout())
			}
			opts := inject.Options{Config: cfg, Inputs: args, Lock: true}

			if !watchMode {
				return runBatch(opts, renderer)
			}

			if cfg.Output.InPlace {
				return errors.New(errors.ErrInvalidInput, MsgErrWatchInPlace)
			}

			logger.Info().Strs("inputs", args).Msg("Starting watch mode")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchBatches(ctx, opts, renderer)
		},
	}

	cmd.Flags().String("cwd", "", MsgFlagCwd)
	cmd.Flags().String("script-ext", "", MsgFlagScriptExt)
	cmd.Flags().String("style-ext", "", MsgFlagStyleExt)
	cmd.Flags().Bool("region", false, MsgFlagRegion)
	cmd.Flags().String("line-endings", "", MsgFlagLineEndings)
	cmd.Flags().StringP("out-dir", "o", "", MsgFlagOutDir)
	cmd.Flags().Bool("in-place", false, MsgFlagInPlace)
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, MsgFlagWatch)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, MsgFlagJSON)

	return cmd
}

// injectOverrides maps the flags that were set explicitly to config keys.
func injectOverrides(cmd *cobra.Command) map[string]interface{} {
	keys := map[string]string{
		"cwd":          "cwd",
		"script-ext":   "script_ext",
		"style-ext":    "style_ext",
		"region":       "region.enabled",
		"line-endings": "line_endings",
		"out-dir":      "output.dir",
		"in-place":     "output.in_place",
	}

	overrides := make(map[string]interface{})
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if f.Value.Type() == "bool" {
			overrides[key] = f.Value.String() == "true"
		} else {
			overrides[key] = f.Value.String()
		}
	}
	return overrides
}

// runBatch runs one batch and reports it. Per-file failures turn into a
// single error after every file was processed.
func runBatch(opts inject.Options, renderer output.Reporter) error {
	result, err := inject.Run(opts)
	if err != nil {
		return err
	}
	if err := renderer.RenderSummary(result.Summary()); err != nil {
		return err
	}
	if result.Failed() {
		return errors.Newf(errors.ErrBatchFailed, MsgErrBatchFailed, len(result.Errors))
	}
	return nil
}

// watchBatches runs a batch, then another after every change, until ctx ends.
func watchBatches(ctx context.Context, opts inject.Options, renderer output.Reporter) error {
	logger := logging.GetLogger("cli.watch")

	if err := runBatch(opts, renderer); err != nil {
		_ = renderer.RenderError(err)
	}

	paths := make([]string, 0, len(opts.Inputs)+1)
	for _, pattern := range opts.Inputs {
		paths = append(paths, filesystem.StaticPrefix(pattern))
	}
	if opts.Config.Cwd != "" {
		paths = append(paths, opts.Config.Cwd)
	}

	w, err := watch.New(paths, watch.Options{Ignore: []string{opts.Config.Output.Dir}})
	if err != nil {
		return err
	}
	defer w.Close()

	_ = renderer.RenderMessage("Muted", fmt.Sprintf(MsgWatching, len(w.Dirs())))

	err = w.Run(ctx, func(changed []string) {
		logger.Debug().Strs("changed", changed).Msg("Re-running batch")
		if err := runBatch(opts, renderer); err != nil {
			_ = renderer.RenderError(err)
		}
	})

	_ = renderer.RenderMessage("Muted", MsgWatchStopped)
	return err
}
