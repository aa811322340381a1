package main

import (
	"fmt"
	"os"

	"github.com/MaxGeldner/gulp-include-source/internal/cli"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/output/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// The batch summary already listed each failure
		if !errors.IsErrorCode(err, errors.ErrBatchFailed) {
			errorStyle := styles.GetStyle("Error")
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
