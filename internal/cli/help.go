package cli

import (
	"embed"
	"io/fs"

	"github.com/MaxGeldner/gulp-include-source/pkg/cobrax/topics"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// helpRenderer renders topics with glamour unless colors are disabled.
type helpRenderer struct {
	flags *globalFlags
	rich  topics.Renderer
}

func (r helpRenderer) Render(content, format string) string {
	if r.flags.noColor || termenv.EnvNoColor() || !stdoutIsTerminal() {
		return content
	}
	return r.rich.Render(content, format)
}

// installTopics wires the embedded help topics into the help command.
func installTopics(root *cobra.Command, flags *globalFlags) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}

	m, err := topics.Load(sub, topics.Options{
		Extensions: []string{".md"},
		Renderer:   helpRenderer{flags: flags, rich: topics.NewGlamourRenderer()},
	})
	if err != nil {
		return err
	}

	topics.Install(root, m)
	root.SetHelpCommandGroupID("misc")
	return nil
}
