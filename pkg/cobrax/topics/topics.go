// Package topics adds named help topics to a cobra command tree. Topics are
// text or markdown files read from an fs.FS, usually an embedded directory,
// and shown by `<root> help <topic>`.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/spf13/cobra"
)

// Topic is one help document.
type Topic struct {
	Name    string
	Format  string // file extension, e.g. ".md"
	Content string
}

// Options configures a Manager.
type Options struct {
	// Extensions lists the file extensions treated as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topics on output. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics of one command tree.
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Load reads every file with a topic extension from fsys. The topic name is
// the file name without its extension; nested directories are flattened.
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	logger := logging.GetLogger("topics")

	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	logger.Trace().Int("count", len(m.topics)).Msg("Help topics loaded")
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, valid := range m.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// Get returns a topic by name. Leading dashes are ignored so flag names
// work as topic names.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	topic, ok := m.topics[name]
	return topic, ok
}

// Names returns all topic names in alphabetical order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes a topic through the configured renderer.
func (m *Manager) Render(w io.Writer, topic *Topic) error {
	_, err := fmt.Fprint(w, m.renderer.Render(topic.Content, topic.Format))
	return err
}

// Install replaces the help command of root with one that also knows the
// topics of m. `help topics` lists them.
func Install(root *cobra.Command, m *Manager) {
	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				return root.Help()
			}

			if args[0] == "topics" {
				return listTopics(w, root.Name(), m.Names())
			}

			if topic, ok := m.Get(args[0]); ok {
				return m.Render(w, topic)
			}

			target, _, err := root.Find(args)
			if target == nil || err != nil {
				_, werr := fmt.Fprintf(w, "Unknown help topic %q\n", args)
				return werr
			}
			target.InitDefaultHelpFlag()
			target.InitDefaultVersionFlag()
			return target.Help()
		},
	}

	root.SetHelpCommand(helpCmd)
}

func listTopics(w io.Writer, rootName string, names []string) error {
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", rootName)

	_, err := io.WriteString(w, b.String())
	return err
}
