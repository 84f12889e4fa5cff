package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/absolutelightning/go-ordered-trie/internal/config"
	"github.com/absolutelightning/go-ordered-trie/prefixmap"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ptrie command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ptrie",
		Short:         "Query a prefix tree built from a key file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file")
	flags.String("keys", "", "key file, one key per line, optional tab separated value")
	flags.String("mode", config.ModeBytes, "key symbols: bytes, runes or segments")
	flags.String("sep", "/", "segment separator")
	flags.Int("cache-size", 1024, "resolve cache size")
	flags.String("log-level", "info", "log level")

	root.AddCommand(
		queryCmd("get", "Print the value stored under KEY", runGet),
		queryCmd("prefixes", "Print the values of every stored prefix of KEY", runPrefixes),
		queryCmd("longest", "Print the value of the longest stored prefix of KEY", runLongest),
		queryCmd("postfixes", "Print the values stored under PREFIX", runPostfixes),
		listCmd(),
		dumpCmd(),
		statsCmd(),
		resolveCmd(),
	)
	return root
}

// Execute runs the root command and exits on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type env struct {
	cfg *config.Config
	log zerolog.Logger
	out io.Writer
}

func setup(cmd *cobra.Command) (*env, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, out: cmd.OutOrStdout()}, nil
}

func (e *env) load() (store, error) {
	s := newStore(e.cfg, e.log)
	if err := loadEntries(e.cfg.Keys.File, s.Insert); err != nil {
		return nil, err
	}
	e.log.Info().Str("file", e.cfg.Keys.File).Str("mode", e.cfg.Keys.Mode).Int("keys", s.Len()).Msg("loaded keys")
	return s, nil
}

type queryFn func(e *env, s store, arg string) error

func queryCmd(use, short string, run queryFn) *cobra.Command {
	return &cobra.Command{
		Use:   use + " KEY",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			s, err := e.load()
			if err != nil {
				return err
			}
			return run(e, s, args[0])
		},
	}
}

func runGet(e *env, s store, key string) error {
	v, ok := s.Get(key)
	if !ok {
		return fmt.Errorf("%q is not stored", key)
	}
	fmt.Fprintln(e.out, v)
	return nil
}

func runPrefixes(e *env, s store, key string) error {
	for _, v := range s.Prefixes(key) {
		fmt.Fprintln(e.out, v)
	}
	return nil
}

func runLongest(e *env, s store, key string) error {
	v, ok := s.Longest(key)
	if !ok {
		return fmt.Errorf("no stored prefix of %q", key)
	}
	fmt.Fprintln(e.out, v)
	return nil
}

func runPostfixes(e *env, s store, prefix string) error {
	for _, v := range s.Postfixes(prefix) {
		fmt.Fprintln(e.out, v)
	}
	return nil
}

func listCmd() *cobra.Command {
	var remove []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every stored key and value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			s, err := e.load()
			if err != nil {
				return err
			}
			for _, prefix := range remove {
				s.Remove(prefix)
			}
			s.Each(func(k, v string) {
				fmt.Fprintf(e.out, "%s\t%s\n", k, v)
			})
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&remove, "without", nil, "drop keys under these prefixes first")
	return cmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the tree structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			s, err := e.load()
			if err != nil {
				return err
			}
			s.Dump(e.out)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the number of stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			s, err := e.load()
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "keys\t%d\n", s.Len())
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve IRI...",
		Short: "Split each IRI on its longest registered namespace prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			m, err := prefixmap.New[string](e.cfg.Cache.Size)
			if err != nil {
				return err
			}
			if err := loadEntries(e.cfg.Keys.File, m.Set); err != nil {
				return err
			}
			for _, iri := range args {
				ns, local, ok := m.Split(iri)
				if !ok {
					e.log.Warn().Str("iri", iri).Msg("no namespace matches")
					fmt.Fprintln(e.out, iri)
					continue
				}
				fmt.Fprintf(e.out, "%s:%s\n", ns, local)
			}
			return nil
		},
	}
}
