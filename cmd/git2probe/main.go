// git2probe is a diagnostic tool for the git2 binding: it loads the
// native engine, reports its version and feature set, and checks that
// a repository can be opened through it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nullstyle/git2"
	"github.com/nullstyle/git2/internal/config"
	"github.com/nullstyle/git2/internal/ffi"
	"github.com/nullstyle/git2/internal/layouts"
)

var (
	flagConfig   string
	flagLibrary  string
	flagLogLevel string
)

func main() {
	root := &cobra.Command{
		Use:           "git2probe",
		Short:         "Probe the dynamically loaded git engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(),
		"configuration file")
	root.PersistentFlags().StringVar(&flagLibrary, "library", "",
		"explicit native library path (overrides config)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"log level: debug, info, warn, error")

	root.AddCommand(versionCmd(), checkCmd(), layoutsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "git2probe:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command-line
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLibrary != "" {
		cfg.Library.Path = flagLibrary
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Report the loaded engine's version and features",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := git2.Open(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			v, err := eng.Version()
			if err != nil {
				return err
			}
			f, err := eng.Features()
			if err != nil {
				return err
			}

			fmt.Printf("library:  %s\n", eng.LibraryPath())
			fmt.Printf("version:  %s\n", v)
			fmt.Printf("threads:  %v\n", f.Has(git2.FeatureThreads))
			fmt.Printf("https:    %v\n", f.Has(git2.FeatureHTTPS))
			fmt.Printf("ssh:      %v\n", f.Has(git2.FeatureSSH))
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Open a repository through the engine and report its state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) == 1 {
				start = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := git2.Open(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			gitdir, err := eng.DiscoverRepository(start)
			if err != nil {
				return fmt.Errorf("discover from %s: %w", start, err)
			}
			repo, err := eng.OpenRepository(gitdir)
			if err != nil {
				return err
			}
			defer repo.Free()

			bare, err := repo.IsBare()
			if err != nil {
				return err
			}
			fmt.Printf("gitdir:   %s\n", gitdir)
			fmt.Printf("bare:     %v\n", bare)

			head, err := repo.Head()
			if err != nil {
				if git2.IsNotFound(err) {
					fmt.Println("head:     (unborn)")
					return nil
				}
				return err
			}
			defer head.Free()

			name, err := head.Name()
			if err != nil {
				return err
			}
			target, err := head.Target()
			if err != nil {
				return err
			}
			fmt.Printf("head:     %s\n", name)
			if target != nil {
				fmt.Printf("commit:   %s\n", target)
			}
			return nil
		},
	}
}

func layoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "Print the resolved struct layouts for this platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			set := layouts.Default(ffi.NativeWidth)
			if path := cfg.Library.LayoutProfile; path != "" {
				profile, err := layouts.LoadProfile(path)
				if err != nil {
					return err
				}
				if set, err = set.Apply(profile); err != nil {
					return err
				}
			}

			fmt.Printf("pointer width: %d bytes\n", ffi.NativeWidth)
			for _, name := range set.Names() {
				r := set.Get(name)
				fmt.Printf("\n%s (%d bytes)\n", name, r.Size())
				for _, f := range r.Fields() {
					fmt.Printf("  %-28s %-8s @ %d\n", f.Name, f.Kind, f.Offset)
				}
			}
			return nil
		},
	}
}
