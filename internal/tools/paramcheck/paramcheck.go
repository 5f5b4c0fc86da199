// Package paramcheck validates parameters documents from the command line.
package paramcheck

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/billie-coop/rsvp/internal/params"
)

// Config holds the command line of paramcheck.
type Config struct {
	Path  string
	List  bool
	Write bool
	// Sets are name=value assignments applied before writing.
	Sets []string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.BoolVar(&cfg.List, "list", false, "print every parameter with its value")
	fs.BoolVar(&cfg.Write, "w", false, "rewrite the file in canonical form")
	fs.Func("set", "assign name=value before writing (repeatable)", func(s string) error {
		if !strings.Contains(s, "=") {
			return fmt.Errorf("want name=value, got %q", s)
		}
		cfg.Sets = append(cfg.Sets, s)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, errors.New("exactly one parameters file is required")
	}
	cfg.Path = fs.Arg(0)
	if len(cfg.Sets) > 0 && !cfg.Write {
		return Config{}, errors.New("-set requires -w")
	}
	return cfg, nil
}

// Run loads the file named by cfg and reports on it to out.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	store, err := params.LoadFile(cfg.Path)
	if err != nil {
		return err
	}

	for _, assignment := range cfg.Sets {
		name, raw, _ := strings.Cut(assignment, "=")
		p, err := store.Get(name)
		if err != nil {
			return err
		}
		v, err := p.Type.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := store.Set(name, v); err != nil {
			return err
		}
	}

	if cfg.List {
		if err := list(store, out); err != nil {
			return err
		}
	}

	if cfg.Write {
		if err := store.Save(cfg.Path); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s: wrote %d parameters\n", cfg.Path, store.Len())
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %d parameters ok\n", cfg.Path, store.Len())
	return err
}

func list(store *params.Store, out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tSECTION\tVALUE\t")
	for _, p := range store.All() {
		value := p.FormattedValue()
		if !p.IsDefault() {
			value += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", p.Name, p.Type, p.Section, value)
	}
	return w.Flush()
}
