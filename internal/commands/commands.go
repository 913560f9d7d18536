package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"
)

const prefix = "cmd "

// Define declares a command's flags on a fresh FlagSet and returns the action to run
// once they are parsed. It is called on every execution so no flag state carries over.
type Define func(fs *flag.FlagSet) (run func() error)

// Command is a registered subcommand.
type Command struct {
	Name   string
	Usage  string
	define Define
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
	out  func(line string)
}

// NewRegistry returns a registry that already knows "help". out receives the lines
// commands print; nil discards them.
func NewRegistry(out func(line string)) *Registry {
	if out == nil {
		out = func(string) {}
	}
	r := &Registry{cmds: make(map[string]*Command), out: out}
	r.Register("help", "list commands", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, l := range r.Help() {
				r.Println(l)
			}
			return nil
		}
	})
	return r
}

// Println sends one line of command output.
func (r *Registry) Println(line string) {
	r.out(line)
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "fog").
func (r *Registry) Register(name, usage string, define Define) {
	r.cmds[name] = &Command{Name: name, Usage: usage, define: define}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns one line per command with its flags.
func (r *Registry) Help() []string {
	var out []string
	for _, n := range r.Names() {
		c := r.cmds[n]
		fs := flag.NewFlagSet(n, flag.ContinueOnError)
		c.define(fs)
		var flags []string
		fs.VisitAll(func(f *flag.Flag) { flags = append(flags, "-"+f.Name) })
		line := prefix + n
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, " ") + "]"
		}
		if c.Usage != "" {
			line += "  " + c.Usage
		}
		out = append(out, line)
	}
	return out
}

// Parse interprets line as a console line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as its flags.
// Returns an error for unknown command, parse error, or from the action.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var usage bytes.Buffer
	fs.SetOutput(&usage)
	run := cmd.define(fs)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			for _, l := range strings.Split(strings.TrimSpace(usage.String()), "\n") {
				r.Println(l)
			}
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected argument %q", name, fs.Arg(0))
	}
	return run()
}

// Visited returns the names of the flags set on the command line.
func Visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
