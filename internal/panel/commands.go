package panel

import (
	"errors"
	"flag"
	"fmt"

	"svg-globe/internal/commands"
)

// Hooks are the console actions that are not parameter edits. Nil hooks are not registered.
type Hooks struct {
	Save   func() error
	Export func(dir string) ([]string, error)
}

// Register adds the panel's console commands to reg.
func (p *Panel) Register(reg *commands.Registry, hooks Hooks) {
	reg.Register("color", "set map colours", func(fs *flag.FlagSet) func() error {
		stroke := fs.String("stroke", "", "outline colour")
		def := fs.String("default", "", "country fill colour")
		hover := fs.String("hover", "", "highlight colour")
		return func() error {
			set := commands.Visited(fs)
			var edits []Edit
			if set["stroke"] {
				edits = append(edits, Edit{"stroke", *stroke})
			}
			if set["default"] {
				edits = append(edits, Edit{"color", *def})
			}
			if set["hover"] {
				edits = append(edits, Edit{"highlight", *hover})
			}
			return p.run(reg, edits)
		}
	})

	reg.Register("fog", "set fog colour and distance", func(fs *flag.FlagSet) func() error {
		color := fs.String("color", "", "fog colour")
		distance := fs.String("distance", "", "fog distance (1 to 4)")
		return func() error {
			set := commands.Visited(fs)
			var edits []Edit
			if set["color"] {
				edits = append(edits, Edit{"fog", *color})
			}
			if set["distance"] {
				edits = append(edits, Edit{"fog distance", *distance})
			}
			return p.run(reg, edits)
		}
	})

	reg.Register("params", "show parameters", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, e := range p.Entries() {
				reg.Println(fmt.Sprintf("%s = %s", e.Name, e.Value))
			}
			return nil
		}
	})

	if hooks.Save != nil {
		reg.Register("save", "write parameters to the config file", func(fs *flag.FlagSet) func() error {
			return func() error {
				if err := hooks.Save(); err != nil {
					return err
				}
				reg.Println("saved")
				return nil
			}
		})
	}

	if hooks.Export != nil {
		reg.Register("export", "write the current textures as PNG", func(fs *flag.FlagSet) func() error {
			dir := fs.String("dir", "exports", "output directory")
			return func() error {
				paths, err := hooks.Export(*dir)
				for _, path := range paths {
					reg.Println("wrote " + path)
				}
				return err
			}
		})
	}
}

var errNoFlags = errors.New("nothing to change; pass at least one flag")

func (p *Panel) run(reg *commands.Registry, edits []Edit) error {
	if len(edits) == 0 {
		return errNoFlags
	}
	changed, err := p.Apply(edits...)
	if err != nil {
		return err
	}
	if !changed {
		reg.Println("unchanged")
		return nil
	}
	for _, e := range edits {
		v, _ := p.Get(e.Name)
		reg.Println(fmt.Sprintf("%s = %s", e.Name, v))
	}
	return nil
}
