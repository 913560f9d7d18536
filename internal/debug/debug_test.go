package debug

import (
	"reflect"
	"testing"

	"svg-globe/internal/commands"
)

func TestLines(t *testing.T) {
	d := New()
	d.Globe = func() string { return "hover 6 France" }

	tests := []struct {
		show Overlays
		want []string
	}{
		{Overlays{}, nil},
		{Overlays{FPS: true}, []string{"FPS: 60"}},
		{Overlays{Mem: true}, []string{"Mem: 1.50 MiB"}},
		{Overlays{FPS: true, Mem: true, Globe: true}, []string{"FPS: 60", "Mem: 1.50 MiB", "hover 6 France"}},
	}
	for _, tt := range tests {
		d.Show(tt.show)
		got := d.lines(nil, 60, 3<<19)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%+v: lines = %q, want %q", tt.show, got, tt.want)
		}
	}

	d.Globe = nil
	d.Show(Overlays{Globe: true})
	if got := d.lines(nil, 60, 0); len(got) != 0 {
		t.Errorf("globe line without a source = %q", got)
	}
}

func TestRegisterToggles(t *testing.T) {
	var out []string
	reg := commands.NewRegistry(func(line string) { out = append(out, line) })
	d := New()
	d.Register(reg)

	if err := reg.Execute([]string{"debug", "-fps", "-globe"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := (Overlays{FPS: true, Globe: true}); d.Shown() != want {
		t.Errorf("shown = %+v, want %+v", d.Shown(), want)
	}
	// Flags default to the current state, so a bare flag only adds.
	if err := reg.Execute([]string{"debug", "-mem"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := (Overlays{FPS: true, Mem: true, Globe: true}); d.Shown() != want {
		t.Errorf("shown = %+v, want %+v", d.Shown(), want)
	}
	if err := reg.Execute([]string{"debug", "-fps=false"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if d.Shown().FPS {
		t.Error("-fps=false left the FPS line on")
	}
	if len(out) != 3 || out[2] != "debug: fps=false mem=true globe=true" {
		t.Errorf("output = %q", out)
	}
}
