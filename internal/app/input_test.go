package app

import (
	"reflect"
	"testing"
)

func TestInputTranslate(t *testing.T) {
	var in Input
	frames := []struct {
		name  string
		state InputState
		want  []Msg
	}{
		{"idle at origin", InputState{}, nil},
		{"move", InputState{MouseX: 10, MouseY: 20}, []Msg{PointerMoved{10, 20}}},
		{"press", InputState{MouseX: 10, MouseY: 20, Pressed: true, DeltaX: 3}, []Msg{DragStarted{}}},
		{"drag", InputState{MouseX: 14, MouseY: 20, DeltaX: 4}, []Msg{PointerMoved{14, 20}, DragMoved{DX: 4}}},
		{"release", InputState{MouseX: 14, MouseY: 20, Released: true}, []Msg{DragEnded{}}},
		{"stray release", InputState{MouseX: 14, MouseY: 20, Released: true}, nil},
		{"wheel and resize", InputState{MouseX: 14, MouseY: 20, Wheel: -1, Resized: true, Width: 300, Height: 200},
			[]Msg{Resized{300, 200}, Zoomed{Notches: -1}}},
		{"touch", InputState{MouseX: 14, MouseY: 20, Touches: 1}, []Msg{TouchStarted{}}},
		{"touch held", InputState{MouseX: 14, MouseY: 20, Touches: 1}, nil},
		{"touch again", InputState{MouseX: 14, MouseY: 20, Touches: 0}, nil},
		{"second touch", InputState{MouseX: 14, MouseY: 20, Touches: 2}, []Msg{TouchStarted{}}},
	}
	for _, f := range frames {
		got := in.Translate(nil, f.state)
		if !reflect.DeepEqual(got, f.want) {
			t.Errorf("%s: got %#v, want %#v", f.name, got, f.want)
		}
	}
}
