package layout

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Sizeable interface {
	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
}

type Bindings interface {
	BindingKeys() []key.Binding
}

type Focusable interface {
	Focus() tea.Cmd
	Blur()
	IsFocused() bool
}

// KeyMapToSlice collects the key.Binding fields of a key map struct.
func KeyMapToSlice(t any) (bindings []key.Binding) {
	v := reflect.ValueOf(t)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanInterface() {
			continue
		}
		if b, ok := f.Interface().(key.Binding); ok {
			bindings = append(bindings, b)
		}
	}
	return bindings
}
