package app

import (
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/ui"
)

// Layer is a slice of application UI and input handling.
type Layer interface {
	OnAttach(s *State)
	OnDetach(s *State)
	// OnUI builds this layer's part of the frame.
	OnUI(s *State, ctx *ui.Context)
	OnEvent(s *State, ev core.Event) bool // return true if handled; propagation stops
}

type LayerStack struct{ list []Layer }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }
func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if stop := f(ls.list[i]); stop {
			break
		}
	}
}
