package ui

// AreaState is the persisted state of one window.
type AreaState struct {
	Pos       Vec2 `yaml:"pos,flow"`
	Collapsed bool `yaml:"collapsed,omitempty"`
}

// Memory is the part of UI state that survives restarts. Callers that store
// it treat it as an opaque value.
type Memory struct {
	Areas map[string]AreaState `yaml:"areas,omitempty"`
	// Order is the window stacking order, bottom first.
	Order []string `yaml:"order,omitempty"`
}

func (m Memory) Clone() Memory {
	out := Memory{Order: append([]string(nil), m.Order...)}
	if m.Areas != nil {
		out.Areas = make(map[string]AreaState, len(m.Areas))
		for k, v := range m.Areas {
			out.Areas[k] = v
		}
	}
	return out
}

func (m *Memory) area(name string) (AreaState, bool) {
	s, ok := m.Areas[name]
	return s, ok
}

func (m *Memory) setArea(name string, s AreaState) {
	if m.Areas == nil {
		m.Areas = map[string]AreaState{}
	}
	m.Areas[name] = s
	for _, n := range m.Order {
		if n == name {
			return
		}
	}
	m.Order = append(m.Order, name)
}

// raise moves name to the top of the stacking order.
func (m *Memory) raise(name string) {
	for i, n := range m.Order {
		if n == name {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	m.Order = append(m.Order, name)
}

func (m *Memory) layer(name string) int {
	for i, n := range m.Order {
		if n == name {
			return i
		}
	}
	return len(m.Order)
}
