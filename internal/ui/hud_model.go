package ui

import (
	"math"
	"strconv"

	"chroma-ca/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type statusProvider interface {
	StatusLines() []string
}

// controlState is the HUD's view of one adjustable parameter.
type controlState struct {
	control core.ParameterControl
	value   string
	has     bool

	intValue   int
	floatValue float64
	// option indexes control.Options for string controls, -1 if the current
	// value is not listed.
	option int
}

// hudSection is one parameter group as shown on the panel.
type hudSection struct {
	name      string
	summary   string
	controls  []int
	collapsed bool
}

// hudRow is a section header when control is negative, otherwise a control
// row inside section.
type hudRow struct {
	section int
	control int
}

// hudModel holds HUD state that does not depend on ebiten: parameter values,
// grouping into sections and stepping rules.
type hudModel struct {
	sim      core.Sim
	controls []controlState
	index    map[string]int
	sections []hudSection
	status   []string

	// collapsed is keyed by section name so it survives refreshes.
	collapsed map[string]bool

	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	stringSetter core.StringParameterSetter
}

func newHUDModel(sim core.Sim) *hudModel {
	m := &hudModel{sim: sim, index: map[string]int{}, collapsed: map[string]bool{}}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			m.index[ctrl.Key] = len(m.controls)
			m.controls = append(m.controls, controlState{control: ctrl, value: "--", option: -1})
		}
	}
	m.intSetter, _ = sim.(core.IntParameterSetter)
	m.floatSetter, _ = sim.(core.FloatParameterSetter)
	m.stringSetter, _ = sim.(core.StringParameterSetter)
	m.buildSections(core.ParameterSnapshot{})
	return m
}

// refresh pulls status lines and parameter values from the simulation.
func (m *hudModel) refresh() {
	m.status = nil
	if sp, ok := m.sim.(statusProvider); ok {
		m.status = sp.StatusLines()
	}
	var snap core.ParameterSnapshot
	if provider, ok := m.sim.(parameterProvider); ok {
		snap = provider.Parameters()
	}
	for i := range m.controls {
		m.controls[i].load(snap)
	}
	m.buildSections(snap)
}

func (s *controlState) load(snap core.ParameterSnapshot) {
	s.has = false
	s.value = "--"
	s.option = -1
	param, ok := snap.Lookup(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control.Step, parsed)
	case core.ParamTypeString:
		s.value = param.Value
		for i, opt := range s.control.Options {
			if opt == param.Value {
				s.option = i
				break
			}
		}
	default:
		return
	}
	s.has = true
}

// buildSections orders controls by the snapshot group that lists them.
// Controls missing from every group land in a trailing "Other" section.
func (m *hudModel) buildSections(snap core.ParameterSnapshot) {
	placed := make([]bool, len(m.controls))
	m.sections = m.sections[:0]
	for _, group := range snap.Groups {
		sec := hudSection{name: group.Name, summary: group.Summary, collapsed: m.collapsed[group.Name]}
		for _, param := range group.Params {
			if i, ok := m.index[param.Key]; ok && !placed[i] {
				sec.controls = append(sec.controls, i)
				placed[i] = true
			}
		}
		if len(sec.controls) > 0 {
			m.sections = append(m.sections, sec)
		}
	}
	other := hudSection{name: "Other", collapsed: m.collapsed["Other"]}
	for i := range m.controls {
		if !placed[i] {
			other.controls = append(other.controls, i)
		}
	}
	if len(other.controls) > 0 {
		m.sections = append(m.sections, other)
	}
}

// rows flattens the sections into panel rows, skipping collapsed bodies.
func (m *hudModel) rows() []hudRow {
	var rows []hudRow
	for si, sec := range m.sections {
		rows = append(rows, hudRow{section: si, control: -1})
		if sec.collapsed {
			continue
		}
		for _, ci := range sec.controls {
			rows = append(rows, hudRow{section: si, control: ci})
		}
	}
	return rows
}

func (m *hudModel) toggleSection(i int) {
	if i < 0 || i >= len(m.sections) {
		return
	}
	sec := &m.sections[i]
	sec.collapsed = !sec.collapsed
	m.collapsed[sec.name] = sec.collapsed
}

// stepValue is the candidate result of stepping a control.
type stepValue struct {
	i int
	f float64
	s string
}

// next computes the value one step in direction dir, clamped to the control
// bounds. ok is false when the step would not change anything.
func (s *controlState) next(dir int) (stepValue, bool) {
	if !s.has || dir == 0 {
		return stepValue{}, false
	}
	ctrl := s.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		target := s.intValue + dir*step
		if ctrl.HasMin {
			target = max(target, int(math.Round(ctrl.Min)))
		}
		if ctrl.HasMax {
			target = min(target, int(math.Round(ctrl.Max)))
		}
		return stepValue{i: target}, target != s.intValue
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target := s.floatValue + float64(dir)*step
		if ctrl.HasMin {
			target = math.Max(target, ctrl.Min)
		}
		if ctrl.HasMax {
			target = math.Min(target, ctrl.Max)
		}
		return stepValue{f: target}, math.Abs(target-s.floatValue) >= 1e-9
	case core.ParamTypeString:
		n := len(ctrl.Options)
		if n == 0 {
			return stepValue{}, false
		}
		idx := s.option
		switch {
		case idx < 0 && dir > 0:
			idx = 0
		case idx < 0:
			idx = n - 1
		default:
			idx = ((idx+dir)%n + n) % n
		}
		return stepValue{s: ctrl.Options[idx]}, ctrl.Options[idx] != s.value
	default:
		return stepValue{}, false
	}
}

func (m *hudModel) setterFor(t core.ParamType) bool {
	switch t {
	case core.ParamTypeInt:
		return m.intSetter != nil
	case core.ParamTypeFloat:
		return m.floatSetter != nil
	case core.ParamTypeString:
		return m.stringSetter != nil
	default:
		return false
	}
}

func (m *hudModel) canAdjust(i, dir int) bool {
	if i < 0 || i >= len(m.controls) {
		return false
	}
	s := &m.controls[i]
	if !m.setterFor(s.control.Type) {
		return false
	}
	_, ok := s.next(dir)
	return ok
}

// adjust steps control i and pushes the new value to the simulation. The
// cached value only changes when the simulation accepts it.
func (m *hudModel) adjust(i, dir int) bool {
	if !m.canAdjust(i, dir) {
		return false
	}
	s := &m.controls[i]
	target, _ := s.next(dir)
	key := s.control.Key
	switch s.control.Type {
	case core.ParamTypeInt:
		if !m.intSetter.SetIntParameter(key, target.i) {
			return false
		}
		s.intValue = target.i
		s.floatValue = float64(target.i)
		s.value = strconv.Itoa(target.i)
	case core.ParamTypeFloat:
		if !m.floatSetter.SetFloatParameter(key, target.f) {
			return false
		}
		s.floatValue = target.f
		s.value = formatFloat(s.control.Step, target.f)
	case core.ParamTypeString:
		if !m.stringSetter.SetStringParameter(key, target.s) {
			return false
		}
		s.value = target.s
		for oi, opt := range s.control.Options {
			if opt == target.s {
				s.option = oi
			}
		}
	}
	return true
}

func formatFloat(step, value float64) string {
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
