/*
Package checkparam holds the tunable tolerances of the consistency checks.

Every analysis run reads its thresholds from a set of registers. Registers
start out with the documented defaults and may be overridden, either
globally or within a group (Begingroup/Endgroup), so that a caller can
tighten a tolerance for one audit without disturbing concurrent runs
working on their own register set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package checkparam

// CheckParameter is a typed key for a tolerance register.
type CheckParameter int

const (
	none CheckParameter = iota
	P_STARTNODE_WIDTH_PCT  // start-node distance: fraction of glyph width
	P_STARTNODE_MIN_DIST   // start-node distance: absolute floor (units)
	P_KERN_OUTLIER_PCT     // kerning outlier: fraction of units-per-em
	P_KERN_EPSILON         // kerning equality epsilon (units)
	P_SIDEBEARING_STEM_PCT // sidebearing tolerance: fraction of stem width
	P_SIDEBEARING_MIN      // sidebearing tolerance: absolute floor (units)
	P_RATIO_BAND_LO        // straight/round sidebearing ratio, lower bound
	P_RATIO_BAND_HI        // straight/round sidebearing ratio, upper bound
	P_RATIO_DRIFT          // max cross-master drift of sidebearing ratios
	P_STEM_GROUP_TOL       // grouping tolerance for dominant-stem detection (units)
	P_DENSITY_RESOLUTION   // scanline step for ink density (units)
	P_STOPPER
)

type paramGroup struct {
	params map[CheckParameter]float64
	level  int
	next   *paramGroup
}

// Registers is a set of tolerance registers with grouped overrides.
type Registers struct {
	base       [P_STOPPER]float64
	groups     *paramGroup
	grouplevel int
}

// NewRegisters creates a register set initialized with the default
// tolerances documented in the engine's interface contract.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]float64) {
	p[P_STARTNODE_WIDTH_PCT] = 0.30
	p[P_STARTNODE_MIN_DIST] = 100
	p[P_KERN_OUTLIER_PCT] = 0.40
	p[P_KERN_EPSILON] = 0.5
	p[P_SIDEBEARING_STEM_PCT] = 0.25
	p[P_SIDEBEARING_MIN] = 3
	p[P_RATIO_BAND_LO] = 1.2
	p[P_RATIO_BAND_HI] = 2.0
	p[P_RATIO_DRIFT] = 0.15
	p[P_STEM_GROUP_TOL] = 3
	p[P_DENSITY_RESOLUTION] = 10
}

// Begingroup opens a group. Values pushed inside a group are forgotten
// by the matching Endgroup.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes a group, restoring every register to the value it
// held before the matching Begingroup.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Push sets a register value. Inside a group the value is scoped to
// the group.
func (regs *Registers) Push(key CheckParameter, value float64) {
	if regs.grouplevel > 0 {
		var g *paramGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &paramGroup{
				params: make(map[CheckParameter]float64),
				level:  regs.grouplevel,
				next:   regs.groups,
			}
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the current value of a register.
func (regs *Registers) Get(key CheckParameter) float64 {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of check parameters")
	}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			if v, ok := g.params[key]; ok {
				return v
			}
		}
	}
	return regs.base[key]
}
