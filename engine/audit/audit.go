package audit

import (
	"runtime"
	"sort"
	"sync"

	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/core/glyphset"
	"github.com/npillmayer/glyphaudit/engine/compat"
	"github.com/npillmayer/glyphaudit/engine/density"
	"github.com/npillmayer/glyphaudit/engine/kerncheck"
	"github.com/npillmayer/glyphaudit/engine/overshoot"
	"github.com/npillmayer/glyphaudit/engine/proportion"
	"github.com/npillmayer/glyphaudit/engine/report"
	"github.com/npillmayer/glyphaudit/engine/spacing"
	"github.com/npillmayer/glyphaudit/engine/stems"
)

// checkNames are the check identifiers a request may ask for.
var checkNames = []string{
	compat.CheckName,
	kerncheck.CheckName,
	spacing.CheckName,
	stems.CheckName,
	density.CheckName,
	proportion.CheckName,
	proportion.RelatedFormsCheckName,
	proportion.PunctuationCheckName,
	overshoot.CheckName,
}

// Request selects the scope of an audit.
type Request struct {
	Masters []string // master IDs; nil selects every master
	Glyphs  []string // glyph names or 'prefix*' patterns; nil selects all
	Checks  []string // check names; nil runs every check
	Workers int      // parallel workers; values < 1 pick a default
}

// Result carries the merged findings of all checks and the write-back
// plan derived from them.
type Result struct {
	Findings []report.Finding
	Labels   []report.Label
	Density  []density.Summary // per-master color statistics, full audits only
}

// Run validates the request against the snapshot and executes the
// selected checks. Validation errors (unknown master, unknown glyph,
// unknown check) abort before any analysis. A panic during one
// glyph's analysis is confined to that glyph and reported as a
// partial finding. Findings are returned in a stable order, so the
// same request over the same snapshot produces the same plan.
func Run(font *fontmodel.Font, req Request, regs *checkparam.Registers) (*Result, error) {
	if font == nil {
		return nil, core.Error(core.EINVALID, "no font snapshot to audit")
	}
	if regs == nil {
		regs = checkparam.NewRegisters()
	}
	masterIDs, err := resolveMasters(font, req.Masters)
	if err != nil {
		return nil, err
	}
	names, err := glyphset.New(font).Select(req.Glyphs)
	if err != nil {
		return nil, err
	}
	selected, err := resolveChecks(req.Checks)
	if err != nil {
		return nil, err
	}
	workers := req.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	// A glyph subset narrows the per-glyph checks. Kerning and
	// spacing always operate on the whole font; the density audit
	// only runs on the full set, a partial view would skew its
	// statistics.
	var subset []string
	fullSet := len(req.Glyphs) == 0
	if !fullSet {
		subset = names
	}
	tracer().Infof("auditing %d glyphs over %d masters, %d workers",
		len(names), len(masterIDs), workers)

	tasks := buildTasks(font, masterIDs, names, subset, selected, regs)
	findings := runTasks(tasks, workers)

	result := &Result{}
	if selected[density.CheckName] && fullSet {
		auditFindings, summaries := density.Audit(font, masterIDs, regs)
		findings = append(findings, auditFindings...)
		result.Density = summaries
	}
	sortFindings(findings)
	result.Findings = findings
	result.Labels = report.Plan(findings)
	return result, nil
}

func resolveMasters(font *fontmodel.Font, ids []string) ([]string, error) {
	if len(font.Masters) == 0 {
		return nil, core.Error(core.EINVALID, "snapshot has no masters")
	}
	if len(ids) == 0 {
		all := make([]string, len(font.Masters))
		for i, m := range font.Masters {
			all[i] = m.ID
		}
		return all, nil
	}
	for _, id := range ids {
		if font.Master(id) == nil {
			return nil, core.Error(core.EMISSING, "unknown master %q", id)
		}
	}
	return ids, nil
}

func resolveChecks(requested []string) (map[string]bool, error) {
	selected := make(map[string]bool)
	if len(requested) == 0 {
		for _, n := range checkNames {
			selected[n] = true
		}
		return selected, nil
	}
	known := make(map[string]bool, len(checkNames))
	for _, n := range checkNames {
		known[n] = true
	}
	for _, n := range requested {
		if !known[n] {
			return nil, core.Error(core.EINVALID, "unknown check %q", n)
		}
		selected[n] = true
	}
	return selected, nil
}

// task is one unit of analysis, isolated against panics. Per-glyph
// tasks carry the glyph name; whole-font tasks report as "font".
type task struct {
	check  string
	entity string
	run    func() []report.Finding
}

func buildTasks(font *fontmodel.Font, masterIDs, names, subset []string,
	selected map[string]bool, regs *checkparam.Registers) []task {
	//
	var tasks []task
	if selected[compat.CheckName] {
		for _, name := range names {
			g := font.Glyph(name)
			if g == nil {
				continue
			}
			tasks = append(tasks, task{compat.CheckName, name, func() []report.Finding {
				return compat.CheckGlyph(font, g, masterIDs, regs)
			}})
		}
	}
	if selected[kerncheck.CheckName] {
		tasks = append(tasks, task{kerncheck.CheckName, "font", func() []report.Finding {
			return kerncheck.Check(font, masterIDs, regs)
		}})
	}
	if selected[spacing.CheckName] {
		tasks = append(tasks, task{spacing.CheckName, "font", func() []report.Finding {
			return spacing.Check(font, masterIDs, regs)
		}})
	}
	if selected[stems.CheckName] {
		tasks = append(tasks,
			task{stems.CheckName, "font", func() []report.Finding {
				return stems.Check(font, masterIDs, subset, regs)
			}},
			task{stems.CheckName, "font", func() []report.Finding {
				return stems.CheckDiagonals(font, masterIDs, regs)
			}},
			task{stems.CheckName, "font", func() []report.Finding {
				return stems.CheckJunctions(font, masterIDs)
			}})
	}
	if selected[density.CheckName] && subset != nil {
		// on the full glyph set the density audit (scheduled by Run)
		// already evaluates every classifiable glyph
		tasks = append(tasks, task{density.CheckName, "font", func() []report.Finding {
			return density.Check(font, masterIDs, subset, regs)
		}})
	}
	if selected[proportion.CheckName] {
		tasks = append(tasks, task{proportion.CheckName, "font", func() []report.Finding {
			return proportion.Check(font, masterIDs, subset)
		}})
	}
	if selected[proportion.RelatedFormsCheckName] {
		tasks = append(tasks, task{proportion.RelatedFormsCheckName, "font", func() []report.Finding {
			return proportion.CheckRelatedForms(font, masterIDs)
		}})
	}
	if selected[proportion.PunctuationCheckName] {
		tasks = append(tasks, task{proportion.PunctuationCheckName, "font", func() []report.Finding {
			return proportion.CheckPunctuation(font, masterIDs)
		}})
	}
	if selected[overshoot.CheckName] {
		tasks = append(tasks, task{overshoot.CheckName, "font", func() []report.Finding {
			return overshoot.Check(font, masterIDs, subset)
		}})
	}
	return tasks
}

func runTasks(tasks []task, workers int) []report.Finding {
	if workers > len(tasks) {
		workers = len(tasks)
	}
	in := make(chan task)
	var mx sync.Mutex
	var findings []report.Finding
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range in {
				fs := runIsolated(t)
				mx.Lock()
				findings = append(findings, fs...)
				mx.Unlock()
			}
		}()
	}
	for _, t := range tasks {
		in <- t
	}
	close(in)
	wg.Wait()
	return findings
}

// runIsolated keeps a panic from one entity's analysis from killing
// the audit. Corrupt outline data is a data defect, not a crash.
func runIsolated(t task) (fs []report.Finding) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("%s check aborted on %q: %v", t.check, t.entity, r)
			fs = []report.Finding{report.F(report.Partial, t.check, t.entity, "",
				"analysis aborted: %v", r)}
		}
	}()
	return t.run()
}

func sortFindings(findings []report.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Check != b.Check {
			return a.Check < b.Check
		}
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		if a.Masters != b.Masters {
			return a.Masters < b.Masters
		}
		return a.Message < b.Message
	})
}
