package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/emirpasic/gods/maps/treemap"
)

// Label is one write-back instruction: set the host's severity label
// of an entity to the given code.
type Label struct {
	Entity   string
	Severity Severity
}

// Plan reduces findings to one label per entity (worst severity wins)
// and returns the labels sorted by entity name. Applying them is the
// host editor's responsibility; re-applying an unchanged plan is
// idempotent.
func Plan(findings []Finding) []Label {
	worst := make(map[string]Severity)
	for _, f := range findings {
		if s, ok := worst[f.Entity]; ok {
			worst[f.Entity] = Worse(s, f.Severity)
		} else {
			worst[f.Entity] = f.Severity
		}
	}
	labels := make([]Label, 0, len(worst))
	for e, s := range worst {
		labels = append(labels, Label{Entity: e, Severity: s})
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Entity < labels[j].Entity
	})
	return labels
}

// Render writes the findings as text, one table per check category.
// Passing entries are omitted; a check without defects does not appear
// at all, keeping the report proportional to the problems found.
func Render(findings []Finding) string {
	byCheck := treemap.NewWithStringComparator()
	count := 0
	for _, f := range findings {
		if f.Severity == Pass {
			continue
		}
		var rows []Finding
		if v, ok := byCheck.Get(f.Check); ok {
			rows = v.([]Finding)
		}
		byCheck.Put(f.Check, append(rows, f))
		count++
	}
	if count == 0 {
		return "no findings\n"
	}
	tracer().Infof("rendering %d findings in %d categories", count, byCheck.Size())
	var sb strings.Builder
	for _, key := range byCheck.Keys() {
		check := key.(string)
		v, _ := byCheck.Get(check)
		rows := v.([]Finding)
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Entity != rows[j].Entity {
				return rows[i].Entity < rows[j].Entity
			}
			if rows[i].Masters != rows[j].Masters {
				return rows[i].Masters < rows[j].Masters
			}
			return rows[i].Message < rows[j].Message
		})
		fmt.Fprintf(&sb, "== %s (%d) ==\n", check, len(rows))
		w := tabwriter.NewWriter(&sb, 2, 0, 2, ' ', 0)
		fmt.Fprintln(w, "entity\tmasters\tseverity\tdefect\tmeasured\tlimit")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Entity, dash(r.Masters), r.Severity, r.Message,
				dash(r.Value), dash(r.Limit))
		}
		w.Flush()
		sb.WriteString("\n")
	}
	return sb.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
