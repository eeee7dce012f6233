// # internal/sedgen/script.go
package sedgen

import (
	"fmt"
	"sort"
	"strings"
)

// Substitution maps a bare enum member name to its fully qualified
// replacement, e.g. ("MultiSelection",
// "QtWidgets.QAbstractItemView.SelectionMode.MultiSelection").
type Substitution struct {
	Member   string
	QualName string
}

// Rename rewrites a top-level binding package in import statements,
// e.g. PySide2 -> PySide6.
type Rename struct {
	Old string
	New string
}

func (r Rename) Rules() []string {
	return []string{
		fmt.Sprintf("s/import %s/import %s/", r.Old, r.New),
		fmt.Sprintf("s/from %s import/from %s import/", r.Old, r.New),
	}
}

// Conflict reports a member name that maps to more than one qualified name.
// The last candidate in sort order is the one the script ends up using.
type Conflict struct {
	Member     string
	Candidates []string
}

func (c Conflict) Chosen() string {
	return c.Candidates[len(c.Candidates)-1]
}

func (c Conflict) String() string {
	return fmt.Sprintf("* Will substitute `%s` to `%s`, but could be any of `%s`",
		c.Member, c.Chosen(), strings.Join(c.Candidates, "`, `"))
}

// DefaultPreferredModules are the Qt submodules most old code imports from.
// Qualified names rooted in one of these sort last within a member group, so
// their rules are emitted last and win the two-level rewrite.
var DefaultPreferredModules = []string{"QtCore", "QtGui", "QtWidgets"}

type sortKey struct {
	preferred map[string]bool
}

func (k sortKey) less(a, b Substitution) bool {
	// Reverse length order so that a short member is never substituted
	// before a longer member containing it. Eg. "Read" must not be
	// substituted before "ReadWrite".
	if len(a.Member) != len(b.Member) {
		return len(a.Member) > len(b.Member)
	}
	// Group members with the same name together.
	if a.Member != b.Member {
		return a.Member < b.Member
	}
	// Prefer a substitution to the more common Qt submodules.
	ap := k.preferredFlag(a.QualName)
	bp := k.preferredFlag(b.QualName)
	if ap != bp {
		return ap < bp
	}
	// Finally, sort by the qualified name for a stable ordering.
	return a.QualName < b.QualName
}

func (k sortKey) preferredFlag(qualName string) int {
	if k.preferred[strings.SplitN(qualName, ".", 2)[0]] {
		return 1
	}
	return 0
}

// Compile sorts the substitutions and turns each into two sed rules: a
// generic rewrite of any `Base.Member` occurrence, and a rewrite of the old
// two-level access path (`QtWidgets.QAbstractItemView.MultiSelection`
// becomes `QtWidgets.QAbstractItemView.SelectionMode.MultiSelection`).
// Members mapping to more than one qualified name are reported as conflicts
// in the order they first appear in the sorted stream.
func Compile(subs []Substitution, preferredModules []string) ([]string, []Conflict) {
	key := sortKey{preferred: make(map[string]bool, len(preferredModules))}
	for _, m := range preferredModules {
		key.preferred[m] = true
	}

	sorted := make([]Substitution, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key.less(sorted[i], sorted[j])
	})

	var rules []string
	var memberOrder []string
	qualNamesByMember := make(map[string][]string)

	for _, s := range sorted {
		if _, seen := qualNamesByMember[s.Member]; !seen {
			memberOrder = append(memberOrder, s.Member)
		}
		qualNamesByMember[s.Member] = append(qualNamesByMember[s.Member], s.QualName)

		rules = append(rules, genericRule(s), twoLevelRule(s))
	}

	var conflicts []Conflict
	for _, member := range memberOrder {
		if qualNames := qualNamesByMember[member]; len(qualNames) > 1 {
			conflicts = append(conflicts, Conflict{Member: member, Candidates: qualNames})
		}
	}

	return rules, conflicts
}

// genericRule rewrites any `Base.Member` access. The base character classes
// deliberately cannot start a "Qt" prefix, so text the script has already
// qualified is not matched again.
func genericRule(s Substitution) string {
	return fmt.Sprintf(`s/([^a-zA-Z0-9_.]|^)[a-zA-PR-Z0-9_.]([a-su-z0-9_.][a-zA-Z0-9_.]*)?\.%s([^a-zA-Z0-9_.]|$)/\1%s\3/g`,
		s.Member, s.QualName)
}

// twoLevelRule rewrites the legacy path with the enum class name elided,
// e.g. `QtWidgets.QAbstractItemView.MultiSelection`.
func twoLevelRule(s Substitution) string {
	parts := strings.Split(s.QualName, ".")
	var head []string
	if len(parts) >= 2 {
		head = parts[:len(parts)-2]
	}
	old := strings.Join(head, ".") + "." + parts[len(parts)-1]
	return fmt.Sprintf(`s/([^a-zA-Z0-9_.]|^)[a-zA-Z0-9_.]+\.%s([^a-zA-Z0-9_.]|$)/\1%s\2/g`,
		old, s.QualName)
}
