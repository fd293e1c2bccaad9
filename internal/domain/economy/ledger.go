package economy

import "sort"

// Ledger is the colony-owned store of outpost records. There is exactly one
// writer per ledger per cycle.
type Ledger struct {
	colonyName string
	outposts   map[string]*Outpost
}

// NewLedger creates an empty ledger for a colony
func NewLedger(colonyName string) *Ledger {
	return &Ledger{
		colonyName: colonyName,
		outposts:   make(map[string]*Outpost),
	}
}

func (l *Ledger) ColonyName() string { return l.colonyName }
func (l *Ledger) Len() int           { return len(l.outposts) }

// Outposts returns the outposts ordered by name
func (l *Ledger) Outposts() []*Outpost {
	names := l.Names()
	out := make([]*Outpost, 0, len(names))
	for _, name := range names {
		out = append(out, l.outposts[name])
	}
	return out
}

// Names returns the outpost names in sorted order
func (l *Ledger) Names() []string {
	names := make([]string, 0, len(l.outposts))
	for name := range l.outposts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Outpost looks up an outpost by name
func (l *Ledger) Outpost(name string) (*Outpost, bool) {
	o, ok := l.outposts[name]
	return o, ok
}

// Add stores an outpost, replacing any record with the same name
func (l *Ledger) Add(o *Outpost) {
	l.outposts[o.Name()] = o
}

// Remove deletes an outpost record
func (l *Ledger) Remove(name string) bool {
	if _, ok := l.outposts[name]; !ok {
		return false
	}
	delete(l.outposts, name)
	return true
}

// PropagateAbandonment raises the countdown of every outpost whose route runs
// through name, transitively, to at least name's countdown. The walk is depth
// first and guarded by a visited set, so cyclic paths-through data terminates.
// Returns the outposts whose countdown was raised.
func (l *Ledger) PropagateAbandonment(name string) []string {
	origin, ok := l.outposts[name]
	if !ok {
		return nil
	}

	visited := map[string]bool{}
	var raised []string
	l.propagate(origin, visited, &raised)
	return raised
}

func (l *Ledger) propagate(o *Outpost, visited map[string]bool, raised *[]string) {
	visited[o.name] = true

	for _, depName := range o.pathsThrough {
		dep, ok := l.outposts[depName]
		if !ok || visited[depName] {
			continue
		}
		if dep.abandonCountdown >= o.abandonCountdown {
			continue
		}

		dep.Abandon(o.abandonCountdown)
		*raised = append(*raised, depName)
		l.propagate(dep, visited, raised)
	}

	o.recursedAbandon = true
}
