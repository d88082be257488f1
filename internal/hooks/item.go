package hooks

import "path/filepath"

// Origin names the stage an item was discovered in.
type Origin string

const (
	OriginLegacy       Origin = "legacy"
	OriginSharedGlobal Origin = "shared-global"
	OriginSharedLocal  Origin = "shared-local"
	OriginLocal        Origin = "local"
)

// Origins lists all origins in execution order.
var Origins = []Origin{OriginLegacy, OriginSharedGlobal, OriginSharedLocal, OriginLocal}

// Trigger is the event git fired and the arguments it passed.
// Args are opaque and handed to every item unchanged.
type Trigger struct {
	Name string
	Args []string
}

// Item is a single runnable hook file.
type Item struct {
	Path       string // absolute
	Trigger    string
	Origin     Origin
	Executable bool
}

// Name returns the file name of the item.
func (i Item) Name() string {
	return filepath.Base(i.Path)
}

// Stage is the ordered list of items from one origin.
type Stage struct {
	Origin Origin
	Items  []Item
}

// Plan is the ordered list of stages for one trigger invocation.
type Plan struct {
	Trigger string
	Stages  []Stage
}

// Items flattens the plan into execution order.
func (p Plan) Items() []Item {
	var items []Item
	for _, s := range p.Stages {
		items = append(items, s.Items...)
	}
	return items
}

// Len returns the total number of items in the plan.
func (p Plan) Len() int {
	n := 0
	for _, s := range p.Stages {
		n += len(s.Items)
	}
	return n
}
