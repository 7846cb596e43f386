package navigation

// EntryKind discriminates history entries: plain directory locations versus
// search-result locations.
type EntryKind int

const (
	KindPath EntryKind = iota
	KindSearch
)

// HistoryEntry is a snapshot of navigable state. Path entries capture a
// directory and its pagination offset. Search entries additionally remember
// the browse location underneath the search, so leaving search restores it.
type HistoryEntry struct {
	Kind       EntryKind
	Path       string
	Offset     int    // directory offset for KindPath, search offset for KindSearch
	PathOffset int    // browse offset remembered while searching (KindSearch only)
	Query      string // KindSearch only
}

// Option tweaks a single navigation mutation. Defaults: history is
// recorded, appended rather than replaced, and navigating to a path exits
// search.
type Option func(*options)

type options struct {
	recordHistory  bool
	replaceHistory bool
	exitSearch     bool
}

func applyOptions(opts []Option) options {
	o := options{recordHistory: true, exitSearch: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithoutHistory suppresses the history commit for this mutation.
func WithoutHistory() Option {
	return func(o *options) { o.recordHistory = false }
}

// ReplaceHistory overwrites the entry at the current history index instead
// of appending. Used when an offset is computed asynchronously after a
// navigation, e.g. scrolling to an item after going to the parent.
func ReplaceHistory() Option {
	return func(o *options) { o.replaceHistory = true }
}

// KeepSearch leaves the search state untouched when setting the current
// path (used for the browse location remembered underneath an active
// search).
func KeepSearch() Option {
	return func(o *options) { o.exitSearch = false }
}

// minSearchLength is the query length at which the search UI starts issuing
// requests; shorter queries never produce history entries.
const minSearchLength = 2
