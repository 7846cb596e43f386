package ui

// modelContext implements the input Context interface over the model, giving
// the key dispatcher a read-only view of the state it needs for guards.
type modelContext struct {
	m *Model
}

func (c modelContext) CurrentIndex() int {
	return c.m.focusIndex
}

func (c modelContext) TotalItems() int {
	return len(c.m.visibleEntries())
}

func (c modelContext) PageSize() int {
	if c.m.nav.IsSearching() {
		return c.m.nav.SearchLimit()
	}
	return c.m.nav.DirectoryLimit()
}

func (c modelContext) HasSelection() bool {
	return c.m.nav.SelectedCount() > 0
}

func (c modelContext) SelectedCount() int {
	return c.m.nav.SelectedCount()
}

func (c modelContext) CurrentEntryPath() string {
	if e := c.m.currentEntry(); e != nil {
		return e.Path
	}
	return ""
}

func (c modelContext) CurrentEntryName() string {
	if e := c.m.currentEntry(); e != nil {
		return e.Name
	}
	return ""
}

func (c modelContext) CurrentEntryIsDir() bool {
	if e := c.m.currentEntry(); e != nil {
		return e.IsDir
	}
	return false
}

func (c modelContext) ClipboardPending() bool {
	return !c.m.nav.Clipboard().Empty()
}

func (c modelContext) IsSearching() bool {
	return c.m.nav.IsSearching()
}

func (c modelContext) CanGoBack() bool {
	return c.m.nav.CanGoBack()
}

func (c modelContext) CanGoForward() bool {
	return c.m.nav.CanGoForward()
}
