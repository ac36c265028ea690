package selection

import (
	"go.uber.org/zap"
)

// Engine tracks a selection over a whole universe of items while only a
// visible subset of that universe is handed to its Selection. Keys selected
// while visible stay selected after a filter or page change hides them, and
// come back checked when they become visible again.
//
// For visible keys the Selection is authoritative. For hidden keys the last
// known state recorded in the logical selection is. An Engine is not safe for
// concurrent use; it expects a single UI caller.
type Engine[K comparable, T any] struct {
	selection *Selection[K, T]
	getKey    func(T) K
	onChanged func()
	logger    *zap.Logger
	mode      Mode

	allItemKeys     []K // universe order, first occurrence wins
	allItemsMap     map[K]T
	itemKeys        map[K]struct{} // visible set
	allSelectedKeys map[K]struct{} // logical selection

	allSelectionCache []T
	cacheValid        bool
}

// NewEngine creates an engine with an empty universe. onChanged fires whenever
// the universe-wide selection changes and may be nil.
func NewEngine[K comparable, T any](getKey func(T) K, onChanged func(), opts Options[T]) *Engine[K, T] {
	e := &Engine[K, T]{
		getKey:          getKey,
		onChanged:       onChanged,
		logger:          opts.logger(),
		mode:            opts.Mode,
		allItemsMap:     make(map[K]T),
		itemKeys:        make(map[K]struct{}),
		allSelectedKeys: make(map[K]struct{}),
	}
	e.selection = NewSelection(getKey, e.handleSelectionChanged, opts)
	return e
}

// SetAllItems replaces the universe. Visible items that are no longer part of
// it are removed from the visible set.
//
// Selected keys that left the universe are not pruned here. They stay in the
// logical selection until the next AllSelection call rebuilds it, so a key
// that returns before then comes back selected.
func (e *Engine[K, T]) SetAllItems(items []T) {
	e.invalidateCache()

	e.allItemKeys = make([]K, 0, len(items))
	e.allItemsMap = make(map[K]T, len(items))
	for _, item := range items {
		key := e.getKey(item)
		if _, seen := e.allItemsMap[key]; !seen {
			e.allItemKeys = append(e.allItemKeys, key)
		}
		e.allItemsMap[key] = item
	}

	visible := e.selection.Items()
	surviving := make([]T, 0, len(visible))
	for _, item := range visible {
		if current, ok := e.allItemsMap[e.getKey(item)]; ok {
			surviving = append(surviving, current)
		}
	}
	if len(surviving) != len(visible) {
		e.SetItems(surviving, false)
	}
}

// SetItems replaces the visible set. Items outside the universe are dropped.
// Keys in the logical selection come back selected. No change notification
// fires: this is a view change, not a selection change.
func (e *Engine[K, T]) SetItems(items []T, shouldClear bool) {
	e.invalidateCache()

	if shouldClear {
		e.allSelectedKeys = make(map[K]struct{})
	} else {
		e.captureVisibleSelection()
	}

	visible := make([]T, 0, len(items))
	itemKeys := make(map[K]struct{}, len(items))
	for _, item := range items {
		key := e.getKey(item)
		if _, ok := e.allItemsMap[key]; !ok {
			e.logger.Debug("dropping visible item missing from universe", zap.Any("key", key))
			continue
		}
		visible = append(visible, item)
		itemKeys[key] = struct{}{}
	}
	e.itemKeys = itemKeys

	e.withChangesSuppressed(dropPending, func() {
		e.selection.SetItems(visible, shouldClear)
		for _, item := range visible {
			key := e.getKey(item)
			_, selected := e.allSelectedKeys[key]
			e.selection.SetKeySelected(key, selected, false)
		}
	})
}

// SetAllSelected selects or clears the visible set only. Hidden keys keep
// their state. Selecting all is a no-op unless the mode is ModeMultiple.
func (e *Engine[K, T]) SetAllSelected(isAllSelected bool) {
	if e.mode == ModeNone || (isAllSelected && e.mode == ModeSingle) {
		return
	}
	e.invalidateCache()

	if isAllSelected && len(e.itemKeys) < len(e.allItemsMap) {
		e.withChangesSuppressed(flushPending, func() {
			for _, item := range e.selection.Items() {
				e.selection.SetKeySelected(e.getKey(item), true, false)
			}
		})
		return
	}
	e.selection.SetAllSelected(isAllSelected)
}

// SetAllSelectionSelected selects or clears the whole universe, hidden keys
// included, and always notifies once. Like SetAllSelected, selecting
// everything only works in ModeMultiple.
func (e *Engine[K, T]) SetAllSelectionSelected(isAllSelected bool) {
	if e.mode == ModeNone || (isAllSelected && e.mode == ModeSingle) {
		return
	}
	e.invalidateCache()

	selected := make(map[K]struct{}, len(e.allItemKeys))
	if isAllSelected {
		for _, key := range e.allItemKeys {
			selected[key] = struct{}{}
		}
	}
	e.allSelectedKeys = selected

	e.withChangesSuppressed(forceNotify, func() {
		e.selection.SetAllSelected(isAllSelected)
	})
}

// AllSelection returns every selected item in the universe, in universe
// order. The result is cached until the next mutation and must not be
// modified by the caller.
func (e *Engine[K, T]) AllSelection() []T {
	if e.cacheValid {
		return e.allSelectionCache
	}

	result := make([]T, 0, len(e.allSelectedKeys))
	selected := make(map[K]struct{}, len(e.allSelectedKeys))
	for _, key := range e.allItemKeys {
		if !e.isSelected(key) {
			continue
		}
		result = append(result, e.allItemsMap[key])
		selected[key] = struct{}{}
	}

	e.allSelectedKeys = selected
	e.allSelectionCache = result
	e.cacheValid = true
	return result
}

// AllSelectedCount returns the number of selected items in the universe
func (e *Engine[K, T]) AllSelectedCount() int {
	return len(e.AllSelection())
}

// IsKeyInAllSelection reports whether key is selected, visible or not
func (e *Engine[K, T]) IsKeyInAllSelection(key K) bool {
	if _, ok := e.allItemsMap[key]; !ok {
		return false
	}
	return e.isSelected(key)
}

// ResetAllSelection replaces the logical selection with keys. Keys outside the
// universe are ignored. In ModeSingle only the first known key is kept. When
// the result equals the current selection nothing happens; otherwise exactly
// one change notification fires.
func (e *Engine[K, T]) ResetAllSelection(keys []K) {
	if e.mode == ModeNone {
		return
	}

	requested := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := e.allItemsMap[key]; ok {
			requested[key] = struct{}{}
			if e.mode == ModeSingle {
				break
			}
		}
	}

	current := e.AllSelection()
	if len(current) == len(requested) {
		same := true
		for _, item := range current {
			if _, ok := requested[e.getKey(item)]; !ok {
				same = false
				break
			}
		}
		if same {
			return
		}
	}

	e.invalidateCache()
	e.allSelectedKeys = requested

	e.withChangesSuppressed(forceNotify, func() {
		e.selection.SetAllSelected(false)
		for _, item := range e.selection.Items() {
			key := e.getKey(item)
			if _, ok := requested[key]; ok {
				e.selection.SetKeySelected(key, true, false)
			}
		}
	})
}

// AllItems returns the universe in order
func (e *Engine[K, T]) AllItems() []T {
	result := make([]T, 0, len(e.allItemKeys))
	for _, key := range e.allItemKeys {
		result = append(result, e.allItemsMap[key])
	}
	return result
}

// Items returns the visible set
func (e *Engine[K, T]) Items() []T {
	return e.selection.Items()
}

// Selection returns the selected visible items
func (e *Engine[K, T]) Selection() []T {
	return e.selection.Selection()
}

// SelectedCount returns the number of selected visible items
func (e *Engine[K, T]) SelectedCount() int {
	return e.selection.SelectedCount()
}

func (e *Engine[K, T]) IsKeySelected(key K) bool {
	return e.selection.IsKeySelected(key)
}

func (e *Engine[K, T]) IsIndexSelected(index int) bool {
	return e.selection.IsIndexSelected(index)
}

func (e *Engine[K, T]) IsAllSelected() bool {
	return e.selection.IsAllSelected()
}

func (e *Engine[K, T]) IsRangeSelected(from, count int) bool {
	return e.selection.IsRangeSelected(from, count)
}

func (e *Engine[K, T]) SetKeySelected(key K, selected, anchor bool) {
	e.invalidateCache()
	e.selection.SetKeySelected(key, selected, anchor)
}

func (e *Engine[K, T]) SetIndexSelected(index int, selected, anchor bool) {
	e.invalidateCache()
	e.selection.SetIndexSelected(index, selected, anchor)
}

func (e *Engine[K, T]) ToggleKeySelected(key K) {
	e.invalidateCache()
	e.selection.ToggleKeySelected(key)
}

func (e *Engine[K, T]) ToggleIndexSelected(index int) {
	e.invalidateCache()
	e.selection.ToggleIndexSelected(index)
}

func (e *Engine[K, T]) ToggleAllSelected() {
	e.invalidateCache()
	e.selection.ToggleAllSelected()
}

func (e *Engine[K, T]) ToggleRangeSelected(from, count int) {
	e.invalidateCache()
	e.selection.ToggleRangeSelected(from, count)
}

func (e *Engine[K, T]) SelectToKey(key K, clearSelection bool) {
	e.invalidateCache()
	e.selection.SelectToKey(key, clearSelection)
}

func (e *Engine[K, T]) SelectToIndex(index int, clearSelection bool) {
	e.invalidateCache()
	e.selection.SelectToIndex(index, clearSelection)
}

// isSelected resolves a universe key: the Selection answers for visible keys,
// the logical selection for hidden ones
func (e *Engine[K, T]) isSelected(key K) bool {
	if _, visible := e.itemKeys[key]; visible {
		return e.selection.IsKeySelected(key)
	}
	_, ok := e.allSelectedKeys[key]
	return ok
}

// captureVisibleSelection records the current visible state into the logical
// selection before the visible set is replaced
func (e *Engine[K, T]) captureVisibleSelection() {
	for key := range e.itemKeys {
		if e.selection.IsKeySelected(key) {
			e.allSelectedKeys[key] = struct{}{}
		} else {
			delete(e.allSelectedKeys, key)
		}
	}
}

func (e *Engine[K, T]) handleSelectionChanged() {
	e.invalidateCache()
	// A visible pick replaces any hidden one in single mode
	if e.mode == ModeSingle && e.selection.SelectedCount() > 0 {
		for key := range e.allSelectedKeys {
			if _, visible := e.itemKeys[key]; !visible {
				delete(e.allSelectedKeys, key)
			}
		}
	}
	if e.onChanged != nil {
		e.onChanged()
	}
}

func (e *Engine[K, T]) invalidateCache() {
	e.allSelectionCache = nil
	e.cacheValid = false
}
