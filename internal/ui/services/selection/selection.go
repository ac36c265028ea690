package selection

// Selection tracks which of its current items are selected. It knows nothing
// beyond the items most recently passed to SetItems: keys that leave the item
// list leave the selection with them.
type Selection[K comparable, T any] struct {
	getKey    func(T) K
	onChanged func()
	opts      Options[T]

	items    []T
	keyIndex map[K]int
	selected map[K]struct{}

	anchorKey K
	hasAnchor bool // For shift-selection

	changeEventsDisabled int
	hasPendingChange     bool
}

// NewSelection creates an empty selection. onChanged may be nil.
func NewSelection[K comparable, T any](getKey func(T) K, onChanged func(), opts Options[T]) *Selection[K, T] {
	return &Selection[K, T]{
		getKey:    getKey,
		onChanged: onChanged,
		opts:      opts,
		keyIndex:  make(map[K]int),
		selected:  make(map[K]struct{}),
	}
}

// Mode returns the selection mode
func (s *Selection[K, T]) Mode() Mode {
	return s.opts.Mode
}

// SetChangeEvents disables or re-enables change notifications. Disabling
// nests; the last matching enable fires one pending change unless
// suppressPending is set.
func (s *Selection[K, T]) SetChangeEvents(enabled, suppressPending bool) {
	if !enabled {
		s.changeEventsDisabled++
		return
	}
	if s.changeEventsDisabled > 0 {
		s.changeEventsDisabled--
	}
	if s.changeEventsDisabled == 0 && s.hasPendingChange {
		s.hasPendingChange = false
		if !suppressPending {
			s.fire()
		}
	}
}

// SetItems replaces the item list. Selected keys that are still present stay
// selected unless shouldClear is set.
func (s *Selection[K, T]) SetItems(items []T, shouldClear bool) {
	s.SetChangeEvents(false, false)
	defer s.SetChangeEvents(true, false)

	s.items = append([]T(nil), items...)
	s.keyIndex = make(map[K]int, len(items))
	for i, item := range s.items {
		key := s.getKey(item)
		if _, dup := s.keyIndex[key]; !dup {
			s.keyIndex[key] = i
		}
	}

	changed := false
	if shouldClear {
		changed = len(s.selected) > 0
		s.selected = make(map[K]struct{})
		s.hasAnchor = false
	} else {
		for key := range s.selected {
			if _, ok := s.keyIndex[key]; !ok {
				delete(s.selected, key)
				changed = true
			}
		}
	}

	if s.hasAnchor {
		if _, ok := s.keyIndex[s.anchorKey]; !ok {
			s.hasAnchor = false
		}
	}

	if changed {
		s.change()
	}
}

// Items returns a copy of the current item list
func (s *Selection[K, T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Selection returns the selected items in list order
func (s *Selection[K, T]) Selection() []T {
	result := make([]T, 0, len(s.selected))
	for i, item := range s.items {
		key := s.getKey(item)
		if s.keyIndex[key] != i {
			continue
		}
		if _, ok := s.selected[key]; ok {
			result = append(result, item)
		}
	}
	return result
}

// SelectedCount returns the number of selected items
func (s *Selection[K, T]) SelectedCount() int {
	return len(s.selected)
}

// IsKeySelected checks if the item with key is selected
func (s *Selection[K, T]) IsKeySelected(key K) bool {
	_, ok := s.selected[key]
	return ok
}

// IsIndexSelected checks if the item at index is selected
func (s *Selection[K, T]) IsIndexSelected(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	return s.IsKeySelected(s.getKey(s.items[index]))
}

// IsAllSelected returns true when every selectable item is selected and at
// least one item is selectable
func (s *Selection[K, T]) IsAllSelected() bool {
	selectable := 0
	for i, item := range s.items {
		if !s.opts.canSelect(item, i) {
			continue
		}
		selectable++
		if !s.IsKeySelected(s.getKey(item)) {
			return false
		}
	}
	return selectable > 0
}

// IsRangeSelected returns true when every index in [from, from+count) is selected
func (s *Selection[K, T]) IsRangeSelected(from, count int) bool {
	if count <= 0 || from < 0 || from+count > len(s.items) {
		return false
	}
	for i := from; i < from+count; i++ {
		if !s.IsIndexSelected(i) {
			return false
		}
	}
	return true
}

// SetAllSelected selects or clears every item
func (s *Selection[K, T]) SetAllSelected(selected bool) {
	if s.opts.Mode == ModeNone || (selected && s.opts.Mode == ModeSingle) {
		return
	}

	changed := false
	if selected {
		for i, item := range s.items {
			key := s.getKey(item)
			if _, ok := s.selected[key]; ok || !s.opts.canSelect(item, i) {
				continue
			}
			s.selected[key] = struct{}{}
			changed = true
		}
	} else {
		changed = len(s.selected) > 0
		s.selected = make(map[K]struct{})
		s.hasAnchor = false
	}

	if changed {
		s.change()
	}
}

// SetKeySelected selects or deselects the item with key. Unknown keys are ignored.
func (s *Selection[K, T]) SetKeySelected(key K, selected, anchor bool) {
	index, ok := s.keyIndex[key]
	if !ok {
		return
	}
	s.SetIndexSelected(index, selected, anchor)
}

// SetIndexSelected selects or deselects the item at index
func (s *Selection[K, T]) SetIndexSelected(index int, selected, anchor bool) {
	if s.opts.Mode == ModeNone || index < 0 || index >= len(s.items) {
		return
	}
	item := s.items[index]
	if selected && !s.opts.canSelect(item, index) {
		return
	}
	key := s.getKey(item)

	changed := false
	if selected && s.opts.Mode == ModeSingle {
		for other := range s.selected {
			if other != key {
				delete(s.selected, other)
				changed = true
			}
		}
	}

	if _, isSelected := s.selected[key]; isSelected != selected {
		if selected {
			s.selected[key] = struct{}{}
		} else {
			delete(s.selected, key)
		}
		changed = true
	}

	if anchor {
		s.anchorKey = key
		s.hasAnchor = true
	}

	if changed {
		s.change()
	}
}

// ToggleKeySelected flips the item with key and anchors on it
func (s *Selection[K, T]) ToggleKeySelected(key K) {
	s.SetKeySelected(key, !s.IsKeySelected(key), true)
}

// ToggleIndexSelected flips the item at index and anchors on it
func (s *Selection[K, T]) ToggleIndexSelected(index int) {
	s.SetIndexSelected(index, !s.IsIndexSelected(index), true)
}

// ToggleAllSelected selects everything unless everything is already selected
func (s *Selection[K, T]) ToggleAllSelected() {
	s.SetAllSelected(!s.IsAllSelected())
}

// ToggleRangeSelected selects [from, from+count) unless the whole range is
// already selected, in which case it is cleared
func (s *Selection[K, T]) ToggleRangeSelected(from, count int) {
	if s.opts.Mode == ModeNone || count <= 0 {
		return
	}
	if from < 0 {
		count += from
		from = 0
	}
	end := from + count
	if end > len(s.items) {
		end = len(s.items)
	}
	if from >= end {
		return
	}

	selected := !s.IsRangeSelected(from, end-from)

	s.SetChangeEvents(false, false)
	defer s.SetChangeEvents(true, false)

	for i := from; i < end; i++ {
		s.SetIndexSelected(i, selected, false)
	}
	s.anchorKey = s.getKey(s.items[from])
	s.hasAnchor = true
}

// SelectToKey selects a range from the anchor to the item with key
func (s *Selection[K, T]) SelectToKey(key K, clearSelection bool) {
	index, ok := s.keyIndex[key]
	if !ok {
		return
	}
	s.SelectToIndex(index, clearSelection)
}

// SelectToIndex selects a range from the anchor to index, optionally
// clearing everything else first. Without an anchor the range starts at 0.
func (s *Selection[K, T]) SelectToIndex(index int, clearSelection bool) {
	if s.opts.Mode == ModeNone || index < 0 || index >= len(s.items) {
		return
	}
	if s.opts.Mode == ModeSingle {
		s.SetIndexSelected(index, true, true)
		return
	}

	anchor := 0
	if s.hasAnchor {
		anchor = s.keyIndex[s.anchorKey]
	}
	start, end := anchor, index
	if start > end {
		start, end = end, start
	}

	s.SetChangeEvents(false, false)
	defer s.SetChangeEvents(true, false)

	if clearSelection && len(s.selected) > 0 {
		s.selected = make(map[K]struct{})
		s.change()
	}
	for i := start; i <= end; i++ {
		s.SetIndexSelected(i, true, false)
	}
}

// change records a change and fires it unless events are disabled
func (s *Selection[K, T]) change() {
	if s.changeEventsDisabled > 0 {
		s.hasPendingChange = true
		return
	}
	s.fire()
}

func (s *Selection[K, T]) fire() {
	if s.onChanged != nil {
		s.onChanged()
	}
}
