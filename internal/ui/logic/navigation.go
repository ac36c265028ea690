package logic

// Navigator tracks the cursor and viewport over a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 20}
}

// SetTotal updates the number of rows and keeps the cursor in range
func (n *Navigator) SetTotal(total int) {
	n.total = total
	n.ensureSelectedVisible()
}

// SetViewportHeight updates how many rows fit on screen
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// GetSelectedIndex returns the cursor row
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the first row on screen
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetViewportHeight returns the number of rows on screen
func (n *Navigator) GetViewportHeight() int {
	return n.viewportHeight
}

// SetSelectedIndex moves the cursor and scrolls it into view
func (n *Navigator) SetSelectedIndex(index int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
}

// Move moves the cursor by delta rows
func (n *Navigator) Move(delta int) {
	n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageUp moves the cursor up one screen
func (n *Navigator) PageUp() {
	n.Move(-n.viewportHeight)
}

// PageDown moves the cursor down one screen
func (n *Navigator) PageDown() {
	n.Move(n.viewportHeight)
}

// Home moves the cursor to the first row
func (n *Navigator) Home() {
	n.SetSelectedIndex(0)
}

// End moves the cursor to the last row
func (n *Navigator) End() {
	n.SetSelectedIndex(n.total - 1)
}

// ensureSelectedVisible clamps the cursor and adjusts the viewport around it
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	maxOffset := n.total - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
