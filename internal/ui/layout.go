package ui

// Terminal size thresholds.
const (
	// LayoutStackedWidth is the width below which the panes stack vertically.
	LayoutStackedWidth = 90

	// LayoutMinHeight is the smallest height the two-pane layout renders in.
	LayoutMinHeight = 12
)

// Chrome sizes.
const (
	headerHeight = 1
	footerHeight = 1
	paneBorder   = 2
)

// paneSizes splits the body area into the results pane and the box pane.
// When stacked is true the panes share the height instead of the width.
func paneSizes(width, height int) (leftW, leftH, rightW, rightH int, stacked bool) {
	body := maxInt(height-headerHeight-footerHeight, paneBorder+1)
	if width < LayoutStackedWidth {
		top := body / 2
		return width, top, width, body - top, true
	}
	left := width * 2 / 5
	return left, body, width - left, body, false
}
