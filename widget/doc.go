// Package widget holds the state behind the site's interactive pieces:
// the theme handle, the toast queue, carousels, the drag/inertia gallery
// and stat counters. Nothing here renders; consumers read state and draw.
package widget
