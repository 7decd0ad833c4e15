// Package detail loads the selected movie and turns it into a watched entry.
package detail
