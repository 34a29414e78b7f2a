// Package ui holds the terminal color palette shared by the console and the
// log viewer.
package ui
