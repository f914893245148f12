// Package ux provides the terminal styles for qoda's diagnostic output.
package ux

import "github.com/charmbracelet/lipgloss"

var (
	colorError  = lipgloss.Color("1") // red: problems
	colorHeader = lipgloss.Color("3") // yellow: message headers
	colorFile   = lipgloss.Color("4") // blue: file names
	colorOK     = lipgloss.Color("2") // green: all-clear markers
)

// Styles used across the check and compare diagnostics.
var (
	Error  = lipgloss.NewStyle().Foreground(colorError)
	Header = lipgloss.NewStyle().Foreground(colorHeader)
	File   = lipgloss.NewStyle().Foreground(colorFile)
	OK     = lipgloss.NewStyle().Foreground(colorOK)
	Bold   = lipgloss.NewStyle().Bold(true)
)
