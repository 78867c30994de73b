package main

import "github.com/fatih/color"

var (
	bold   = color.New(color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func getColorizedLogo() string {
	return color.New(color.FgGreen, color.Bold).Sprint("longfilt")
}
