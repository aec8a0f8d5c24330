package ui

import "github.com/pterm/pterm"

func Separator() {
	pterm.Println(pterm.Gray("---------------------------------------------------------"))
}
