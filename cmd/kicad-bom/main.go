package main

import "github.com/OpenTraceLab/OpenTraceBOM/cmd/kicad-bom/cmd"

func main() {
	cmd.Execute()
}
