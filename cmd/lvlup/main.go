package main

import "github.com/Popilynx/SistemaLevelUp-sub000/cmd/lvlup/root"

func main() {
	root.Execute()
}
