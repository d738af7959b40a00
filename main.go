package main

import (
	"github.com/Rakhulsr/go-edumarket/app/cmd"
	"github.com/Rakhulsr/go-edumarket/app/configs"
)

func main() {
	env := configs.LoadEnv()
	cmd.RunCli(env)
}
