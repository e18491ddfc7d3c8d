package main

import (
	"log"

	"github.com/spf13/pflag"
	"github.com/to404hanga/online_judge_arena/config"
)

const defaultConfigPath = "./config/config.yaml"

func main() {
	cfile := pflag.String("config", defaultConfigPath, "config file path")
	pflag.Parse()

	if err := config.Load(*cfile); err != nil {
		log.Panicf("load config failed: %v", err)
	}

	app := BuildDependency()
	log.Println("gin server start")
	if err := app.Start(); err != nil {
		log.Panicf("gin server failed: %v", err)
	}
}
