package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

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

	consumer := InitSubmissionConsumer()
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("submission scorer started")
	if err := consumer.Start(ctx); err != nil {
		log.Panicf("submission scorer failed: %v", err)
	}
}
