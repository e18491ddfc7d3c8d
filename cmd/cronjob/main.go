package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	cronconfig "github.com/to404hanga/online_judge_arena/cmd/cronjob/config"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/constants"
)

const defaultConfigPath = "./config/config.yaml"

func main() {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		log.Panicf("load location failed: %v", err)
	}
	time.Local = loc

	cfile := pflag.String("config", defaultConfigPath, "config file path")
	pflag.Parse()

	if err = config.Load(*cfile); err != nil {
		log.Panicf("load config failed: %v", err)
	}

	app := InitScheduler()
	if err = app.Start(); err != nil {
		log.Panicf("cron job scheduler failed: %v", err)
	}

	log.Println("cron job scheduler started")

	var metricsCfg cronconfig.MetricsConfig
	if err = viper.UnmarshalKey(metricsCfg.Key(), &metricsCfg); err != nil {
		log.Panicf("unmarshal cronjob metrics config failed: %v", err)
	}
	if metricsCfg.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle(constants.MetricsPath, promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(metricsCfg.Addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("cronjob metrics server failed: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	app.Stop()
}
