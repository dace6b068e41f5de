package main

import (
	"context"
	"flag"
	"os"

	"popcompare/internal/app"
	"popcompare/internal/config"
	"popcompare/internal/logger"
	"popcompare/internal/report"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		config.Exitf("Error: %v", err)
	}

	command, args := "compare", os.Args[1:]
	if len(args) > 0 && (args[0] == "compare" || args[0] == "show") {
		command, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("popcompare "+command, flag.ExitOnError)
	cfg, err := config.ParseConfig(fs, args, report.Formats())
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	switch command {
	case "show":
		err = app.Show(cfg, os.Stdout)
	default:
		_, err = app.Run(context.Background(), cfg, os.Stdout)
	}
	if err != nil {
		logger.L().Error("run_failed", "command", command, "err", err)
		config.Exitf("Error: %v", err)
	}
}
