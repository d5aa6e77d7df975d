package main

import (
	"flag"
	"fmt"
	"os"

	"todo-api/internal/client"
	"todo-api/internal/tui"
)

func main() {
	configPath := flag.String("config", client.DefaultConfigPath(), "path to the TOML config file")
	apiURL := flag.String("api-url", "", "todo API base URL (overrides config and TODO_API_URL)")
	flag.Parse()

	cfg, err := client.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	c := client.New(cfg.APIURL, cfg.Timeout())
	if err := tui.Run(c, cfg.Timeout()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
