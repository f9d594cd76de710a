// Command adapter runs the CoinbasePro exchange adapter with a single
// configured strategy. Configuration comes entirely from config.yaml;
// there are no flags.
package main

import (
	"context"
	"os"

	"github.com/go-cryptoconnect/coinbasepro/adapter"
	"github.com/go-cryptoconnect/coinbasepro/config"
	"github.com/go-cryptoconnect/coinbasepro/examples/passthrough"
	"github.com/go-cryptoconnect/coinbasepro/log"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Logger().Fatal().Err(err).Msg("could not load config.yaml")
	}

	endpoints := adapter.LiveEndpoints
	if cfg.CoinbasePro.Sandbox {
		endpoints = adapter.SandboxEndpoints
	}

	profile := cfg.CoinbasePro.Active()
	strat := passthrough.New()

	a := adapter.New(endpoints, profile.APIKey, profile.SecretKey, profile.Passphrase, strat)

	if err := a.Start(context.Background()); err != nil {
		os.Exit(1)
	}
}
