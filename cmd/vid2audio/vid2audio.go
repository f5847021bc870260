package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/configuration"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/batcher"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/converter"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/journal"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/locator"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := application.New(ctx)

	err := app.InitConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stdout, configuration.Usage())
			os.Exit(0)
		}

		fmt.Fprint(os.Stderr, configuration.Usage())
		app.Logger().Fatal(err)
	}

	if app.Config().Runtime.ShowVersion {
		fmt.Fprintln(os.Stdout, "vid2audio", configuration.Version)
		os.Exit(0)
	}

	app.InitLogger()

	err = bootstrap(app)
	if err != nil {
		app.Logger().Fatal(err)
	}

	// CTRL+C handler.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		signalThing := <-interrupt
		app.Logger().WithField("signal", signalThing.String()).
			Warn("Got terminating signal, shutting down...")

		cancel()

		os.Exit(exitInterrupted)
	}()

	exitCode := run(app, os.Stdin, os.Stdout)

	err = app.StopDomains()
	if err != nil {
		app.Logger().Error(err)
	}

	os.Exit(exitCode)
}

func bootstrap(app *application.App) error {
	app.RegisterDomain(domains.LocatorName, locator.New(app))
	app.RegisterDomain(domains.ConverterName, converter.New(app))
	app.RegisterDomain(domains.BatcherName, batcher.New(app))
	app.RegisterDomain(domains.JournalName, journal.New(app))

	err := app.ConnectDependencies()
	if err != nil {
		return err
	}

	return app.StartDomains()
}
