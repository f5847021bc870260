package application

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/vid2audio/internal/configuration"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

type App struct {
	ctx    context.Context
	logger *logrus.Entry
	config *configuration.Config

	domains      map[string]domains.Domain
	domainsMutex sync.RWMutex
}

func (a *App) Config() *configuration.Config {
	return a.config
}

func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) Logger() *logrus.Entry {
	return a.logger
}

func New(ctx context.Context) *App {
	// Initialize standard logger with process information attached permanently.
	logger := logrus.StandardLogger()

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return NewWithLogger(ctx, logger)
}

// NewWithLogger creates the application around an existing logger.
func NewWithLogger(ctx context.Context, logger *logrus.Logger) *App {
	app := new(App)

	app.logger = logger.WithContext(ctx).WithFields(logrus.Fields{
		"pid":     os.Getpid(),
		"version": configuration.Version,
	})

	app.ctx = ctx

	app.domains = make(map[string]domains.Domain)

	return app
}

// InitConfig builds the configuration from command line arguments, the
// config file and defaults.
func (a *App) InitConfig(args []string) error {
	config, err := configuration.New(args)
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrApplication, ErrConfigInitializationError, err)
	}

	a.config = config

	return nil
}

// SetConfig replaces the configuration, e.g. after interactive prompts
// filled in the missing values.
func (a *App) SetConfig(config *configuration.Config) {
	a.config = config
}

func (a *App) InitLogger() {
	a.logger.Logger.SetLevel(a.config.LogLevel())

	a.logger.WithField("log level", a.config.LogLevel()).Debug("Set log level")
}

func (a *App) RegisterDomain(name string, implementation domains.Domain) {
	a.domainsMutex.Lock()
	defer a.domainsMutex.Unlock()

	a.domains[name] = implementation
}

func (a *App) RetrieveDomain(name string) any {
	a.domainsMutex.RLock()
	defer a.domainsMutex.RUnlock()

	return a.domains[name]
}

func (a *App) ConnectDependencies() error {
	a.domainsMutex.RLock()
	defer a.domainsMutex.RUnlock()

	for _, domain := range a.domains {
		err := domain.ConnectDependencies()
		if err != nil {
			return fmt.Errorf("%w: %w (%w)", ErrApplication, ErrConnectDependencies, err)
		}
	}

	return nil
}

func (a *App) StartDomains() error {
	a.domainsMutex.RLock()
	defer a.domainsMutex.RUnlock()

	for _, domain := range a.domains {
		err := domain.Start()
		if err != nil {
			return fmt.Errorf("%w: %w (%w)", ErrApplication, ErrDomainInit, err)
		}
	}

	return nil
}

// StopDomains stops every domain that holds resources. All domains are
// asked to stop even if one of them fails; the first error is returned.
func (a *App) StopDomains() error {
	a.domainsMutex.RLock()
	defer a.domainsMutex.RUnlock()

	var firstErr error

	for name, domain := range a.domains {
		stopper, ok := domain.(domains.Stopper)
		if !ok {
			continue
		}

		err := stopper.Stop()
		if err != nil {
			a.logger.WithError(err).WithField("domain", name).Error("Failed to stop domain")

			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %w (%w)", ErrApplication, ErrDomainStop, err)
			}
		}
	}

	return firstErr
}
