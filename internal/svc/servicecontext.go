package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/devblox/relay/internal/audit"
	"github.com/devblox/relay/internal/config"
	"github.com/devblox/relay/internal/liveness"
	"github.com/devblox/relay/internal/logging"
	"github.com/devblox/relay/internal/provider"
	"github.com/devblox/relay/internal/quota"
	"github.com/devblox/relay/internal/relay"
	"github.com/devblox/relay/internal/session"
)

// ServiceContext holds the wired collaborators shared by all handlers.
type ServiceContext struct {
	Config   config.Config
	Registry *session.Registry
	Projects *session.ProjectStore
	Quota    *quota.Ledger
	Liveness *liveness.Monitor
	Relay    *relay.Service
	Audit    *audit.Worker
	Watchdog *relay.Watchdog
}

// NewServiceContext wires everything from config. It fails fast on a
// misconfigured provider rather than surfacing the problem on the first
// prompt.
func NewServiceContext(ctx context.Context, c config.Config) (*ServiceContext, error) {
	registry := session.NewRegistry()
	projects := session.NewProjectStore()
	ledger := quota.NewLedger(c.Quota.DailyCap, c.Quota.RedeemCodes)
	monitor := liveness.NewMonitor(time.Duration(c.Liveness.TimeoutSeconds) * time.Second)

	gen, err := newGenerator(c)
	if err != nil {
		return nil, err
	}

	worker, err := newAuditWorker(ctx, c)
	if err != nil {
		return nil, err
	}

	providerCfg := providerConfig(c)
	relaySvc := relay.NewService(relay.Options{
		Registry:  registry,
		Quota:     ledger,
		Liveness:  monitor,
		Generator: gen,
		Audit:     worker,
		System:    providerCfg.System,
		MaxWait:   time.Duration(c.Relay.MaxWaitMs) * time.Millisecond,
	})

	return &ServiceContext{
		Config:   c,
		Registry: registry,
		Projects: projects,
		Quota:    ledger,
		Liveness: monitor,
		Relay:    relaySvc,
		Audit:    worker,
		Watchdog: relay.NewWatchdog(registry, c.Relay.BacklogThreshold),
	}, nil
}

// Start launches the background pieces: the audit worker and the backlog
// watchdog. They stop when ctx is cancelled.
func (svcCtx *ServiceContext) Start(ctx context.Context) {
	if svcCtx.Audit != nil {
		go svcCtx.Audit.Run(ctx)
	}
	svcCtx.Watchdog.Start()
}

// Stop halts the watchdog. The audit worker exits with its context.
func (svcCtx *ServiceContext) Stop() {
	svcCtx.Watchdog.Stop()
}

func providerConfig(c config.Config) config.ProviderConfig {
	if c.Providers.Default == "anthropic" {
		return c.Providers.Anthropic
	}
	return c.Providers.OpenAI
}

func newGenerator(c config.Config) (provider.Generator, error) {
	name := c.Providers.Default
	if name == "" {
		name = "openai"
	}

	switch name {
	case "openai":
		pc := c.Providers.OpenAI
		if pc.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return provider.NewOpenAI(pc.APIKey, pc.Model, pc.MaxTokens, pc.Temperature), nil
	case "anthropic":
		pc := c.Providers.Anthropic
		if pc.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return provider.NewAnthropic(pc.APIKey, pc.Model, pc.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

func newAuditWorker(ctx context.Context, c config.Config) (*audit.Worker, error) {
	switch c.Audit.Sink {
	case "sheets":
		if c.Audit.ServiceKey == "" || c.Audit.SpreadsheetID == "" {
			return nil, fmt.Errorf("sheets audit sink needs service_key and spreadsheet_id")
		}
		appender, err := audit.NewSheetsAppender(ctx, []byte(c.Audit.ServiceKey), c.Audit.SpreadsheetID, c.Audit.SheetRange)
		if err != nil {
			return nil, err
		}
		return audit.NewWorker(appender, 0), nil
	case "jsonl":
		path := c.Audit.JSONLPath
		if path == "" {
			path = "data/audit.jsonl"
		}
		appender, err := audit.NewJSONLAppender(path)
		if err != nil {
			return nil, err
		}
		return audit.NewWorker(appender, 0), nil
	case "", "none":
		logging.Infof("Audit sink disabled")
		return audit.NewWorker(audit.Nop{}, 0), nil
	default:
		return nil, fmt.Errorf("unknown audit sink %q", c.Audit.Sink)
	}
}
