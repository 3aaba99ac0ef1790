package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/soartravel/soar"
	"github.com/soartravel/soar/config"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	logLevel   string
	logHandler string
	offline    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:          "soar",
		Short:        "Travel assistant chat and memory sync",
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to a YAML config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.logHandler, "log-handler", "", "Log handler: text or json")
	pf.BoolVar(&flags.offline, "offline", false, "Keep memories and the sync ledger in process")

	cmd.AddCommand(
		newChatCmd(flags),
		newMemoriesCmd(flags),
		newSyncCmd(flags),
		newServeCmd(flags),
		newSchemaCmd(),
	)

	return cmd
}

func (f *rootFlags) loadConfig() (*config.Config, error) {
	conf, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		conf.Log.LogLevel = f.logLevel
	}
	if f.logHandler != "" {
		conf.Log.LogHandler = f.logHandler
	}
	if err := conf.Validate(f.offline); err != nil {
		return nil, err
	}
	return conf, nil
}

// newAssistant builds an Assistant from the flags. The returned func waits for pending statement writes.
func (f *rootFlags) newAssistant(ctx context.Context) (*soar.Assistant, *config.Config, func(), error) {
	conf, err := f.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := mylog.NewLogger(conf.Log.LogLevel, conf.Log.LogHandler)
	a, err := soar.NewAssistant(ctx,
		soar.WithConfig(conf),
		soar.WithLogger(logger),
		soar.WithOffline(f.offline),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), conf.Chat.StatementWriteTimeout)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			logger.Warn("failed to close assistant", "error", err)
		}
	}
	return a, conf, closeFn, nil
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
