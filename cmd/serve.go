package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/recommend"
	"github.com/lanewaylabs/bizmatch/internal/server"
)

const defaultPort = 8080

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		lg := newLogger()

		config, err := getConfig()
		if err != nil {
			return err
		}

		st, err := newStore(ctx, config, lg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		oracle, err := newOracle(ctx, config.AI, lg)
		if err != nil {
			// The oracle is advisory; the keyword fallback keeps the
			// service fully functional without it.
			lg.Warn("skill match oracle unavailable, keyword fallback only", zap.Error(err))
		}

		ranker := recommend.NewRanker(oracle, lg)

		port := servePort
		if port == 0 && config.Server != nil {
			port = config.Server.Port
		}
		if port == 0 {
			port = defaultPort
		}

		return server.New(port, st, ranker, lg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
