package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fks-execution/config"
	"fks-execution/internal/dto"
	"fks-execution/internal/service"
	"fks-execution/pkg/httpclient"
	"fks-execution/pkg/logger"
	"fks-execution/pkg/utils"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check a running instance through its health and signal endpoints",
	Args:  cobra.NoArgs,
	RunE:  Probe,
}

func init() {
	probeCmd.Flags().String("target", "http://127.0.0.1:4700", "base URL of the instance to probe")
	probeCmd.Flags().Duration("timeout", 3*time.Second, "timeout per request")
}

func Probe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer log.Sync()

	target, _ := cmd.Flags().GetString("target")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := httpclient.New(target, timeout)
	return runProbe(cmd.Context(), log.With(logger.StringField("target", target)), client)
}

// runProbe hits every endpoint concurrently and fails on the first bad answer.
func runProbe(ctx context.Context, log *logger.Logger, client httpclient.HTTPClient) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)

	var (
		health     dto.Health
		getSignal  dto.Signal
		postSignal dto.Signal
	)

	g.Go(func() error {
		resp, err := client.Get(gctx, "/health", nil, &health)
		if err := checkResponse("GET /health", resp, err); err != nil {
			return err
		}
		if health.Status != service.StatusHealthy {
			return fmt.Errorf("GET /health: status %q", health.Status)
		}
		return nil
	})

	g.Go(func() error {
		resp, err := client.Get(gctx, "/execute/signal", nil, &getSignal)
		return checkResponse("GET /execute/signal", resp, err)
	})

	g.Go(func() error {
		req := dto.SignalRequest{
			Symbol: utils.ToPointer(service.DefaultSymbol),
			Prices: service.DefaultPrices,
		}
		resp, err := client.Post(gctx, "/execute/signal", req, nil, &postSignal)
		return checkResponse("POST /execute/signal", resp, err)
	})

	if err := g.Wait(); err != nil {
		log.Error("Probe failed", logger.ErrorField(err))
		return err
	}

	log.Info("Probe succeeded",
		logger.StringField("service", health.Service),
		logger.Field("get_signal", getSignal),
		logger.Field("post_signal", postSignal),
	)
	return nil
}

func checkResponse(call string, resp *httpclient.BaseResponse, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", call, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", call, resp.StatusCode)
	}
	return nil
}
