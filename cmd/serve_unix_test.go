//go:build unix

package cmd

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"fks-execution/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runServe(ctx context.Context, a *testApp) <-chan error {
	done := make(chan error, 1)
	go func() { done <- serve(ctx, a.appDep) }()
	return done
}

func TestServe_SIGTERMWithExitOnShutdown(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.API.ExitOnShutdown = true })

	done := runServe(context.Background(), app)
	baseURL := app.waitListening(t)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after SIGTERM")
	}

	assert.Equal(t, 1, app.logs.FilterMessage("shutdown signal received").Len())
	assert.Equal(t, 1, app.logs.FilterMessage("exit_on_shutdown set, exiting").Len())
	assertRefused(t, baseURL)
}

func TestServe_SIGTERMThenIdleAbsorbsSIGINT(t *testing.T) {
	app := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := runServe(ctx, app)
	baseURL := app.waitListening(t)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	require.Eventually(t, func() bool {
		return app.logs.FilterMessage("execution_main_exiting_loop_enter").Len() == 1
	}, 5*time.Second, 5*time.Millisecond)
	assertRefused(t, baseURL)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	idleTicks := app.logs.FilterMessage("idle").Len()
	require.Eventually(t, func() bool {
		return app.logs.FilterMessage("idle").Len() >= idleTicks+2
	}, 2*time.Second, 5*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("serve returned while idling: %v", err)
	default:
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after context cancellation")
	}
}
