package daemon_test

import (
	"context"
	"testing"

	"cinebot/internal/daemon"
	"cinebot/internal/testsupport"
)

func TestDaemonLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	d, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	defer d.Close()

	if d.Service() == nil {
		t.Fatal("daemon must expose the facade")
	}

	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !d.Status().Running {
		t.Fatal("status must report running after Start")
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start must fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("status must report stopped after Stop")
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	defer first.Close()
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// The cache db file is exclusively locked by the first instance, so the
	// second one runs with the in-memory cache only.
	secondCfg := *cfg
	secondCfg.Cache.PersistenceEnabled = false
	second, err := daemon.New(&secondCfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	defer second.Close()
	if err := second.Start(context.Background()); err == nil {
		t.Fatal("second instance must not acquire the lock")
	}

	first.Stop()
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("lock must be free after Stop: %v", err)
	}
}
