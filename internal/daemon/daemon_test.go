package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"linkarr/internal/testsupport"
)

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestRunPerformsImmediatePass(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := filepath.Join(cfg.Paths.SourceDir, "Movie.Name.2020.mkv")
	testsupport.WriteFile(t, source)

	d, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	go func() {
		defer wg.Done()
		runErr = d.Run(ctx)
	}()

	link := filepath.Join(cfg.MoviesRoot(), "Movie Name (2020)", "Movie Name (2020).mkv")
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Lstat(link); err == nil {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			wg.Wait()
			t.Fatalf("immediate pass never provisioned %s (run err: %v)", link, runErr)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	wg.Wait()
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
}

func TestRunRefusesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	d, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Hold the lock the way a first instance would.
	holder := flock.New(d.LockPath())
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("seed lock: ok=%v err=%v", ok, err)
	}
	defer func() {
		if err := holder.Unlock(); err != nil {
			t.Errorf("release seed lock: %v", err)
		}
	}()

	err = d.Run(context.Background())
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("err = %v, want ErrAlreadyRunning", err)
	}
}
