package shared

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/lock"
	"github.com/raphi011/githooks/internal/log"
)

// Client performs the git operations a mirror needs.
type Client interface {
	Clone(ctx context.Context, url, dest string) error
	Pull(ctx context.Context, dir string) error
	OriginURL(ctx context.Context, dir string) (string, error)
}

// Resolver maintains mirrors under CacheDir and implements hooks.SharedSource.
// A Resolver lives for one invocation; each mirror is refreshed at most once.
type Resolver struct {
	CacheDir string
	Retries  int // extra attempts after a failed clone or pull
	Client   Client

	// InitialInterval is the first retry delay.
	InitialInterval time.Duration

	// Offline skips the refresh on the refresh trigger. Used for listing.
	Offline bool

	refreshed map[string]error
}

// NewResolver creates a Resolver.
func NewResolver(cacheDir string, retries int, client Client) *Resolver {
	return &Resolver{
		CacheDir:        cacheDir,
		Retries:         retries,
		Client:          client,
		InitialInterval: 500 * time.Millisecond,
		refreshed:       make(map[string]error),
	}
}

// MirrorDir returns the mirror location of e.
func (r *Resolver) MirrorDir(e Entry) string {
	return filepath.Join(r.CacheDir, e.Name)
}

// Materialize returns the hooks for trigger from every repository in list.
// On the refresh trigger the mirrors are updated first. Fetch failures and
// unusable mirrors are logged and skipped; they never fail the run.
func (r *Resolver) Materialize(ctx context.Context, list, trigger string, origin hooks.Origin) ([]hooks.Item, error) {
	l := log.FromContext(ctx)
	entries := ParseList(list)

	if trigger == hooks.RefreshTrigger && !r.Offline {
		for _, e := range entries {
			if err := r.refresh(ctx, e); err != nil {
				l.Warn("shared repository update failed", "url", e.URL, "error", err)
			}
		}
	}

	var items []hooks.Item
	for _, e := range entries {
		dir, ok := r.usableMirror(ctx, e)
		if !ok {
			continue
		}
		found, err := hooks.Discover(DiscoveryRoot(dir), trigger, origin)
		if err != nil {
			l.Warn("cannot read shared hooks", "url", e.URL, "error", err)
			continue
		}
		items = append(items, found...)
	}
	return items, nil
}

// Result reports the outcome of refreshing one entry.
type Result struct {
	Entry Entry
	Err   error
}

// Update refreshes every repository in list regardless of trigger.
func (r *Resolver) Update(ctx context.Context, list string) []Result {
	var results []Result
	for _, e := range ParseList(list) {
		results = append(results, Result{Entry: e, Err: r.refresh(ctx, e)})
	}
	return results
}

// usableMirror returns the mirror directory of e if it exists and was cloned
// from e.URL.
func (r *Resolver) usableMirror(ctx context.Context, e Entry) (string, bool) {
	l := log.FromContext(ctx)
	dir := r.MirrorDir(e)
	if _, err := os.Stat(dir); err != nil {
		l.Debug("shared mirror not present", "url", e.URL, "dir", dir)
		return "", false
	}
	url, err := r.Client.OriginURL(ctx, dir)
	if err != nil {
		l.Warn("shared mirror has no origin, not using it", "dir", dir, "error", err)
		return "", false
	}
	if !sameRemote(url, e.URL) {
		l.Warn("shared mirror belongs to another url, not using it", "dir", dir, "origin", url, "declared", e.URL)
		return "", false
	}
	return dir, true
}

// refresh pulls or clones the mirror of e, once per Resolver.
func (r *Resolver) refresh(ctx context.Context, e Entry) error {
	if r.refreshed == nil {
		r.refreshed = make(map[string]error)
	}
	if err, done := r.refreshed[e.Name]; done {
		return err
	}

	err := lock.With(ctx, filepath.Join(r.CacheDir, e.Name+".lock"), func() error {
		return r.retry(ctx, e, func() error { return r.fetch(ctx, e) })
	})
	r.refreshed[e.Name] = err
	return err
}

func (r *Resolver) fetch(ctx context.Context, e Entry) error {
	dir := r.MirrorDir(e)
	_, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r.Client.Clone(ctx, e.URL, dir)
	case err != nil:
		return backoff.Permanent(err)
	}

	url, err := r.Client.OriginURL(ctx, dir)
	if err != nil {
		return err
	}
	if !sameRemote(url, e.URL) {
		return backoff.Permanent(fmt.Errorf("mirror %s was cloned from %s", dir, url))
	}
	return r.Client.Pull(ctx, dir)
}

func (r *Resolver) retry(ctx context.Context, e Entry, op func() error) error {
	retries := r.Retries
	if retries < 0 {
		retries = 0
	}
	b := backoff.NewExponentialBackOff(backoff.WithInitialInterval(r.InitialInterval))
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}, policy, func(err error, next time.Duration) {
		log.FromContext(ctx).Debug("retrying shared repository fetch", "url", e.URL, "in", next, "error", err)
	})
}

// DiscoveryRoot returns where hooks live inside a mirror.
func DiscoveryRoot(mirror string) string {
	sub := filepath.Join(mirror, hooks.Dir)
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		return sub
	}
	return mirror
}
