package main

import (
	"context"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/git"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/shared"
	"github.com/raphi011/githooks/internal/trust"
	"github.com/raphi011/githooks/internal/ui/prompt"
)

// pipeline bundles the collaborators of one repository.
type pipeline struct {
	repo     hooks.Repo
	settings *config.Settings
	config   config.Store
	shared   *shared.Resolver
	resolver *hooks.Resolver
	store    *trust.Store
	decider  *trust.Decider
}

// openPipeline locates the repository around the working directory and wires
// the resolver and trust store for it. Prompts go to the controlling terminal.
func openPipeline(ctx context.Context) (*pipeline, error) {
	repo, err := hooks.Locate(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return nil, err
	}
	settings := config.SettingsFromContext(ctx)

	store := config.NewGitStore(repo.Root)
	sharedResolver := shared.NewResolver(settings.Shared.CacheDir, settings.Shared.Retries, git.Client{})
	checksums := trust.OpenStore(ctx, repo.GitDir)

	return &pipeline{
		repo:     repo,
		settings: settings,
		config:   store,
		shared:   sharedResolver,
		resolver: hooks.NewResolver(repo, store, sharedResolver),
		store:    checksums,
		decider:  trust.NewDecider(repo.Root, checksums, store, prompt.NewTTYPrompter()),
	}, nil
}

// sharedLists returns the global and the repository-local shared lists.
func (p *pipeline) sharedLists(ctx context.Context) (global, local string, err error) {
	global, _, err = p.config.Get(ctx, config.Global, config.KeyShared)
	if err != nil {
		return "", "", err
	}
	local, err = hooks.LocalSharedList(p.repo.Root)
	if err != nil {
		return "", "", err
	}
	return global, local, nil
}
