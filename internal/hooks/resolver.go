package hooks

import (
	"context"
	"fmt"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/log"
)

// SharedSource turns a shared repository list into hook items.
type SharedSource interface {
	// Materialize returns the items for trigger from every repository in
	// list (comma or newline separated URLs).
	Materialize(ctx context.Context, list, trigger string, origin Origin) ([]Item, error)
}

// Resolver builds execution plans for one repository.
type Resolver struct {
	Repo   Repo
	Config config.Store
	Shared SharedSource // nil disables both shared stages
}

// NewResolver creates a Resolver.
func NewResolver(repo Repo, store config.Store, shared SharedSource) *Resolver {
	return &Resolver{Repo: repo, Config: store, Shared: shared}
}

// Resolve returns the plan for trigger: legacy, shared-global, shared-local
// and local stages in that order. Missing sources produce empty stages.
func (r *Resolver) Resolve(ctx context.Context, trigger string) (Plan, error) {
	l := log.FromContext(ctx)

	if !IsKnownTrigger(trigger) {
		if s := SuggestTrigger(trigger); s != "" {
			l.Warn("unknown git hook name", "trigger", trigger, "did_you_mean", s)
		} else {
			l.Warn("unknown git hook name", "trigger", trigger)
		}
	}

	plan := Plan{Trigger: trigger}
	for _, origin := range Origins {
		stage, err := r.stage(ctx, trigger, origin)
		if err != nil {
			return Plan{}, err
		}
		plan.Stages = append(plan.Stages, stage)
	}

	l.Debug("resolved plan", "trigger", trigger, "items", plan.Len())
	return plan, nil
}

func (r *Resolver) stage(ctx context.Context, trigger string, origin Origin) (Stage, error) {
	switch origin {
	case OriginLegacy:
		stage := Stage{Origin: origin}
		if item, ok := Legacy(r.Repo.HooksDir, trigger); ok {
			stage.Items = append(stage.Items, item)
		}
		return stage, nil
	case OriginSharedGlobal, OriginSharedLocal:
		return r.sharedStage(ctx, trigger, origin)
	default:
		items, err := Discover(HooksRoot(r.Repo.Root), trigger, origin)
		if err != nil {
			return Stage{}, err
		}
		return Stage{Origin: origin, Items: items}, nil
	}
}

func (r *Resolver) sharedStage(ctx context.Context, trigger string, origin Origin) (Stage, error) {
	stage := Stage{Origin: origin}
	if r.Shared == nil {
		return stage, nil
	}

	var list string
	switch origin {
	case OriginSharedGlobal:
		v, ok, err := r.Config.Get(ctx, config.Global, config.KeyShared)
		if err != nil {
			return stage, fmt.Errorf("failed to read shared repository list: %w", err)
		}
		if ok {
			list = v
		}
	default:
		v, err := LocalSharedList(r.Repo.Root)
		if err != nil {
			// A broken list file must not block the commit; its hooks are just absent.
			log.FromContext(ctx).Warn("ignoring local shared list", "error", err)
			return stage, nil
		}
		list = v
	}
	if list == "" {
		return stage, nil
	}

	items, err := r.Shared.Materialize(ctx, list, trigger, origin)
	if err != nil {
		return stage, err
	}
	stage.Items = items
	return stage, nil
}
