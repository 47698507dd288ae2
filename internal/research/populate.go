package research

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/esg-research/internal/model"
)

// Filler researches one scope by writing into rec. The filler owns rec
// exclusively until it returns.
type Filler func(ctx context.Context, rec model.Record) error

// Populate runs one filler per scope concurrently, at most limit at a time
// (limit <= 0 means no bound). Each filler works on a private copy of its
// scope's record; copies from fillers that succeed replace the matching
// sub-record of scopes once all fillers have returned. Failed scopes are
// left untouched and their errors are joined into the returned error.
func Populate(ctx context.Context, scopes *model.ResearchScopes, fillers map[model.Scope]Filler, limit int) error {
	if scopes == nil {
		return eris.New("research: populate into nil checklist")
	}

	var order []model.Scope
	for _, scope := range model.Scopes {
		if fillers[scope] != nil {
			order = append(order, scope)
		}
	}
	if len(order) != len(fillers) {
		for scope := range fillers {
			if _, err := model.ParseScope(string(scope)); err != nil {
				return eris.Wrap(err, "research: populate")
			}
		}
		return eris.New("research: populate with nil filler")
	}

	work := make([]model.ResearchScopes, len(order))
	errs := make([]error, len(order))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, scope := range order {
		work[i] = scopes.Clone()
		fill := fillers[scope]
		g.Go(func() error {
			log := zap.L().With(zap.String("scope", string(scope)))
			if err := ctx.Err(); err != nil {
				errs[i] = eris.Wrapf(err, "research: %s", scope)
				return nil
			}

			start := time.Now()
			rec, _ := work[i].Record(scope)
			if err := fill(ctx, rec); err != nil {
				errs[i] = eris.Wrapf(err, "research: fill %s", scope)
				log.Warn("scope research failed", zap.Error(err))
				return nil
			}
			log.Debug("scope research complete", zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for i, scope := range order {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		rec, _ := work[i].Record(scope)
		if err := scopes.Put(rec); err != nil {
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}
