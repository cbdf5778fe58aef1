package equity

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/strength"
)

// BuildOptions tunes the parallel table builds.
type BuildOptions struct {
	// Workers is the size of the worker pool; <= 0 uses GOMAXPROCS.
	Workers int
	// BatchSize is the number of hands computed between checkpoints;
	// a crash or cancellation loses at most one batch.
	BatchSize int
}

func (o BuildOptions) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o BuildOptions) batchSize() int {
	if o.BatchSize <= 0 {
		return 100000
	}
	return o.BatchSize
}

// Build computes the equity for every canonical street-aware river hand and
// persists the dataset to path, checkpointing after each batch. If a partial
// dataset already exists on disk, hands it covers are skipped, so a
// terminated build resumes from its last checkpoint rather than recomputing.
func Build(ctx context.Context, path string, st *strength.Table, opts BuildOptions, log zerolog.Logger) (*Table, error) {
	table := map[string]float64{}
	if dataset.Exists(path) {
		loaded, err := dataset.LoadEquities(DatasetName, path)
		if err != nil {
			return nil, err
		}
		table = loaded
		log.Info().Int("entries", len(table)).Msg("resuming equity build from checkpoint")
	}

	hands := canonical.Enumerate(riverHandSize, true)
	pending := pendingHands(hands, table)
	log.Info().
		Int("classes", len(hands)).
		Int("pending", len(pending)).
		Msg("building river equity table")

	compute := func(ctx context.Context, hand []deck.Card) (float64, error) {
		return RiverEquity(st, hand)
	}
	if err := buildBatches(ctx, pending, table, compute, opts, path, log); err != nil {
		return nil, err
	}
	return NewTable(table)
}

// pendingHands filters out hands whose keys a resumed checkpoint already
// covers, so a restart never recomputes or duplicates completed work.
func pendingHands[V any](hands [][]deck.Card, done map[string]V) [][]deck.Card {
	pending := make([][]deck.Card, 0, len(hands))
	for _, hand := range hands {
		if _, ok := done[deck.String(hand)]; !ok {
			pending = append(pending, hand)
		}
	}
	return pending
}

// buildBatches maps fn over hands with a fixed worker pool, merging results
// into table and checkpointing to path once per batch. Workers write only
// their private result segment; the merge is single-writer at the batch
// boundary, so there is no fine-grained locking.
func buildBatches[V any](
	ctx context.Context,
	hands [][]deck.Card,
	table map[string]V,
	fn func(context.Context, []deck.Card) (V, error),
	opts BuildOptions,
	path string,
	log zerolog.Logger,
) error {
	batchSize := opts.batchSize()
	workers := opts.workers()

	for start := 0; start < len(hands); start += batchSize {
		end := min(start+batchSize, len(hands))
		batch := hands[start:end]
		results := make([]V, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error {
				for i := w; i < len(batch); i += workers {
					if err := gctx.Err(); err != nil {
						return err
					}
					v, err := fn(gctx, batch[i])
					if err != nil {
						return fmt.Errorf("compute %s: %w", deck.String(batch[i]), err)
					}
					results[i] = v
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, hand := range batch {
			table[deck.String(hand)] = results[i]
		}
		if err := dataset.Save(path, table); err != nil {
			return err
		}
		log.Info().
			Int("completed", len(table)).
			Int("batch", len(batch)).
			Str("path", path).
			Msg("checkpoint")
	}
	return nil
}
