package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/foodtruckfinder/internal/cli/pagination"
	"github.com/rshade/foodtruckfinder/internal/engine/batch"
	"github.com/rshade/foodtruckfinder/internal/foodtruck"
	"github.com/rshade/foodtruckfinder/internal/logging"
	"github.com/rshade/foodtruckfinder/internal/tui"
)

// Messages shown instead of a table.
const (
	msgNoneOpen = "No food trucks are open right now."
	msgNoMore   = "No more open food trucks."
)

// Pager hands out pages of open trucks. engine.Session implements it.
type Pager interface {
	NextPage(ctx context.Context) ([]foodtruck.Truck, error)
	PageSize() int
	Progress() batch.Progress
}

// BrowseOptions controls the interactive loop.
type BrowseOptions struct {
	// Now is shown in the caption above the first page.
	Now foodtruck.Moment
	// Display selects the per-page sort. Nil keeps upstream order.
	Display *pagination.DisplayParams
	// Sorter orders pages when Display asks for it.
	Sorter pagination.Sorter
	// EchoNewline ends each answered prompt with a newline. Set it when the
	// answers are piped rather than typed.
	EchoNewline bool
}

// BrowseSummary reports what a browse session did.
type BrowseSummary struct {
	Pages   int
	Trucks  int
	Scanned int
	Fetches int
	// MatchRate is the fraction of scanned records that were open.
	MatchRate float64
	// Elapsed is the time since the pager started scanning.
	Elapsed time.Duration
}

// Browse shows pages from pager until the user declines, input ends, or a
// page comes back short. A prompt follows only pages that are exactly full.
// The summary is filled in even when an error ends the session.
func Browse(
	ctx context.Context,
	pager Pager,
	renderer *tui.TableRenderer,
	opts BrowseOptions,
	in io.Reader,
	out io.Writer,
) (BrowseSummary, error) {
	var summary BrowseSummary
	err := browse(ctx, pager, renderer, opts, in, out, &summary)

	p := pager.Progress()
	summary.Scanned = p.RecordsScanned
	summary.Fetches = p.Fetches
	summary.MatchRate = p.MatchRate()
	summary.Elapsed = p.ElapsedTime()
	return summary, err
}

func browse(
	ctx context.Context,
	pager Pager,
	renderer *tui.TableRenderer,
	opts BrowseOptions,
	in io.Reader,
	out io.Writer,
	summary *BrowseSummary,
) error {
	log := logging.FromContext(ctx).With().
		Str("component", "cli").
		Str("operation", "browse").
		Logger()

	if opts.Display == nil {
		opts.Display = pagination.NewDisplayParams()
	}
	if opts.Sorter == nil {
		opts.Sorter = pagination.NewTruckSorter()
	}

	render := renderer.Options()
	log.Debug().Ctx(ctx).
		Str("format", render.Format).
		Bool("row_numbers", render.RowNumbers).
		Int("page_size", pager.PageSize()).
		Msg("browse started")

	if err := renderer.Caption(out, "Open now: "+opts.Now.String()); err != nil {
		return err
	}

	scanner := NewTokenScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("loading page %d: %w", summary.Pages+1, err)
		}

		if len(page) == 0 {
			msg := msgNoMore
			if summary.Pages == 0 {
				msg = msgNoneOpen
			}
			return renderer.Info(out, msg)
		}

		page = opts.Display.Apply(opts.Sorter, page)
		if err = renderer.Render(out, page); err != nil {
			return err
		}
		summary.Pages++
		summary.Trucks += len(page)

		meta := pagination.NewPageMeta(summary.Pages, pager.PageSize(), len(page))
		log.Debug().Ctx(ctx).
			Int("page", meta.Number).
			Int("items", meta.Items).
			Int("first_index", meta.FirstIndex).
			Int("last_index", meta.LastIndex()).
			Bool("has_next", meta.HasNext).
			Msg("page displayed")

		if !meta.HasNext {
			return nil
		}

		answer, err := PromptMore(out, scanner)
		if err != nil {
			return err
		}
		if opts.EchoNewline {
			if _, err = fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if !answer.Accepted {
			log.Debug().Ctx(ctx).Int("prompts", answer.Attempts).Msg("user stopped browsing")
			return nil
		}
	}
}

// PrintSummary writes a one-line account of the session with grouped digits.
func PrintSummary(w io.Writer, s BrowseSummary) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "Scanned %d records, shown %d trucks on %d pages\n",
		s.Scanned, s.Trucks, s.Pages)
	return err
}
