package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/tradeapi"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSource builds the configured trade source. The closer releases the
// SQLite handle; it is a no-op for the other sources.
func (a *app) openSource() (journal.Source, io.Closer, error) {
	loc, err := a.cfg.Analytics.Location()
	if err != nil {
		return nil, nil, err
	}

	switch a.cfg.Source.Type {
	case "sqlite":
		j, err := journal.NewSQLite(a.cfg.Source.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		return j, j, nil

	case "csv":
		return journal.CSVFile{Path: a.cfg.Source.CSVPath, Location: loc}, nopCloser{}, nil

	default:
		timeout, err := a.cfg.API.ParseTimeout()
		if err != nil {
			return nil, nil, err
		}
		opts := []tradeapi.Option{
			tradeapi.WithHTTPClient(&http.Client{Timeout: timeout}),
			tradeapi.WithLogger(a.log),
			tradeapi.WithObserver(a.metrics),
			tradeapi.WithLocation(loc),
		}
		if a.cfg.API.Token != "" {
			opts = append(opts, tradeapi.WithToken(a.cfg.API.Token))
		}
		if a.cfg.API.RequestsPerSecond > 0 {
			opts = append(opts, tradeapi.WithRateLimit(a.cfg.API.RequestsPerSecond, a.cfg.API.Burst))
		}
		c, err := tradeapi.New(a.cfg.API.BaseURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		return c, nopCloser{}, nil
	}
}

// snapshot lists every trade of the configured source.
func (a *app) snapshot(ctx context.Context) (journal.Snapshot, error) {
	src, closer, err := a.openSource()
	if err != nil {
		return journal.Snapshot{}, err
	}
	defer closer.Close()

	start := time.Now()
	snap, err := journal.TakeSnapshot(ctx, src)
	if err != nil {
		return journal.Snapshot{}, fmt.Errorf("list trades: %w", err)
	}
	a.metrics.TradesLoaded.WithLabelValues(a.cfg.Source.Type).Set(float64(len(snap.Trades)))
	a.log.Debug("snapshot taken", "source", a.cfg.Source.Type, "id", snap.ID,
		"trades", len(snap.Trades), "elapsed", time.Since(start))
	return snap, nil
}
