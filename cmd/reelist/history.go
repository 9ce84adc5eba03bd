package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/events"
)

// historyEntry is the JSON shape of `reelist history`.
type historyEntry struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		entity string
		id     int64
		since  time.Duration
		prune  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent favorite and search events",
		Long: `Show recent favorite and search events, newest first.

Examples:
  reelist history
  reelist history --entity movie -n 50
  reelist history --since 24h
  reelist history --id 603
  reelist history --entity search --id 1
  reelist history --prune 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.memory {
				return errors.New("history is not kept with --memory")
			}
			if entity != "" && entity != events.EntityMovie && entity != events.EntitySearch {
				return fmt.Errorf("invalid --entity %q: must be movie or search", entity)
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if prune > 0 {
					n, err := a.eventLog.Prune(ctx, prune)
					if err != nil {
						return fmt.Errorf("prune history: %w", err)
					}
					if !a.json {
						fmt.Fprintf(a.out, "Pruned %d events older than %s\n", n, prune)
					}
					return nil
				}

				raw, err := queryHistory(ctx, a.eventLog, entity, id, since, limit)
				if err != nil {
					return fmt.Errorf("failed to fetch events: %w", err)
				}

				entries := decodeHistory(a, raw)
				if a.json {
					printJSON(a.out, entries)
					return nil
				}

				if len(entries) == 0 {
					fmt.Fprintln(a.out, "No events")
					return nil
				}

				now := time.Now()
				fmt.Fprintf(a.out, "Recent Events (%d):\n\n", len(entries))
				fmt.Fprintf(a.out, "  %-12s %-20s %-14s %s\n", "TIME", "TYPE", "ENTITY", "DETAIL")
				fmt.Fprintln(a.out, "  "+strings.Repeat("-", 70))
				for _, e := range entries {
					fmt.Fprintf(a.out, "  %-12s %-20s %-14s %s\n",
						formatTimeAgo(e.OccurredAt, now), e.Type,
						fmt.Sprintf("%s/%d", e.EntityType, e.EntityID), e.Detail)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	cmd.Flags().StringVar(&entity, "entity", "", "Only events for this entity: movie or search")
	cmd.Flags().Int64Var(&id, "id", 0, "All events of one entity (a movie id, or a search generation)")
	cmd.Flags().DurationVar(&since, "since", 0, "All events newer than this, ignoring --limit")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Delete events older than this instead of listing")
	return cmd
}

// queryHistory returns events newest first. --id wins over --since, which
// wins over the plain --limit listing.
func queryHistory(ctx context.Context, log *events.EventLog, entity string, id int64, since time.Duration, limit int) ([]events.RawEvent, error) {
	var (
		raw []events.RawEvent
		err error
	)
	switch {
	case id != 0:
		if entity == "" {
			entity = events.EntityMovie
		}
		raw, err = log.ForEntity(ctx, entity, id)
	case since > 0:
		raw, err = log.Since(ctx, time.Now().Add(-since))
		if entity != "" {
			raw = slices.DeleteFunc(raw, func(r events.RawEvent) bool { return r.EntityType != entity })
		}
	default:
		return log.Recent(ctx, entity, limit)
	}
	if err != nil {
		return nil, err
	}
	slices.Reverse(raw)
	return raw, nil
}

func decodeHistory(a *app, raw []events.RawEvent) []historyEntry {
	registry := events.DefaultRegistry()
	entries := make([]historyEntry, 0, len(raw))

	for _, r := range raw {
		entry := historyEntry{
			ID:         r.ID,
			Type:       r.EventType,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			OccurredAt: r.OccurredAt,
		}
		e, err := registry.Unmarshal(r)
		if err != nil {
			a.log.Debug("skipping event detail", "id", r.ID, "error", err)
		} else {
			entry.Detail = describeEvent(e)
		}
		entries = append(entries, entry)
	}
	return entries
}

func describeEvent(e events.Event) string {
	switch ev := e.(type) {
	case *events.FavoriteAdded:
		return fmt.Sprintf("added %q (%d total)", ev.Title, ev.Total)
	case *events.FavoriteRemoved:
		return fmt.Sprintf("removed (%d total)", ev.Total)
	case *events.SearchDispatched:
		if ev.Listing {
			return "trending listing" + sessionTag(ev.Session)
		}
		return fmt.Sprintf("query %q", ev.Query) + sessionTag(ev.Session)
	case *events.SearchApplied:
		return fmt.Sprintf("%d results for %q", ev.Results, ev.Query)
	case *events.SearchDiscarded:
		return fmt.Sprintf("%s result for %q dropped", ev.Reason, ev.Query)
	case *events.SearchFailed:
		return fmt.Sprintf("%q: %s", ev.Query, ev.Error)
	default:
		return ""
	}
}

func sessionTag(id string) string {
	if len(id) < 8 {
		return ""
	}
	return " [" + id[:8] + "]"
}
