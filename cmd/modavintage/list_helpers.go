package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modavintage/internal/listing"
)

// runList drives a listing controller to completion for one command
// invocation: promote the search term, optionally walk every page, and
// render the result as a table.
func runList[T any](a *app, ctx context.Context, fetch listing.FetchFunc[T], busca string, all bool, header []string, row func(T) []string) error {
	ctrl := listing.New(fetch, a.cfg.PageSize, time.Duration(a.cfg.SearchDebounceMS)*time.Millisecond)
	ctrl.SetSearchInput(busca)
	ctrl.SubmitSearch(ctx)

	if all {
		for {
			snap := ctrl.Snapshot()
			if !snap.HasMore || snap.ErrMessage != "" {
				break
			}
			ctrl.LoadMore(ctx)
		}
	}

	snap := ctrl.Snapshot()
	if snap.ErrMessage != "" {
		return errors.New(snap.ErrMessage)
	}
	if len(snap.Items) == 0 {
		if snap.ActiveSearch != "" {
			fmt.Fprintf(a.out, "Nenhum resultado para %q.\n", snap.ActiveSearch)
		} else {
			fmt.Fprintln(a.out, "Nenhum registro.")
		}
		return nil
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, item := range snap.Items {
		rows = append(rows, row(item))
	}
	a.table(header, rows)
	if snap.HasMore {
		fmt.Fprintln(a.out, "… há mais páginas (repita com -all para carregar tudo)")
	}
	return nil
}
