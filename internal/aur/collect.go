package aur

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Collect gathers build script, registry metadata and comments for one
// package. The three fetches run concurrently and are all joined before
// returning. Build and comment failures degrade to empty results; a
// metadata failure fails the whole collection.
func (c *Client) Collect(ctx context.Context, packageName string) (Evidence, error) {
	var ev Evidence
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		build, err := c.Pkgbuild(gctx, packageName)
		if err != nil {
			log.Printf("aur: pkgbuild fetch for %s failed, continuing without it: %v", packageName, err)
			return nil
		}
		ev.Build = build
		return nil
	})

	g.Go(func() error {
		metadata, err := c.Metadata(gctx, packageName)
		if err != nil {
			return err
		}
		ev.Metadata = metadata
		return nil
	})

	g.Go(func() error {
		ev.Comments = c.Comments(gctx, packageName)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Evidence{}, err
	}
	return ev, nil
}
