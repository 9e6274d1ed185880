package provider

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"pahe/internal/catalog"
	"pahe/internal/httputil"
	"pahe/internal/media"
)

// GetEpisodes returns every episode of the catalog entry at catalogURL,
// walking release pages from the first to the last in order.
func (a *AnimePahe) GetEpisodes(ctx context.Context, catalogURL string) ([]media.Episode, error) {
	page, err := a.fetchPage(ctx, catalogURL)
	if err != nil {
		return nil, err
	}

	title, err := a.extractor.Title(page)
	if err != nil {
		return nil, err
	}
	id, err := a.extractor.CatalogID(page)
	if err != nil {
		return nil, &ResolutionError{Reason: "missing catalog id", URL: catalogURL, Err: err}
	}

	first, err := a.client.FetchReleasePage(ctx, id, 1)
	if err != nil {
		return nil, err
	}

	var episodes []media.Episode
	appendItems := func(items []catalog.ReleaseItem) {
		for _, item := range items {
			episodes = append(episodes, media.Episode{
				Title: fmt.Sprintf("%s Episode %s", title, item.EpisodeLabel()),
				URL:   httputil.BuildURL(catalogURL, item.ID),
			})
		}
	}
	appendItems(first.Items)

	for n := first.CurrentPage + 1; n <= first.LastPage; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := a.client.FetchReleasePage(ctx, id, n)
		if err != nil {
			return nil, err
		}
		appendItems(next.Items)
	}

	logrus.WithFields(logrus.Fields{
		"title":    title,
		"pages":    first.LastPage,
		"episodes": len(episodes),
	}).Debug("resolved episodes")

	if episodes == nil {
		episodes = []media.Episode{}
	}
	return episodes, nil
}
