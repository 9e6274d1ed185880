package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"pahe/internal/media"
	"pahe/internal/quality"
)

// GetQualities resolves the qualities offered by the first supported
// provider on the episode page at episodeURL. Only that provider's embed
// data is fetched.
func (a *AnimePahe) GetQualities(ctx context.Context, episodeURL string) (*media.QualityMap, error) {
	page, err := a.fetchPage(ctx, episodeURL)
	if err != nil {
		return nil, err
	}

	servers := a.extractor.ProviderNameList(page)
	session, err := a.extractor.ProviderSession(page)
	if err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		return nil, &ResolutionError{Reason: "no servers found", URL: episodeURL}
	}

	for _, server := range servers {
		if !a.supported(server) {
			logrus.WithField("server", server).Debug("skipping unsupported server")
			continue
		}

		sources, err := a.client.FetchEmbedData(ctx, server, session.EpisodeID, session.Token)
		if err != nil {
			return nil, err
		}

		q := media.NewQualityMap()
		for _, src := range sources {
			q.Set(media.Stream{Quality: src.Quality + "p", URL: src.URL})
		}
		logrus.WithFields(logrus.Fields{
			"server":    server,
			"qualities": q.Labels(),
		}).Debug("resolved qualities")

		return a.formatter.Format(q, quality.Context{Extractor: server, Referer: episodeURL}), nil
	}

	return nil, &ResolutionError{Reason: "no supported servers", URL: episodeURL}
}
