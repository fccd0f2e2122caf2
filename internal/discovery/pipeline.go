package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ddddgit/KOL/internal/youtube"
)

// Pipeline wires the discovery stages together over a Finder and a sink.
// Stages run sequentially: collect, dedup, cheap filter, cap, enrich, write.
type Pipeline struct {
	finder Finder
	sink   RecordSink
	opts   Options
	log    *logrus.Logger
}

// Summary reports what a discovery run produced.
type Summary struct {
	Discovered int      // unique candidates after dedup
	Eligible   int      // candidates that passed the cheap filter
	Records    []Record // finalized rows, in discovery order
}

// New builds a pipeline, validating the options first.
func New(finder Finder, sink RecordSink, opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Pipeline{finder: finder, sink: sink, opts: opts, log: log}, nil
}

// Run executes the pipeline for the given keywords and appends every
// finalized record to the sink. Per-keyword and per-candidate failures are
// logged and skipped; only sink failures and cancellation abort the run.
func (p *Pipeline) Run(ctx context.Context, kws []string) (Summary, error) {
	candidates := p.collect(ctx, kws)
	eligible := p.filter(ctx, candidates)
	records := p.enrich(ctx, p.truncate(eligible))

	summary := Summary{
		Discovered: len(candidates),
		Eligible:   len(eligible),
		Records:    records,
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	for _, rec := range records {
		if err := p.sink.Append(rec); err != nil {
			return summary, fmt.Errorf("failed to write record for channel %s: %w", rec.Profile.ID, err)
		}
	}

	return summary, nil
}

// collect searches every keyword and merges the results into one candidate
// list, first seen first. A failing keyword contributes nothing.
func (p *Pipeline) collect(ctx context.Context, kws []string) []string {
	seen := make(map[string]bool)
	var candidates []string

	for _, kw := range kws {
		if ctx.Err() != nil {
			break
		}

		ids, err := p.finder.SearchChannelIDs(ctx, kw)
		if err != nil {
			p.log.WithField("keyword", kw).WithError(err).Warn("keyword search failed, skipping it")
			continue
		}

		added := 0
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			candidates = append(candidates, id)
			added++
		}

		p.log.WithFields(logrus.Fields{
			"keyword": kw,
			"found":   len(ids),
			"new":     added,
		}).Debug("keyword searched")
	}

	return candidates
}

// filter fetches profiles with batched lookups and keeps the candidates that
// meet the subscriber minimum and country filter, in discovery order.
// Candidates whose profile lookup fails are dropped and do not consume cap.
func (p *Pipeline) filter(ctx context.Context, candidates []string) []youtube.Profile {
	if len(candidates) == 0 {
		return nil
	}

	profiles, err := p.finder.ChannelProfiles(ctx, candidates)
	if err != nil {
		p.log.WithError(err).Warn("some profile lookups failed, those candidates are dropped")
	}

	var eligible []youtube.Profile
	for _, id := range candidates {
		profile, ok := profiles[id]
		if !ok {
			p.log.WithField("channel", id).Debug("no profile returned, dropping candidate")
			continue
		}
		if p.keep(profile) {
			eligible = append(eligible, profile)
		}
	}

	return eligible
}

// keep applies the cheap filters to one profile.
func (p *Pipeline) keep(profile youtube.Profile) bool {
	if profile.Subscribers < p.opts.MinSubscribers {
		return false
	}
	if p.opts.Country != "" && !strings.EqualFold(profile.Country, p.opts.Country) {
		return false
	}
	return true
}

// truncate caps the eligible list at MaxChannels entries. It only ever
// shortens the list.
func (p *Pipeline) truncate(eligible []youtube.Profile) []youtube.Profile {
	if p.opts.MaxChannels > 0 && len(eligible) > p.opts.MaxChannels {
		p.log.WithFields(logrus.Fields{
			"eligible": len(eligible),
			"cap":      p.opts.MaxChannels,
		}).Info("channel cap reached, truncating")
		return eligible[:p.opts.MaxChannels]
	}
	return eligible
}

// enrich resolves each candidate's latest upload sequentially, then fills in
// dates and view counts with one batched stats pass. A failed or empty
// lookup leaves the publication fields zero instead of dropping the channel.
func (p *Pipeline) enrich(ctx context.Context, eligible []youtube.Profile) []Record {
	records := make([]Record, 0, len(eligible))
	var videoIDs []string

	for _, profile := range eligible {
		if ctx.Err() != nil {
			break
		}

		rec := Record{Profile: profile, URL: channelURL(profile.ID)}

		videoID, err := p.finder.LatestUploadID(ctx, profile.ID)
		switch {
		case err != nil:
			p.log.WithField("channel", profile.ID).WithError(err).Warn("latest upload lookup failed, fields left empty")
		case videoID == "":
			p.log.WithField("channel", profile.ID).Debug("channel has no uploads")
		default:
			rec.VideoID = videoID
			videoIDs = append(videoIDs, videoID)
		}

		records = append(records, rec)
	}

	if len(videoIDs) == 0 {
		return records
	}

	stats, err := p.finder.VideoStats(ctx, videoIDs)
	if err != nil {
		p.log.WithError(err).Warn("some video stat lookups failed, those fields are left empty")
	}

	for i := range records {
		if records[i].VideoID == "" {
			continue
		}
		if s, ok := stats[records[i].VideoID]; ok {
			records[i].VideoDate = s.PublishedAt
			records[i].VideoViews = s.Views
			records[i].HasVideo = true
		}
	}

	return records
}
