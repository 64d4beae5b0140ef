package model

import "testing"

func TestCrawlAggregate_MergeIsIdempotent(t *testing.T) {
	agg := NewCrawlAggregate()
	snap := ChannelCrawl{
		ID:               "crawl-1",
		Status:           StatusProcessing,
		ChannelURL:       "https://youtube.com/@demo",
		TotalVideosFound: 3,
		TotalJobsCreated: 3,
		Jobs: []ChannelJob{
			{JobID: "j1", VideoURL: "v1", Title: "one", Status: StatusQueued},
			{JobID: "j2", VideoURL: "v2", Title: "two", Status: StatusQueued},
			{JobID: "j3", VideoURL: "v3", Title: "three", Status: StatusQueued},
		},
	}

	first := agg.Apply(snap)
	second := agg.Apply(snap)

	if len(first.Jobs) != 3 || len(second.Jobs) != 3 {
		t.Fatalf("expected 3 jobs after both applies, got %d then %d", len(first.Jobs), len(second.Jobs))
	}
	for i := range first.Jobs {
		if first.Jobs[i] != second.Jobs[i] {
			t.Fatalf("re-applied snapshot changed job %d: %#v vs %#v", i, first.Jobs[i], second.Jobs[i])
		}
	}
}

func TestCrawlAggregate_KeepsEntriesMissingFromLaterSnapshots(t *testing.T) {
	agg := NewCrawlAggregate()
	agg.Apply(ChannelCrawl{
		ID:     "crawl-1",
		Status: StatusProcessing,
		Jobs: []ChannelJob{
			{JobID: "j1", Status: StatusQueued},
			{JobID: "j2", Status: StatusQueued},
		},
	})

	// Later poll returns an incomplete list but a newer status for j2.
	view := agg.Apply(ChannelCrawl{
		ID:     "crawl-1",
		Status: StatusProcessing,
		Jobs: []ChannelJob{
			{JobID: "j2", Status: StatusDone},
		},
	})

	if len(view.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(view.Jobs))
	}
	if view.Jobs[0].JobID != "j1" || view.Jobs[1].JobID != "j2" {
		t.Fatalf("first-seen order lost: %#v", view.Jobs)
	}
	if view.Jobs[1].Status != StatusDone {
		t.Fatalf("expected j2 updated to done, got %q", view.Jobs[1].Status)
	}
}

func TestCrawlAggregate_CountsOnlyMoveForward(t *testing.T) {
	agg := NewCrawlAggregate()
	agg.Apply(ChannelCrawl{ID: "c1", Status: StatusProcessing, TotalVideosFound: 5, TotalJobsCreated: 5})
	view := agg.Apply(ChannelCrawl{ID: "c1", Status: StatusProcessing, TotalVideosFound: 2, TotalJobsCreated: 0})

	if view.TotalVideosFound != 5 || view.TotalJobsCreated != 5 {
		t.Fatalf("counts regressed: found=%d created=%d", view.TotalVideosFound, view.TotalJobsCreated)
	}
}

func TestCrawlAggregate_TerminalStatusSticks(t *testing.T) {
	agg := NewCrawlAggregate()
	agg.Apply(ChannelCrawl{ID: "c1", Status: StatusDone})
	view := agg.Apply(ChannelCrawl{ID: "c1", Status: StatusProcessing})

	if view.Status != StatusDone {
		t.Fatalf("terminal crawl status regressed to %q", view.Status)
	}
}

func TestCrawlAggregate_FirstSnapshotAlreadyTerminal(t *testing.T) {
	// A crawl can be rejected before the first poll lands, so the first
	// snapshot the aggregate ever sees may be terminal.
	for _, status := range []string{StatusDone, StatusError} {
		agg := NewCrawlAggregate()
		view := agg.Apply(ChannelCrawl{ID: "c1", Status: status, Error: "channel not found"})
		if view.Status != status {
			t.Fatalf("first terminal snapshot not absorbed: got %q, want %q", view.Status, status)
		}
		if status == StatusError && view.Error != "channel not found" {
			t.Fatalf("error detail lost: %+v", view)
		}
	}
}

func TestChannelCrawl_CountByStatus(t *testing.T) {
	agg := NewCrawlAggregate()
	view := agg.Apply(ChannelCrawl{
		ID:     "c1",
		Status: StatusProcessing,
		Jobs: []ChannelJob{
			{JobID: "j1", Status: StatusQueued},
			{JobID: "j2", Status: StatusDone},
			{JobID: "j3", Status: StatusDone},
		},
	})

	counts := view.CountByStatus()
	if counts[StatusQueued] != 1 || counts[StatusDone] != 2 {
		t.Fatalf("unexpected counts: %#v", counts)
	}
}
