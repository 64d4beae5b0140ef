package model

// CrawlAggregate accumulates crawl snapshots into a consistent view.
// Child jobs are merged by job_id with first-seen order preserved, so a
// snapshot carrying only a prefix of the list never loses earlier
// entries. Re-applying the same snapshot is idempotent.
type CrawlAggregate struct {
	crawl ChannelCrawl
	order []string
	byID  map[string]ChannelJob
}

func NewCrawlAggregate() *CrawlAggregate {
	return &CrawlAggregate{byID: make(map[string]ChannelJob)}
}

// Apply merges one snapshot and returns the aggregate view. Counts only
// move forward and a terminal crawl status is never regressed, which
// tolerates a backend answering reads from stale replicas.
func (a *CrawlAggregate) Apply(snap ChannelCrawl) ChannelCrawl {
	if a.crawl.ID == "" {
		a.crawl.ID = snap.ID
	}
	if snap.ChannelURL != "" {
		a.crawl.ChannelURL = snap.ChannelURL
	}
	if snap.TotalVideosFound > a.crawl.TotalVideosFound {
		a.crawl.TotalVideosFound = snap.TotalVideosFound
	}
	if snap.TotalJobsCreated > a.crawl.TotalJobsCreated {
		a.crawl.TotalJobsCreated = snap.TotalJobsCreated
	}
	if CanTransition(a.crawl.Status, snap.Status) {
		a.crawl.Status = snap.Status
	}
	if snap.Error != "" {
		a.crawl.Error = snap.Error
	}

	for _, job := range snap.Jobs {
		if job.JobID == "" {
			continue
		}
		if _, seen := a.byID[job.JobID]; !seen {
			a.order = append(a.order, job.JobID)
		}
		a.byID[job.JobID] = job
	}

	return a.View()
}

// View returns the current aggregate with jobs in first-seen order.
func (a *CrawlAggregate) View() ChannelCrawl {
	out := a.crawl
	out.Jobs = make([]ChannelJob, 0, len(a.order))
	for _, id := range a.order {
		out.Jobs = append(out.Jobs, a.byID[id])
	}
	return out
}

// CountByStatus tallies child jobs per status for progress rollups.
func (c ChannelCrawl) CountByStatus() map[string]int {
	counts := make(map[string]int, 4)
	for _, job := range c.Jobs {
		counts[job.Status]++
	}
	return counts
}
