package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"any2text/internal/api"
	"any2text/internal/model"
	"any2text/internal/poll"
)

func jobWatcher(client *api.Client, interval time.Duration) poll.Watcher {
	return poll.Watcher{
		Fetch:    client.GetJob,
		Interval: interval,
	}
}

type jobSnapshotMsg struct {
	job model.Job
}

type jobDoneMsg struct {
	job model.Job
	err error
}

type transientMsg struct {
	err error
}

// jobWatchModel renders a single job while a background goroutine polls
// the backend and feeds snapshots in through Program.Send.
type jobWatchModel struct {
	jobID   string
	job     model.Job
	started time.Time
	polls   int
	lastErr error
	final   bool
}

func newJobWatchModel(jobID string) jobWatchModel {
	return jobWatchModel{jobID: jobID, started: time.Now()}
}

func (m jobWatchModel) Init() tea.Cmd {
	return nil
}

func (m jobWatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case jobSnapshotMsg:
		m.job = msg.job
		m.polls++
		m.lastErr = nil
	case transientMsg:
		m.lastErr = msg.err
	case jobDoneMsg:
		if msg.job.ID != "" {
			m.job = msg.job
		}
		m.final = true
		return m, tea.Quit
	}
	return m, nil
}

func (m jobWatchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("any2text watch"))
	b.WriteString("\n\n")

	status := m.job.Status
	if status == "" {
		status = model.StatusQueued
	}
	lines := []string{
		fmt.Sprintf("job     %s", m.jobID),
		fmt.Sprintf("status  %s", statusBadge(status)),
	}
	if m.job.Title != "" {
		lines = append(lines, fmt.Sprintf("title   %s", m.job.Title))
	}
	switch src := m.job.Source().(type) {
	case model.YouTubeVideo:
		if src.URL != "" {
			lines = append(lines, fmt.Sprintf("source  %s", src.URL))
		}
	case model.UploadedFile:
		if src.FileKey != "" {
			lines = append(lines, fmt.Sprintf("source  %s", src.FileKey))
		}
	}
	if m.job.Error != "" {
		lines = append(lines, fmt.Sprintf("error   %s", errorStyle.Render(m.job.Error)))
	}
	b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n\n")

	if m.job.Result != nil && m.job.Result.Text != "" {
		preview := m.job.Result.Text
		if len(preview) > 280 {
			preview = truncate(preview, 280) + "..."
		}
		b.WriteString(preview)
		b.WriteString("\n\n")
	}

	elapsed := time.Since(m.started).Round(time.Second)
	footer := fmt.Sprintf("%d updates, %s elapsed", m.polls, elapsed)
	if m.lastErr != nil {
		footer += "  retrying: " + m.lastErr.Error()
	}
	if !m.final {
		footer += "  (q to stop watching)"
	}
	b.WriteString(mutedStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func followJobTUI(ctx context.Context, client *api.Client, jobID string, interval time.Duration) (model.Job, error) {
	p := tea.NewProgram(newJobWatchModel(jobID))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		job model.Job
		err error
	}
	resCh := make(chan outcome, 1)

	go func() {
		w := jobWatcher(client, interval)
		w.OnTransient = func(err error) {
			p.Send(transientMsg{err: err})
		}
		final, err := w.Watch(watchCtx, jobID, func(j model.Job) {
			p.Send(jobSnapshotMsg{job: j})
		})
		resCh <- outcome{job: final, err: err}
		p.Send(jobDoneMsg{job: final, err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		res := <-resCh
		return res.job, err
	}
	// Quitting the view cancels polling; the job keeps running
	// server-side and can be watched again.
	cancel()
	res := <-resCh
	return res.job, nil
}
