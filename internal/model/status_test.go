package model

import "testing"

func TestCanTransition_AllowsExpectedPaths(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{"", StatusQueued},
		{StatusQueued, StatusProcessing},
		{StatusQueued, StatusDone},
		{StatusQueued, StatusError},
		{StatusProcessing, StatusDone},
		{StatusProcessing, StatusError},
		{StatusDone, StatusDone},
		{StatusError, StatusError},
	}

	for _, tc := range cases {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_RejectsLeavingTerminalStates(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{StatusDone, StatusQueued},
		{StatusDone, StatusProcessing},
		{StatusDone, StatusError},
		{StatusError, StatusQueued},
		{StatusError, StatusProcessing},
		{StatusError, StatusDone},
		{StatusProcessing, StatusQueued},
		{"not_a_state", StatusQueued},
	}

	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be rejected", tc.from, tc.to)
		}
	}
}

func TestTransitionJobStatus_BlocksIllegalTransition(t *testing.T) {
	job := Job{ID: "job-1", Status: StatusDone}

	if err := TransitionJobStatus(&job, StatusProcessing); err == nil {
		t.Fatalf("expected illegal transition error")
	}
	if job.Status != StatusDone {
		t.Fatalf("status mutated on rejected transition: %q", job.Status)
	}
}

func TestTransitionSequences_NeverLeaveTerminal(t *testing.T) {
	statuses := []string{StatusQueued, StatusProcessing, StatusDone, StatusError}

	// Walk every status pair chain of length three; once a terminal state
	// is reached no further move may be legal except the self-loop.
	for _, a := range statuses {
		for _, b := range statuses {
			for _, c := range statuses {
				if !CanTransition(a, b) || !CanTransition(b, c) {
					continue
				}
				if IsTerminal(b) && c != b {
					t.Fatalf("terminal %q escaped to %q (path %q -> %q -> %q)", b, c, a, b, c)
				}
			}
		}
	}
}

func TestJobSource_TaggedByOrigin(t *testing.T) {
	yt := Job{ID: "j1", YouTubeURL: "https://www.youtube.com/watch?v=abc", FileKey: "youtube/j1.mp3"}
	if _, ok := yt.Source().(YouTubeVideo); !ok {
		t.Fatalf("expected YouTubeVideo source, got %#v", yt.Source())
	}

	up := Job{ID: "j2", FileKey: "uploads/a.mp3"}
	src, ok := up.Source().(UploadedFile)
	if !ok {
		t.Fatalf("expected UploadedFile source, got %#v", up.Source())
	}
	if src.FileKey != "uploads/a.mp3" {
		t.Fatalf("unexpected file key %q", src.FileKey)
	}
}

func TestSetArtifact_DoesNotTouchResult(t *testing.T) {
	job := Job{
		ID:     "j1",
		Status: StatusDone,
		Result: &Result{Text: "hello world"},
	}
	job.SetArtifact(Action{ID: "a1", Kind: ArtifactDialogue, ParentJobID: "j1", Status: StatusQueued})
	job.SetArtifact(Action{ID: "a2", Kind: ArtifactGeneratedImg, ParentJobID: "j1", Status: StatusQueued})

	if job.Result.Text != "hello world" {
		t.Fatalf("result mutated by artifact bookkeeping")
	}
	if len(job.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(job.Artifacts))
	}
	if job.Artifacts[ArtifactDialogue].ID != "a1" {
		t.Fatalf("dialogue artifact not stored by kind")
	}
}
