package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"any2text/internal/model"
)

func TestPresign_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/uploads/presign" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("missing request id header")
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"file_name":"a.mp3"`) {
			t.Fatalf("unexpected presign body: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"upload_url":"https://store/x","file_key":"uploads/a.mp3"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Presign(context.Background(), "a.mp3", "audio/mpeg")
	if err != nil {
		t.Fatalf("presign failed: %v", err)
	}
	if res.UploadURL != "https://store/x" || res.FileKey != "uploads/a.mp3" {
		t.Fatalf("unexpected presign result: %+v", res)
	}
}

func TestPresign_RequiresFileName(t *testing.T) {
	c := New("http://unused.invalid")
	if _, err := c.Presign(context.Background(), "  ", ""); !errors.Is(err, ErrPresignFailed) {
		t.Fatalf("expected ErrPresignFailed, got %v", err)
	}
}

func TestPresign_Non2xxSurfacesPhase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bucket unavailable"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Presign(context.Background(), "a.mp3", "audio/mpeg")
	if !errors.Is(err, ErrPresignFailed) {
		t.Fatalf("expected ErrPresignFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "bucket unavailable") {
		t.Fatalf("backend detail lost from error: %v", err)
	}
}

func TestPutObject_AttachesStorageBodyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<Error>SignatureDoesNotMatch</Error>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.PutObject(context.Background(), srv.URL+"/uploads/a.mp3", "audio/mpeg", []byte("bytes"))
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "SignatureDoesNotMatch") {
		t.Fatalf("storage body missing from error: %v", err)
	}
}

func TestCreateFromUpload_ReturnsQueuedJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcriptions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"fileKey":"uploads/a.mp3"`) {
			t.Fatalf("unexpected create body: %s", body)
		}
		_, _ = w.Write([]byte(`{"id":"job-1","status":"queued"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	job, err := c.CreateFromUpload(context.Background(), "uploads/a.mp3", "auto", "local")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if job.ID != "job-1" || job.Status != model.StatusQueued {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestCreateFromUpload_RejectsEmptyKey(t *testing.T) {
	c := New("http://unused.invalid")
	if _, err := c.CreateFromUpload(context.Background(), "", "", ""); !errors.Is(err, ErrJobCreationFailed) {
		t.Fatalf("expected ErrJobCreationFailed, got %v", err)
	}
}

func TestCreateFromYouTube_ValidatesHost(t *testing.T) {
	c := New("http://unused.invalid")
	for _, bad := range []string{"", "https://example.com/watch?v=abc", "not a url", "https://youtube.evil.com/x"} {
		if _, err := c.CreateFromYouTube(context.Background(), bad, "", ""); !errors.Is(err, ErrJobCreationFailed) {
			t.Fatalf("expected rejection for %q, got %v", bad, err)
		}
	}
}

func TestIsYouTubeURL(t *testing.T) {
	cases := []struct {
		url string
		ok  bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"https://youtube.com/@demo", true},
		{"https://youtu.be/abc123", true},
		{"https://m.youtube.com/shorts/xyz", true},
		{"https://vimeo.com/12345", false},
		{"https://notyoutube.com/watch", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsYouTubeURL(tc.url); got != tc.ok {
			t.Fatalf("IsYouTubeURL(%q) = %v, want %v", tc.url, got, tc.ok)
		}
	}
}

func TestListJobs_BuildsQueryAndRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "20" || q.Get("offset") != "40" || q.Get("status") != "done" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id":"job-1","status":"done"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	jobs, err := c.ListJobs(context.Background(), ListOptions{Limit: 20, Offset: 40, Status: "done"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "job-1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}

	if _, err := c.ListJobs(context.Background(), ListOptions{Status: "finished"}); err == nil {
		t.Fatalf("expected invalid status filter to be rejected")
	}
}

func TestGenerateImage_EchoesResolvedPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/generate-image") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"message":"Image generation started","job_id":"generate_image_job-1","prompt":"a quiet harbor at dawn"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	action, err := c.GenerateImage(context.Background(), "job-1", "")
	if err != nil {
		t.Fatalf("generate image failed: %v", err)
	}
	if action.ResolvedPrompt != "a quiet harbor at dawn" {
		t.Fatalf("resolved prompt missing: %+v", action)
	}
	if action.Kind != model.ArtifactGeneratedImg || action.Status != model.StatusQueued {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestStartCrawl_ValidatesBounds(t *testing.T) {
	c := New("http://unused.invalid")
	cases := []CrawlRequest{
		{ChannelURL: "https://youtube.com/@demo", MaxVideos: 0, VideoType: "shorts"},
		{ChannelURL: "https://youtube.com/@demo", MaxVideos: 101, VideoType: "shorts"},
		{ChannelURL: "https://youtube.com/@demo", MaxVideos: 5, VideoType: "podcasts"},
		{ChannelURL: "https://example.com/@demo", MaxVideos: 5, VideoType: "shorts"},
	}
	for _, req := range cases {
		if _, err := c.StartCrawl(context.Background(), req); !errors.Is(err, ErrCrawlCreationFailed) {
			t.Fatalf("expected ErrCrawlCreationFailed for %+v, got %v", req, err)
		}
	}
}

func TestStartCrawl_ReturnsInitialSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channel/crawler" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"channel_crawler_id":"crawl-1","status":"queued","channel_url":"https://youtube.com/@demo","total_videos_found":0,"total_jobs_created":0,"jobs":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	crawl, err := c.StartCrawl(context.Background(), CrawlRequest{
		ChannelURL: "https://youtube.com/@demo",
		Language:   "auto",
		Engine:     "local",
		MaxVideos:  5,
		VideoType:  "shorts",
	})
	if err != nil {
		t.Fatalf("start crawl failed: %v", err)
	}
	if crawl.ID != "crawl-1" || crawl.Status != model.StatusQueued || len(crawl.Jobs) != 0 {
		t.Fatalf("unexpected crawl: %+v", crawl)
	}
}
