package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"any2text/internal/model"
)

const (
	MaxCrawlVideos = 100

	VideoTypeShorts = "shorts"
	VideoTypeVideos = "videos"
	VideoTypeAll    = "all"
)

// CrawlRequest starts a channel-wide fan-out: the backend enumerates up
// to MaxVideos videos of the requested type and creates one child job
// per video.
type CrawlRequest struct {
	ChannelURL string `json:"channel_url"`
	Language   string `json:"language"`
	Engine     string `json:"engine"`
	MaxVideos  int    `json:"max_videos"`
	VideoType  string `json:"video_type"`
}

func (c *Client) StartCrawl(ctx context.Context, req CrawlRequest) (model.ChannelCrawl, error) {
	if !IsYouTubeURL(req.ChannelURL) {
		return model.ChannelCrawl{}, fmt.Errorf("%w: %q is not a YouTube channel URL", ErrCrawlCreationFailed, strings.TrimSpace(req.ChannelURL))
	}
	if req.MaxVideos < 1 || req.MaxVideos > MaxCrawlVideos {
		return model.ChannelCrawl{}, fmt.Errorf("%w: max videos must be between 1 and %d (got %d)", ErrCrawlCreationFailed, MaxCrawlVideos, req.MaxVideos)
	}
	switch req.VideoType {
	case VideoTypeShorts, VideoTypeVideos, VideoTypeAll:
	default:
		return model.ChannelCrawl{}, fmt.Errorf("%w: invalid video type %q (use shorts|videos|all)", ErrCrawlCreationFailed, req.VideoType)
	}

	var crawl model.ChannelCrawl
	if err := c.do(ctx, "POST", "/channel/crawler", req, &crawl); err != nil {
		return model.ChannelCrawl{}, fmt.Errorf("%w: %s", ErrCrawlCreationFailed, err)
	}
	return crawl, nil
}

func (c *Client) GetCrawl(ctx context.Context, id string) (model.ChannelCrawl, error) {
	var crawl model.ChannelCrawl
	if err := c.do(ctx, "GET", "/channel/crawler/"+url.PathEscape(id), nil, &crawl); err != nil {
		return model.ChannelCrawl{}, err
	}
	return crawl, nil
}
