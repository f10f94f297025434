package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/netx"
)

// Downloader fetches generated images by URL.
type Downloader struct {
	client *http.Client
}

func NewDownloader() *Downloader {
	return &Downloader{client: &http.Client{Timeout: time.Minute}}
}

// Download writes the image at url to w and returns the byte count.
func (d *Downloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	return netx.Download(ctx, d.client, url, w)
}
