package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/filex"
)

// readAvatarFile loads path and sniffs its content type.
func readAvatarFile(path string) (*models.AvatarFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	return &models.AvatarFile{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// Download saves image n (1-based, default 1) as thumbnail-<k>.png in the
// download directory. n indexes the session gallery, or the history when
// the gallery is empty.
func (a *App) Download(ctx context.Context, args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return errors.New("usage: download [n], n >= 1")
		}
		n = v
	}

	urls := a.generator.Gallery()
	if len(urls) == 0 {
		for _, r := range a.history.Snapshot().Records {
			urls = append(urls, r.ImageURL)
		}
	}
	if n > len(urls) {
		return fmt.Errorf("no thumbnail #%d (have %d)", n, len(urls))
	}

	dir, err := filex.EnsureDir(a.downloadDir)
	if err != nil {
		return err
	}
	f, err := filex.CreateNumbered(dir, "thumbnail-%d.png", 1)
	if err != nil {
		return err
	}

	written, err := a.downloader.Download(ctx, urls[n-1], f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("download: %w", err)
	}
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", f.Name(), written)
	return nil
}
