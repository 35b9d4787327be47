// Package download saves remote episodes to the local downloads directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/network"
	"github.com/onair-cli/onair/util"
	"github.com/spf13/afero"
)

// Downloader fetches complete resources over HTTP and writes them into dir.
type Downloader struct {
	fs     afero.Afero
	dir    string
	client *http.Client
}

// New creates a Downloader writing into dir through fs.
func New(fs afero.Afero, dir string) *Downloader {
	return &Downloader{
		fs:     fs,
		dir:    dir,
		client: network.Client,
	}
}

// WithClient replaces the HTTP client.
func (d *Downloader) WithClient(client *http.Client) *Downloader {
	d.client = client
	return d
}

// Fetch downloads url and saves it as filename, returning the final path.
// The body is written to a temporary .part file first, so a failed or
// cancelled transfer never leaves a truncated episode behind.
func (d *Downloader) Fetch(ctx context.Context, url, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	if err := d.fs.MkdirAll(d.dir, os.ModePerm); err != nil {
		return "", err
	}

	part := filepath.Join(d.dir, "."+uuid.NewString()+".part")
	file, err := d.fs.Create(part)
	if err != nil {
		return "", err
	}

	written, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = d.fs.Remove(part)
		return "", err
	}

	if resp.ContentLength > 0 && written != resp.ContentLength {
		_ = d.fs.Remove(part)
		return "", fmt.Errorf("GET %s: short body, got %d of %d bytes", url, written, resp.ContentLength)
	}

	path, err := d.freeName(filename)
	if err != nil {
		_ = d.fs.Remove(part)
		return "", err
	}

	if err := d.fs.Rename(part, path); err != nil {
		_ = d.fs.Remove(part)
		return "", err
	}

	log.Infof("downloaded %d bytes to %s", written, path)
	return path, nil
}

// freeName returns a path for filename in dir that does not exist yet,
// appending " (n)" before the extension on collision.
func (d *Downloader) freeName(filename string) (string, error) {
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) || strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	candidate := filepath.Join(d.dir, filename)
	for n := 1; ; n++ {
		exists, err := d.fs.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = filepath.Join(d.dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
	}
}
