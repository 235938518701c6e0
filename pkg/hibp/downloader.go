// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"bytes"
	"crypto/tls"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alvinbaena/pwdguard/internal/util"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
	"golang.org/x/net/context"
)

// TotalRanges is the number of 5 hex character prefixes, 00000 to FFFFF.
const TotalRanges = 1 << 20

// Rough size of a range on disk, used to check for free space before mirroring.
const rangeSizeEstimate = 40 * 1024

// mirrorRequestTimeout bounds a whole range request, body included, so a stalled response
// can not hold a worker forever.
const mirrorRequestTimeout = 60 * time.Second

// Downloader mirrors hash ranges from the range API into a directory that DirSource can serve.
type Downloader struct {
	parallelism int
	dir         string
	baseURL     string
	stat        *status
	http        *retryablehttp.Client
	progress    time.Duration
}

// NewDownloader creates a mirror downloader writing into dir. parallelism below 1 defaults to
// eight workers per logical CPU.
func NewDownloader(dir string, baseURL string, parallelism int) *Downloader {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	return &Downloader{
		parallelism: parallelism,
		dir:         dir,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		http:        mirrorHttpClient(),
		progress:    10 * time.Second,
	}
}

func mirrorHttpClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// Too much garbage in the logs, it slowed the download too much.
	client.Logger = nil

	// Unlike single lookups, a mirror retries up to 10 times on protocol errors.
	client.RetryMax = 10

	client.HTTPClient = &http.Client{
		Timeout: mirrorRequestTimeout,
		Transport: &http.Transport{
			DisableCompression: false,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS13,
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			// HTTP/2 only establishes one connection, HTTP/1.1 with many connections is faster.
			ForceAttemptHTTP2:   false,
			MaxIdleConnsPerHost: runtime.GOMAXPROCS(0) + 1,
		},
	}

	return client
}

// ProcessRanges mirrors the first ranges prefixes. Ranges that fail to download are logged and
// counted, the mirror keeps going and an error is returned at the end.
func (d *Downloader) ProcessRanges(ranges int, skipWait bool) error {
	if ranges <= 0 || ranges > TotalRanges {
		ranges = TotalRanges
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}

	if err := util.CheckDiskSpace(d.dir, uint64(ranges)*rangeSizeEstimate); err != nil {
		return err
	}

	s := util.Stats()
	defer s()

	threads := d.parallelism
	if threads < 1 {
		// About 8 times nets a sustained download of about 150 Mbit/s on 12 cores.
		threads = runtime.NumCPU() * 8
	}

	downloadTasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return err
	}
	defer downloadTasks.Close()

	log.Info().Msgf("mirroring Pwned Passwords hash ranges into %s with %d threads, ^C to stop the process", d.dir, threads)
	if !skipWait {
		time.Sleep(10 * time.Second)
	}

	d.stat = newStatus(ranges, d.progress)
	d.stat.BeginProgress()

	for i := 0; i < ranges; i++ {
		if err = downloadTasks.Publish(d.ProcessRange, getHashRange(i)); err != nil {
			log.Panic().Err(err).Msgf("there is a programming error here.")
		}
	}

	downloadTasks.Wait()
	d.stat.Done()

	if failed := d.stat.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d ranges could not be mirrored", failed, ranges)
	}
	return nil
}

func getHashRange(i int) string {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(i))
	// Last 5 hex characters of the counter
	return strings.ToUpper(hex.EncodeToString(buf)[3:])
}

// ProcessRange downloads and stores a single range.
func (d *Downloader) ProcessRange(prefix string) {
	data, err := d.downloadRange(prefix)
	if err != nil {
		log.Error().Err(err).Msgf("error downloading range %s", prefix)
		d.stat.RangeFailed()
		return
	}

	if err = d.writeRange(prefix, data); err != nil {
		log.Error().Err(err).Msgf("error writing range %s", prefix)
		d.stat.RangeFailed()
		return
	}

	d.stat.RangeDownloaded(countLines(data))
}

func countLines(data []byte) int {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}

	return bytes.Count(data, []byte("\n")) + 1
}

func (d *Downloader) downloadRange(prefix string) ([]byte, error) {
	timer := time.Now()
	req, err := rangeHttpRequest(context.Background(), d.baseURL, prefix, false)
	if err != nil {
		return nil, err
	}

	res, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	d.stat.RequestComplete(res, time.Since(timer).Milliseconds())
	return body, nil
}

// writeRange stores the range atomically so DirSource never reads half a file.
func (d *Downloader) writeRange(prefix string, data []byte) error {
	tmp, err := os.CreateTemp(d.dir, prefix+".*.tmp")
	if err != nil {
		return err
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), rangeFileName(d.dir, prefix))
}

// MirrorPath returns the file a range is stored in.
func (d *Downloader) MirrorPath(prefix string) string {
	return filepath.Clean(rangeFileName(d.dir, prefix))
}
