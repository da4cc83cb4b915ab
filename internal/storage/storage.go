package storage

import (
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/shilo-maker/solupresenter-sub003/internal/config"
)

// Client fronts the media bucket: backgrounds, slide images and uploaded
// audio all live under one bucket, namespaced by key prefix.
type Client struct {
	backend Provider
	bucket  string

	cache      map[string][]string
	cacheTime  map[string]time.Time
	cacheMutex sync.RWMutex
}

const CacheTTL = 5 * time.Minute

func New(cfg *config.Config) *Client {
	var backend Provider

	if cfg.Storage.Provider == "local" {
		backend = NewLocalProvider(cfg.Storage.LocalDir)
	} else {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	}

	return &Client{
		backend:   backend,
		bucket:    cfg.Storage.Bucket,
		cache:     make(map[string][]string),
		cacheTime: make(map[string]time.Time),
	}
}

// ListMediaFiles lists keys under a prefix ("images/", "audio/"), cached so
// the media browser doesn't hammer the backend while an operator scrolls.
func (c *Client) ListMediaFiles(prefix string) ([]string, error) {
	c.cacheMutex.RLock()
	files, ok := c.cache[prefix]
	ts := c.cacheTime[prefix]
	c.cacheMutex.RUnlock()

	if ok && time.Since(ts) < CacheTTL {
		return files, nil
	}

	keys, err := c.backend.List(c.bucket, prefix)
	if err != nil {
		return nil, err
	}

	c.cacheMutex.Lock()
	c.cache[prefix] = keys
	c.cacheTime[prefix] = time.Now()
	c.cacheMutex.Unlock()

	return keys, nil
}

func (c *Client) UploadMediaFile(key string, body io.ReadSeeker, contentType string) error {
	if err := c.backend.Put(c.bucket, key, body, contentType); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *Client) DownloadMediaFile(key string) (*FileObject, error) {
	return c.backend.Get(c.bucket, key)
}

func (c *Client) DeleteMediaFile(key string) error {
	if err := c.backend.Delete(c.bucket, key); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *Client) invalidate() {
	c.cacheMutex.Lock()
	c.cache = make(map[string][]string)
	c.cacheTime = make(map[string]time.Time)
	c.cacheMutex.Unlock()
}
