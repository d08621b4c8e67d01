// Package filestorage reads and writes whole files on local disk, Google
// Cloud Storage or AWS S3.
package filestorage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// FileStorage stores files in buckets. For local storage the bucket is a
// directory.
type FileStorage interface {
	Upload(ctx context.Context, b []byte, bucket, fileName string) (string, error)
	Download(ctx context.Context, bucket, fileName string) ([]byte, error)
	FileExists(ctx context.Context, bucket, fileName string) bool
}

const (
	SchemeLocal = ""
	SchemeGCS   = "gs"
	SchemeS3    = "s3"
)

// Location is a parsed file location such as "gs://bucket/dir/file.csv",
// "s3://bucket/file.csv" or "/data/file.csv".
type Location struct {
	Scheme string
	Bucket string
	Name   string
}

// ParseLocation splits a location into scheme, bucket and object name.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Location{}, fmt.Errorf("empty file location")
	}
	for _, scheme := range []string{SchemeGCS, SchemeS3} {
		prefix := scheme + "://"
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(s, prefix), "/", 2)
		if parts[0] == "" {
			return Location{}, fmt.Errorf("missing bucket in location [%s]", s)
		}
		l := Location{Scheme: scheme, Bucket: parts[0]}
		if len(parts) == 2 {
			l.Name = parts[1]
		}
		return l, nil
	}
	if i := strings.Index(s, "://"); i >= 0 {
		return Location{}, fmt.Errorf("unsupported scheme [%s] in location [%s]", s[:i], s)
	}
	return Location{Bucket: filepath.Dir(s), Name: filepath.Base(s)}, nil
}

// Join returns the location of name inside l, which names a directory.
func (l Location) Join(name string) Location {
	if l.Scheme == SchemeLocal {
		return Location{Bucket: filepath.Join(l.Bucket, l.Name), Name: name}
	}
	return Location{Scheme: l.Scheme, Bucket: l.Bucket, Name: path.Join(l.Name, name)}
}

func (l Location) String() string {
	if l.Scheme == SchemeLocal {
		return filepath.Join(l.Bucket, l.Name)
	}
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Name)
}

// Opener builds the storage client a location needs, so callers only pay for
// the cloud clients they use.
type Opener struct {
	AWS AWSConfig
}

// Open returns the storage serving scheme.
func (o Opener) Open(ctx context.Context, scheme string) (FileStorage, error) {
	switch scheme {
	case SchemeLocal:
		return NewLocalStorage(), nil
	case SchemeGCS:
		return NewGCSClient(ctx)
	case SchemeS3:
		return NewAWSClient(o.AWS)
	}
	return nil, fmt.Errorf("unsupported storage scheme [%s]", scheme)
}
