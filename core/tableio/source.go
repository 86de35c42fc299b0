package tableio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"stock-checker/core/database"
	"stock-checker/core/storage"
	"stock-checker/core/utils"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv"
)

// Source supplies one input table.
type Source interface {
	// Name describes the source for logs.
	Name() string
	// Fetch loads and decodes the table.
	Fetch(ctx context.Context) (*Table, error)
}

// Deps are the optional clients used by remote sources.
type Deps struct {
	HTTPClient *http.Client
	Storage    storage.Client
	DB         *gorm.DB
	Retries    int
	RetryDelay time.Duration
}

// ParseSource picks a Source implementation from a reference:
//   - http:// or https:// downloads the file
//   - s3://bucket/object reads from object storage
//   - db://table reads a database table
//   - anything else is a local path
func ParseSource(ref string, deps Deps) (Source, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		client := deps.HTTPClient
		if client == nil {
			client = http.DefaultClient
		}
		return &HTTPSource{URL: ref, Client: client, Retries: deps.Retries, RetryDelay: deps.RetryDelay}, nil

	case strings.HasPrefix(ref, "s3://"):
		if deps.Storage == nil {
			return nil, fmt.Errorf("source %s needs a storage client", ref)
		}
		bucket, object, err := SplitObjectRef(ref)
		if err != nil {
			return nil, err
		}
		return &StorageSource{Client: deps.Storage, Bucket: bucket, Object: object}, nil

	case strings.HasPrefix(ref, "db://"):
		if deps.DB == nil {
			return nil, fmt.Errorf("source %s needs a database connection", ref)
		}
		table := strings.TrimPrefix(ref, "db://")
		if table == "" {
			return nil, fmt.Errorf("source %s has no table name", ref)
		}
		return &DBSource{DB: deps.DB, Table: table}, nil

	default:
		if ref == "" {
			return nil, fmt.Errorf("empty source reference")
		}
		return &FileSource{Path: ref}, nil
	}
}

// SplitObjectRef splits "s3://bucket/path/to/object" into bucket and object name.
func SplitObjectRef(ref string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(ref, "s3://")
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid object reference %q, expected s3://bucket/object", ref)
	}
	return bucket, object, nil
}

// Decode decodes data using the extension of name: ".csv" as CSV, anything else as XLSX.
func Decode(name string, data []byte) (*Table, error) {
	if isCSV(name) {
		return ReadCSV(data)
	}
	return ReadXLSX(data)
}

// Encode encodes the table using the extension of name, see Decode.
func Encode(w io.Writer, name string, t *Table) error {
	if isCSV(name) {
		return WriteCSV(w, t)
	}
	return WriteXLSX(w, t, ColStock)
}

func isCSV(name string) bool {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}
	return strings.EqualFold(path.Ext(name), ".csv")
}

func contentType(name string) string {
	if isCSV(name) {
		return csvContentType
	}
	return xlsxContentType
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.Path }

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*Table, error) {
	if !isCSV(s.Path) {
		return OpenXLSX(s.Path)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInputUnavailable, s.Path, err)
	}
	return ReadCSV(data)
}

// HTTPSource downloads an export over HTTP.
type HTTPSource struct {
	URL        string
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
}

// Name returns the URL.
func (s *HTTPSource) Name() string { return s.URL }

// Fetch downloads the export, retrying network errors and 5xx responses.
func (s *HTTPSource) Fetch(ctx context.Context) (*Table, error) {
	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, s.URL, ctx.Err())
			case <-time.After(s.RetryDelay * time.Duration(attempt)):
			}
		}

		data, retry, err := s.download(ctx)
		if err == nil {
			return Decode(s.URL, data)
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, s.URL, lastErr)
}

func (s *HTTPSource) download(ctx context.Context) (data []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode >= 500, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return data, false, nil
}

// StorageSource reads an export from an object storage bucket.
// An Object ending in "/" is a prefix; the newest object below it is read.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Object string
}

// Name returns the object reference.
func (s *StorageSource) Name() string { return "s3://" + s.Bucket + "/" + s.Object }

// Fetch downloads and decodes the object.
func (s *StorageSource) Fetch(ctx context.Context) (*Table, error) {
	key := s.Object
	if strings.HasSuffix(key, "/") {
		latest, err := storage.LatestObject(ctx, s.Client, s.Bucket, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}
		key = latest
	}

	obj, err := s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get s3://%s/%s: %v", ErrInputUnavailable, s.Bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: read s3://%s/%s: %v", ErrInputUnavailable, s.Bucket, key, err)
	}
	return Decode(key, data)
}

// DBSource reads the local catalog from a database table.
// Every column becomes a text column, in table definition order.
type DBSource struct {
	DB    *gorm.DB
	Table string
}

// Name returns the table reference.
func (s *DBSource) Name() string { return "db://" + s.Table }

// Fetch loads the whole table.
func (s *DBSource) Fetch(ctx context.Context) (*Table, error) {
	db := s.DB.WithContext(ctx)

	columns, err := database.GetTableColumns(db, s.Table)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %s has no columns", ErrInputUnavailable, s.Table)
	}

	var records []map[string]any
	if err := db.Table(s.Table).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: select from %s: %v", ErrInputUnavailable, s.Table, err)
	}

	t := &Table{Headers: make([]string, len(columns))}
	for i, col := range columns {
		t.Headers[i] = col.Field
	}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = utils.ToString(rec[col.Field])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Save writes the table to a local path or to s3://bucket/object.
func Save(ctx context.Context, ref string, t *Table, client storage.Client) error {
	var buf bytes.Buffer
	if err := Encode(&buf, ref, t); err != nil {
		return err
	}

	if strings.HasPrefix(ref, "s3://") {
		if client == nil {
			return fmt.Errorf("destination %s needs a storage client", ref)
		}
		bucket, object, err := SplitObjectRef(ref)
		if err != nil {
			return err
		}
		if err := storage.EnsureBucket(ctx, client, bucket); err != nil {
			return err
		}
		_, err = client.PutObject(ctx, bucket, object, &buf, int64(buf.Len()), minio.PutObjectOptions{ContentType: contentType(object)})
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", ref, err)
		}
		return nil
	}

	if err := os.WriteFile(ref, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ref, err)
	}
	return nil
}
