package fs

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/dao"
	"github.com/viant/gridgate/service/dao/criteria"
	"github.com/viant/gridgate/service/meta"
	"gopkg.in/yaml.v3"
)

const extension = ".yaml"

// Service stores one YAML document per infrastructure under baseURL (file://, mem://, s3://, gs://, ...)
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Service[string, infra.Infrastructure] = (*Service)(nil)

// Save persists an infrastructure
func (s *Service) Save(ctx context.Context, infrastructure *infra.Infrastructure) error {
	if infrastructure == nil {
		return dao.ErrNilEntity
	}
	if infrastructure.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := yaml.Marshal(infrastructure)
	if err != nil {
		return fmt.Errorf("failed to marshal infrastructure %v: %w", infrastructure.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.infrastructureURL(infrastructure.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save infrastructure to %s: %w", URL, err)
	}
	return nil
}

// Load reads an infrastructure
func (s *Service) Load(ctx context.Context, id string) (*infra.Infrastructure, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	URL := s.infrastructureURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if infrastructure %v exists: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("infrastructure %v: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read infrastructure %v: %w", id, err)
	}
	return decode(data, URL)
}

// Delete removes an infrastructure
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.infrastructureURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if infrastructure %v exists: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("infrastructure %v: %w", id, dao.ErrNotFound)
	}
	return s.fs.Delete(ctx, URL)
}

// List returns infrastructures matching ID/Kind criteria
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*infra.Infrastructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(false))
	if err != nil {
		return nil, fmt.Errorf("failed to list infrastructures in %v: %w", s.baseURL, err)
	}
	var ret []*infra.Infrastructure
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), extension) {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", object.URL(), err)
		}
		infrastructure, err := decode(data, object.URL())
		if err != nil {
			return nil, err
		}
		kind, _ := infrastructure.Kind()
		if !criteria.Match(map[string]string{"ID": infrastructure.ID, "Kind": kind.String()}, parameters) {
			continue
		}
		ret = append(ret, infrastructure)
	}
	return ret, nil
}

// decode expands ${env.KEY} so that secrets can stay out of stored documents
func decode(data []byte, URL string) (*infra.Infrastructure, error) {
	ret := &infra.Infrastructure{}
	if err := meta.Decode(data, URL, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) infrastructureURL(id string) string {
	return url.Join(s.baseURL, path.Base(id)+extension)
}

// New creates afs backed infrastructure store
func New(ctx context.Context, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	fs := afs.New()
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create infrastructure store %v: %w", baseURL, err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
