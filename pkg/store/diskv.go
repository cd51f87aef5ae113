package store

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/logging"
)

// Persistence defines the persistence contract for planner records.
type Persistence interface {
	ListAll(ctx context.Context) []*Record
	List(ctx context.Context, c collection.Type) []*Record
	Get(ctx context.Context, c collection.Type, id string) (*Record, error)
	CollectionsMeta(ctx context.Context) []collection.Meta
	Store(ctx context.Context, r *Record) error
	Delete(ctx context.Context, c collection.Type, id string) error
	EnsureCollection(c collection.Type) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option configures the diskv persistence.
type Option func(*persistence)

// WithLogger routes read and watch problems to log.
func WithLogger(log *slog.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: logging.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

func (p *persistence) read(key string) (*Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	r := &Record{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	if r.Schema == "" {
		r.Schema = CurrentSchema
	}
	if r.ID == "" {
		r.ID = fromID(keyToPathTransform(key).FileName)
	}
	return r, nil
}

func (p *persistence) ListAll(ctx context.Context) []*Record {
	all := make([]*Record, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !isRecordKey(key) {
			continue
		}
		r, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable record", "key", key, "err", err)
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func (p *persistence) List(ctx context.Context, c collection.Type) []*Record {
	all := make([]*Record, 0)
	for key := range p.d.KeysPrefix(collectionPrefix(c), ctx.Done()) {
		r, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable record", "key", key, "err", err)
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func (p *persistence) Get(ctx context.Context, c collection.Type, id string) (*Record, error) {
	key, ok := p.keyFor(ctx, c, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, c, id)
	}
	return p.read(key)
}

// Store writes r, replacing any earlier copy stored under a different date.
func (p *persistence) Store(ctx context.Context, r *Record) error {
	if r == nil || r.ID == "" {
		return errors.New("store: record id required")
	}
	if _, err := collection.ParseType(string(r.Collection)); err != nil {
		return err
	}
	if r.Schema == "" {
		r.Schema = CurrentSchema
	}
	previous, hadPrevious := p.keyFor(ctx, r.Collection, r.ID)
	key := toKey(r)
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return err
	}
	if hadPrevious && previous != key {
		return p.d.Erase(previous)
	}
	return nil
}

func (p *persistence) Delete(ctx context.Context, c collection.Type, id string) error {
	key, ok := p.keyFor(ctx, c, id)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, c, id)
	}
	return p.d.Erase(key)
}

func (p *persistence) keyFor(ctx context.Context, c collection.Type, id string) (string, bool) {
	suffix := "-" + toID(id)
	for key := range p.d.KeysPrefix(collectionPrefix(c), ctx.Done()) {
		if strings.HasSuffix(key, suffix) {
			return key, true
		}
	}
	return "", false
}

func (p *persistence) CollectionsMeta(ctx context.Context) []collection.Meta {
	all := make(map[collection.Type]collection.Meta)
	if idx, err := p.loadCollectionsIndex(); err == nil {
		for name, meta := range idx {
			all[name] = meta
		}
	} else {
		p.log.Warn("load collections index", "err", err)
	}

	for key := range p.d.Keys(ctx.Done()) {
		if !isRecordKey(key) {
			continue
		}
		pk := keyToPathTransform(key)
		ck := collection.Type(fromCollection(pk.Path[0]))
		meta := all[ck]
		meta.Name = ck
		meta.Count++
		all[ck] = meta
	}

	list := make([]collection.Meta, 0, len(all))
	for _, meta := range all {
		list = append(list, meta)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (p *persistence) EnsureCollection(c collection.Type) error {
	if c == "" {
		return errors.New("store: collection name required")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, toCollection(string(c))), 0o755); err != nil {
		return fmt.Errorf("store: ensure collection directory: %w", err)
	}
	index, err := p.loadCollectionsIndex()
	if err != nil {
		return fmt.Errorf("store: load collections index: %w", err)
	}
	index[c] = collection.Meta{Name: c}
	if err := p.saveCollectionsIndex(index); err != nil {
		return fmt.Errorf("store: save collections index: %w", err)
	}
	return nil
}

const (
	layoutISO            = "2006-01-02"
	collectionsIndexFile = ".collections.json"
)

func (p *persistence) collectionsIndexPath() string {
	return filepath.Join(p.basePath, collectionsIndexFile)
}

func (p *persistence) loadCollectionsIndex() (map[collection.Type]collection.Meta, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.collectionsIndexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[collection.Type]collection.Meta), nil
		}
		return nil, err
	}
	list, err := collection.UnmarshalList(data)
	if err != nil {
		return nil, err
	}
	index := make(map[collection.Type]collection.Meta, len(list))
	for _, meta := range list {
		if meta.Name == "" {
			continue
		}
		index[meta.Name] = meta
	}
	return index, nil
}

func (p *persistence) saveCollectionsIndex(idx map[collection.Type]collection.Meta) error {
	list := make([]collection.Meta, 0, len(idx))
	for _, meta := range idx {
		list = append(list, meta)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	data, err := collection.MarshalList(list)
	if err != nil {
		return err
	}
	path := p.collectionsIndexPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// isRecordKey filters out files diskv sees at the base path, like the
// collections index.
func isRecordKey(key string) bool {
	return !strings.HasPrefix(key, "-")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `collection-date-id`
func toKey(r *Record) string {
	then := r.Created.Format(layoutISO)
	return fmt.Sprintf("%s-%s-%s", toCollection(string(r.Collection)), then, toID(r.ID))
}

func collectionPrefix(c collection.Type) string {
	return toCollection(string(c)) + "-"
}

// Record ids are hex encoded so hyphens inside them never split the key.
func toID(id string) string {
	return hex.EncodeToString([]byte(id))
}

func fromID(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil {
		return s
	}
	return string(b)
}

func toCollection(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func fromCollection(s string) string {
	collection, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromCollection: %s", err)
	}
	return string(collection)
}
