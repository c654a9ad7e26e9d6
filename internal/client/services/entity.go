package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/myadmin/internal/client/client"
	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/logging"
	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the list cache of cached resources.
const DefaultCacheSize = 64

// ActivityRecorder receives one entry per successful write.
type ActivityRecorder interface {
	Record(ctx context.Context, method, resource, title, meta string) error
}

type cacheEntry struct {
	records    []models.Record
	pagination models.Pagination
}

// EntityStore owns the client-side state of one resource: the last fetched
// collection, its pagination and the loading/processing flags.
//
// Every operation returns its error; the last one is also kept in Err and
// logged. A failed list fetch leaves an empty collection.
type EntityStore struct {
	res      Resource
	client   client.Client
	activity ActivityRecorder
	log      logging.Logger
	validate *validator.Validate
	cache    *lru.Cache[string, cacheEntry]

	mu         sync.RWMutex
	items      []models.Record
	pagination models.Pagination
	loading    bool
	processing bool
	loaded     bool
	err        error
	generation uint64
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	activity  ActivityRecorder
	log       logging.Logger
	cacheSize int
}

func WithActivityRecorder(a ActivityRecorder) StoreOption {
	return func(o *storeOptions) { o.activity = a }
}

func WithStoreLogger(l logging.Logger) StoreOption {
	return func(o *storeOptions) { o.log = l }
}

// WithCacheSize applies to cached resources only.
func WithCacheSize(n int) StoreOption {
	return func(o *storeOptions) { o.cacheSize = n }
}

func NewEntityStore(res Resource, c client.Client, opts ...StoreOption) (*EntityStore, error) {
	o := storeOptions{log: logging.Nop(), cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	s := &EntityStore{
		res:        res,
		client:     c,
		activity:   o.activity,
		log:        o.log.With("resource", res.Name),
		validate:   validator.New(),
		items:      []models.Record{},
		pagination: models.DefaultPagination(),
	}

	if res.Cached {
		cache, err := lru.New[string, cacheEntry](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create %s cache: %w", res.Name, err)
		}
		s.cache = cache
	}
	return s, nil
}

func NewSkillStore(c client.Client, opts ...StoreOption) (*EntityStore, error) {
	return NewEntityStore(Skills, c, opts...)
}

func NewSchoolStore(c client.Client, opts ...StoreOption) (*EntityStore, error) {
	return NewEntityStore(Schools, c, opts...)
}

func NewDegreeStore(c client.Client, opts ...StoreOption) (*EntityStore, error) {
	return NewEntityStore(Degrees, c, opts...)
}

func NewSubjectStore(c client.Client, opts ...StoreOption) (*EntityStore, error) {
	return NewEntityStore(Subjects, c, opts...)
}

func NewCategoryStore(c client.Client, opts ...StoreOption) (*EntityStore, error) {
	return NewEntityStore(Categories, c, opts...)
}

func NewUserStore(c client.Client, opts ...StoreOption) (*EntityStore, error) {
	return NewEntityStore(Users, c, opts...)
}

func (s *EntityStore) Resource() Resource { return s.res }

// Items returns a copy of the current collection.
func (s *EntityStore) Items() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Record, len(s.items))
	copy(out, s.items)
	return out
}

func (s *EntityStore) Pagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *EntityStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *EntityStore) Processing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processing
}

func (s *EntityStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FetchAll replaces the collection with the list the server returns for q.
// Only the newest in-flight fetch may update the state; older responses are
// returned to their caller but otherwise dropped.
func (s *EntityStore) FetchAll(ctx context.Context, q models.ListQuery) ([]models.Record, error) {
	s.mu.Lock()
	if s.res.SkipIfLoaded && s.loaded && !q.Force {
		items := append([]models.Record(nil), s.items...)
		s.mu.Unlock()
		return items, nil
	}

	key := cacheKey(q)
	if s.cache != nil {
		if hit, ok := s.cache.Get(key); ok {
			s.generation++
			s.loading = false
			s.items = hit.records
			s.pagination = hit.pagination
			s.loaded = true
			s.err = nil
			s.mu.Unlock()
			return append([]models.Record(nil), hit.records...), nil
		}
	}

	s.generation++
	gen := s.generation
	s.loading = true
	if s.res.Paginated && q.HasFilters() {
		s.items = []models.Record{}
	}
	s.mu.Unlock()

	resp, err := s.client.Do(ctx, client.Get(s.res.path(""), s.res.Query(q)))

	var (
		records    []models.Record
		pagination = models.DefaultPagination()
	)
	if err == nil {
		records, err = client.DecodeList(resp.Body)
		if err != nil {
			err = fmt.Errorf("decode %s: %w", s.res.Name, err)
		}
	}
	if err == nil {
		if s.res.SortIDDesc {
			sortByIDDesc(records)
		}
		if s.res.Paginated {
			pagination = client.ExtractPagination(resp.Body)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug(ctx, "dropping stale list response", "op", "fetch_all")
		return records, err
	}
	s.loading = false

	if err != nil {
		s.items = []models.Record{}
		s.err = err
		s.log.Error(ctx, "error fetching list", "op", "fetch_all", "error", err)
		return []models.Record{}, err
	}

	s.items = records
	if s.res.Paginated {
		s.pagination = pagination
	}
	s.loaded = true
	s.err = nil
	if s.cache != nil {
		s.cache.Add(key, cacheEntry{records: records, pagination: pagination})
	}
	return append([]models.Record(nil), records...), nil
}

// FetchByID loads a single record. The collection is left untouched.
func (s *EntityStore) FetchByID(ctx context.Context, id string) (models.Record, error) {
	resp, err := s.client.Do(ctx, client.Get(s.res.path(id), nil))
	if err == nil {
		var rec models.Record
		rec, err = client.DecodeObject(resp.Body)
		if err == nil {
			return rec, nil
		}
		err = fmt.Errorf("decode %s %s: %w", s.res.Singular, id, err)
	}
	s.fail(ctx, "fetch_by_id", err)
	return nil, err
}

// Create posts payload and returns the server's response body.
func (s *EntityStore) Create(ctx context.Context, p models.Payload) (models.Record, error) {
	if err := s.check(p, false); err != nil {
		s.fail(ctx, "create", err)
		return nil, err
	}

	req := client.Post(s.res.path(""), s.body(p))
	rec, err := s.write(ctx, "create", req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, models.ActivityCreate, fmt.Sprintf("New %s added", s.res.Singular), label(p, rec))
	return rec, nil
}

// Update sends payload for id. Multipart updates are POSTed to the record
// URL; JSON updates use PUT.
func (s *EntityStore) Update(ctx context.Context, id string, p models.Payload) (models.Record, error) {
	if err := s.check(p, true); err != nil {
		s.fail(ctx, "update", err)
		return nil, err
	}

	req := client.Put(s.res.path(id), s.body(p))
	if s.multipart(p) {
		req = client.Post(s.res.path(id), s.body(p))
	}
	rec, err := s.write(ctx, "update", req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, models.ActivityUpdate, capitalize(s.res.Singular)+" updated", label(p, rec, id))
	return rec, nil
}

func (s *EntityStore) Delete(ctx context.Context, id string) (models.Record, error) {
	rec, err := s.write(ctx, "delete", client.Delete(s.res.path(id)))
	if err != nil {
		return nil, err
	}
	s.record(ctx, models.ActivityDelete, capitalize(s.res.Singular)+" deleted", "#"+id)
	return rec, nil
}

func (s *EntityStore) write(ctx context.Context, op string, req client.Request) (models.Record, error) {
	s.mu.Lock()
	s.processing = true
	s.invalidate()
	s.mu.Unlock()

	// Lists fetched while the write was in flight may predate it.
	defer func() {
		s.mu.Lock()
		s.processing = false
		s.invalidate()
		s.mu.Unlock()
	}()

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		s.fail(ctx, op, err)
		return nil, err
	}

	rec, err := rawRecord(resp.Body)
	if err != nil {
		err = fmt.Errorf("decode %s response: %w", op, err)
		s.fail(ctx, op, err)
		return nil, err
	}

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	return rec, nil
}

// invalidate purges cached pages and makes in-flight list fetches drop
// their responses. Callers hold s.mu.
func (s *EntityStore) invalidate() {
	s.generation++
	s.loading = false
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *EntityStore) fail(ctx context.Context, op string, err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.log.Error(ctx, "store operation failed", "op", op, "error", err)
}

func (s *EntityStore) record(ctx context.Context, method, title, meta string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, method, s.res.Name, title, meta); err != nil {
		s.log.Warn(ctx, "failed to record activity", "error", err)
	}
}

func (s *EntityStore) multipart(p models.Payload) bool {
	return len(s.res.FileFields) > 0 && p.HasFile(s.res.FileFields...)
}

func (s *EntityStore) body(p models.Payload) client.Body {
	if s.multipart(p) {
		return client.Multipart(p, s.res.FileFields...)
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		if _, isFile := v.(models.File); !isFile {
			out[k] = v
		}
	}
	return client.JSON(out)
}

// check validates p against the resource rules. Partial payloads only
// check the fields they carry.
func (s *EntityStore) check(p models.Payload, partial bool) error {
	if len(s.res.Rules) == 0 {
		return nil
	}
	rules := s.res.Rules
	if partial {
		rules = make(map[string]any, len(p))
		for field, rule := range s.res.Rules {
			if _, ok := p[field]; ok {
				rules[field] = rule
			}
		}
	}

	failed := s.validate.ValidateMap(p, rules)
	if len(failed) == 0 {
		return nil
	}

	fields := make([]string, 0, len(failed))
	for field := range failed {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, field+": "+ruleMessage(failed[field]))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidPayload, strings.Join(msgs, "; "))
}

func ruleMessage(v any) string {
	err, ok := v.(error)
	if !ok {
		return fmt.Sprint(v)
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fe.Tag() + "=" + fe.Param()
		}
		return fe.Tag()
	}
	return err.Error()
}

// cacheKey mirrors the request identity: page plus filters.
func cacheKey(q models.ListQuery) string {
	page := q.Page
	if page < 1 {
		page = 1
	}
	b, _ := json.Marshal(struct {
		Page   int    `json:"page"`
		Search string `json:"search"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}{page, q.Search, q.Name, q.Email})
	return string(b)
}

func sortByIDDesc(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i].Int("id")
		b, bok := records[j].Int("id")
		if aok && bok {
			return a > b
		}
		return records[i].ID() > records[j].ID()
	})
}

// rawRecord decodes the response body as is. Empty and non-object bodies
// yield an empty record.
func rawRecord(body []byte) (models.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Record{}, nil
	}
	return models.DecodeRecord(trimmed)
}

func label(p models.Payload, rec models.Record, fallback ...string) string {
	if name, ok := p["name"].(string); ok && name != "" {
		return name
	}
	if data, ok := rec["data"].(map[string]any); ok {
		if name := models.Record(data).String("name"); name != "" {
			return name
		}
	}
	if len(fallback) > 0 {
		return "#" + fallback[0]
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
