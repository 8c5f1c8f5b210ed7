package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitra/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// recordCacheSize is the freecache arena size in bytes
	recordCacheSize       = 16 * 1024 * 1024
	recordCacheTTLSeconds = 60 * 60
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=training_test

type analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error)
}

type recordsRepo interface {
	Add(ctx context.Context, record Record) (*Record, error)
	Get(ctx context.Context, id int) (*Record, error)
	Latest(ctx context.Context) (*Record, error)
	List(ctx context.Context, params ListParams) ([]Record, int, error)
}

type latestCache interface {
	Get(ctx context.Context) (*Record, error)
	Set(ctx context.Context, record Record) error
}

// AnalyzeResult is a report together with the ID it was saved under.
// ID is zero when saving failed.
type AnalyzeResult struct {
	ID int `json:"id,omitempty"`
	*Report
}

type Service struct {
	analyzer    analyzer
	repo        recordsRepo
	latest      latestCache
	recordCache *freecache.Cache
	now         func() time.Time
}

type NewServiceParams struct {
	Analyzer analyzer
	Repo     recordsRepo
	// Latest is optional, without it the latest record is always read from the repo
	Latest latestCache
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		analyzer:    params.Analyzer,
		repo:        params.Repo,
		latest:      params.Latest,
		recordCache: freecache.NewCache(recordCacheSize),
		now:         time.Now,
	}
}

// Analyze runs the pipeline and saves the result. A failed save is only
// logged, the caller still gets the report.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (_ *AnalyzeResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	report, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{Report: report}
	saved, err := s.repo.Add(ctx, NewRecord(req, report, s.now()))
	if err != nil {
		log.Errorf("save training record: %s", err)
		return result, nil
	}

	result.ID = saved.ID
	span.SetAttributes(attribute.Int("id", saved.ID))
	s.cacheRecord(*saved)
	if s.latest != nil {
		if err := s.latest.Set(ctx, *saved); err != nil {
			log.Errorf("cache latest training record %d: %s", saved.ID, err)
		}
	}

	return result, nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if record, ok := s.cachedRecord(id); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return record, nil
	}

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheRecord(*record)
	return record, nil
}

func (s *Service) Latest(ctx context.Context) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if s.latest != nil {
		record, err := s.latest.Get(ctx)
		if err != nil {
			log.Warnf("get latest training record from cache: %s", err)
		} else if record != nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return record, nil
		}
	}

	record, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if s.latest != nil {
		if err := s.latest.Set(ctx, *record); err != nil {
			log.Warnf("cache latest training record %d: %s", record.ID, err)
		}
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, page, size int) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if page < 1 || size <= 0 {
		return nil, 0, fmt.Errorf("invalid page [%d] or size [%d]", page, size)
	}

	records, total, err := s.repo.List(ctx, ListParams{Page: page, Size: size})
	if err != nil {
		return nil, 0, fmt.Errorf("list training records: %w", err)
	}
	return records, total, nil
}

func (s *Service) cacheRecord(record Record) {
	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("marshal training record %d for cache: %s", record.ID, err)
		return
	}
	if err := s.recordCache.Set(recordCacheKey(record.ID), recordJson, recordCacheTTLSeconds); err != nil {
		log.Warnf("cache training record %d: %s", record.ID, err)
	}
}

func (s *Service) cachedRecord(id int) (*Record, bool) {
	recordJson, err := s.recordCache.Get(recordCacheKey(id))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("get training record %d from cache: %s", id, err)
		}
		return nil, false
	}
	var record Record
	if err := json.Unmarshal(recordJson, &record); err != nil {
		log.Errorf("unmarshal cached training record %d: %s", id, err)
		return nil, false
	}
	return &record, true
}

func recordCacheKey(id int) []byte {
	return []byte("record::" + strconv.Itoa(id))
}
