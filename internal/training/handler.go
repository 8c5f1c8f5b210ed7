package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/middleware"
	"github.com/2beens/fitra/internal/telemetry/metrics"
	"github.com/2beens/fitra/internal/telemetry/tracing"
	"github.com/2beens/fitra/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// maxRequestBodyBytes bounds the analyze request body.
const maxRequestBodyBytes = 1 << 20

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

type trainingService interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)
	Get(ctx context.Context, id int) (*Record, error)
	Latest(ctx context.Context) (*Record, error)
	List(ctx context.Context, page, size int) ([]Record, int, error)
}

type HistoryResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

type Handler struct {
	service trainingService
}

func NewHandler(service trainingService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	analyzeAllowedPerMin int,
	metricsManager *metrics.Manager,
) {
	trainingRouter := mainRouter.PathPrefix("/training").Subrouter()

	// every analysis costs an advisory call, keep it rate limited
	analyzeRateLimit := middleware.RateLimit(rateLimiter, "training-analyze", analyzeAllowedPerMin, metricsManager)
	trainingRouter.
		Handle("/analyze", analyzeRateLimit(http.HandlerFunc(handler.HandleAnalyze))).
		Methods("POST", "OPTIONS").Name("training-analyze")
	trainingRouter.HandleFunc("/latest", handler.HandleLatest).Methods("GET", "OPTIONS").Name("training-latest")
	trainingRouter.HandleFunc("/record/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("training-record")
	trainingRouter.
		HandleFunc("/history/page/{page}/size/{size}", handler.HandleHistory).
		Methods("GET", "OPTIONS").Name("training-history")
	trainingRouter.Use(middleware.Cors())
}

func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.analyze")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		log.Errorf("analyze training, unmarshal json params: %s", err)
		http.Error(w, "invalid training session", http.StatusBadRequest)
		return
	}
	// unknown level or goal only drops the conditioning, the session is still analyzed
	if req.Level != "" && !req.Level.IsValid() {
		log.Debugf("analyze training, ignoring unknown level [%s]", req.Level)
		req.Level = ""
	}
	if req.Goal != "" && !req.Goal.IsValid() {
		log.Debugf("analyze training, ignoring unknown goal [%s]", req.Goal)
		req.Goal = ""
	}
	span.SetAttributes(attribute.Int("exercises", len(req.Exercises)))

	result, err := handler.service.Analyze(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, advisory.ErrAdvisoryUnavailable) {
			log.Warnf("analyze training: %s", err)
			http.Error(w, "feedback service unavailable, try again later", http.StatusBadGateway)
			return
		}
		log.Errorf("analyze training: %s", err)
		http.Error(w, "analyze training failed", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal analyze result: %s", err)
		http.Error(w, "analyze training failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.latest")
	defer span.End()

	record, err := handler.service.Latest(ctx)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, "no training records yet", http.StatusNotFound)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get latest training record: %s", err)
		http.Error(w, "get latest training record failed", http.StatusInternalServerError)
		return
	}

	handler.writeRecord(w, record)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, empty id", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, invalid id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("id", id))

	record, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, "training record not found", http.StatusNotFound)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get training record %d: %s", id, err)
		http.Error(w, "get training record failed", http.StatusInternalServerError)
		return
	}

	handler.writeRecord(w, record)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.history")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle training history, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle training history, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "invalid page (has to be a positive value)", http.StatusBadRequest)
		return
	}
	if size < 1 || size > 100 {
		http.Error(w, "invalid size (has to be between 1 and 100)", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	records, total, err := handler.service.List(ctx, page, size)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("list training records: %s", err)
		http.Error(w, "get training history failed", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []Record{}
	}
	historyJson, err := json.Marshal(HistoryResponse{
		Records: records,
		Total:   total,
	})
	if err != nil {
		log.Errorf("marshal training history: %s", err)
		http.Error(w, "get training history failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}

func (handler *Handler) writeRecord(w http.ResponseWriter, record *Record) {
	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("marshal training record: %s", err)
		http.Error(w, "marshal training record failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusOK)
}
