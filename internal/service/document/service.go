package document

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/davidleathers/brdocs/internal/domain/cnpj"
	"github.com/davidleathers/brdocs/internal/domain/cpf"
	"github.com/davidleathers/brdocs/internal/domain/digits"
	"github.com/davidleathers/brdocs/internal/domain/errors"
	"github.com/davidleathers/brdocs/internal/domain/phone"
	"github.com/davidleathers/brdocs/internal/domain/validation"
	"github.com/davidleathers/brdocs/internal/domain/values"
	"github.com/davidleathers/brdocs/internal/infrastructure/telemetry"
	"github.com/davidleathers/brdocs/internal/metrics"
)

// Ensure service implements the interface
var _ Service = (*service)(nil)

const serviceName = "document"

type service struct {
	opts      Options
	logger    *zap.Logger
	metrics   *metrics.Registry
	tracer    *telemetry.Tracer
	validator *validator.Validate

	// src is not safe for concurrent use
	srcMu sync.Mutex
	src   digits.Source
}

// NewService creates the record processing service
func NewService(opts Options, logger *zap.Logger, reg *metrics.Registry, src digits.Source) (Service, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if reg == nil {
		return nil, fmt.Errorf("metrics registry is required")
	}
	if src == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &service{
		opts:      opts,
		logger:    logger.Named(serviceName),
		metrics:   reg,
		tracer:    telemetry.NewTracer("brdocs/" + serviceName),
		validator: validation.New(),
		src:       src,
	}, nil
}

// ProcessRecord runs each present field through its handler
func (s *service) ProcessRecord(ctx context.Context, record Record) (*RecordResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, serviceName, "ProcessRecord",
		attribute.Bool("record.has_cpf", record.CPF != ""),
		attribute.Bool("record.has_cnpj", record.CNPJ != ""),
		attribute.Bool("record.has_phone", record.Phone != ""),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		cerr := errors.NewCanceledError(err)
		telemetry.WithSpanError(span, cerr)
		return nil, cerr
	}

	id := record.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	res := &RecordResult{ID: id}

	if record.IsEmpty() {
		return res, nil
	}

	done := s.metrics.StartRecord(ctx)
	defer done()

	fail := func(kind Kind, err error) {
		if res.Errors == nil {
			res.Errors = make(map[string]string)
		}
		res.Errors[string(kind)] = err.Error()
		s.metrics.RecordDocument(ctx, string(kind), false)
	}

	if record.CPF != "" {
		r, err := cpf.Process(record.CPF, cpf.ProcessOptions{Validate: true, Format: true, Mask: s.opts.MaskCPF})
		if err != nil {
			fail(KindCPF, err)
		} else {
			res.CPF = r
			s.metrics.RecordDocument(ctx, string(KindCPF), true)
		}
	}

	if record.CNPJ != "" {
		r, err := cnpj.Process(record.CNPJ, cnpj.DefaultProcessOptions())
		if err != nil {
			fail(KindCNPJ, err)
		} else {
			res.CNPJ = r
			s.metrics.RecordDocument(ctx, string(KindCNPJ), true)
		}
	}

	if record.Phone != "" {
		r, err := phone.Process(record.Phone, phone.ProcessOptions{Validate: true, Style: s.opts.PhoneStyle})
		if err != nil {
			fail(KindPhone, err)
		} else {
			res.Phone = r
			s.metrics.RecordDocument(ctx, string(KindPhone), true)
		}
	}

	if !res.Valid() {
		span.SetAttributes(attribute.Int("record.invalid_fields", len(res.Errors)))
		s.logger.Debug("record has invalid fields",
			zap.String("record_id", id.String()),
			zap.Any("errors", res.Errors))
	}

	return res, nil
}

// ProcessBatch fans records out over a bounded errgroup
func (s *service) ProcessBatch(ctx context.Context, records []Record) ([]*RecordResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, serviceName, "ProcessBatch",
		attribute.Int("batch.size", len(records)),
	)
	defer span.End()

	results := make([]*RecordResult, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, record := range records {
		g.Go(func() error {
			res, err := s.ProcessRecord(gctx, record)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		telemetry.WithSpanError(span, err)
		s.logger.Warn("batch aborted", zap.Int("records", len(records)), zap.Error(err))
		return nil, err
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid() {
			invalid++
		}
	}
	span.SetAttributes(attribute.Int("batch.invalid", invalid))
	s.logger.Info("batch processed",
		zap.Int("records", len(records)),
		zap.Int("invalid", invalid))

	return results, nil
}

// Validate checks the record struct tags
func (s *service) Validate(record Record) error {
	if record.IsEmpty() {
		return nil
	}

	err := s.validator.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.ErrInvalidRecord.WithCause(err)
	}

	details := make(map[string]interface{}, len(verrs))
	for field, tag := range validation.FieldErrors(verrs) {
		details[field] = tag
	}
	return errors.ErrInvalidRecord.WithDetails(details)
}

// Normalize builds value objects, failing on the first invalid field
func (s *service) Normalize(record Record) (Normalized, error) {
	out := Normalized{ID: record.ID}

	if record.CPF != "" {
		v, err := values.NewCPF(record.CPF)
		if err != nil {
			return Normalized{}, fieldError(KindCPF, err)
		}
		out.CPF = v
	}

	if record.CNPJ != "" {
		v, err := values.NewCNPJ(record.CNPJ)
		if err != nil {
			return Normalized{}, fieldError(KindCNPJ, err)
		}
		out.CNPJ = v
	}

	if record.Phone != "" {
		v, err := values.NewBRPhone(record.Phone)
		if err != nil {
			return Normalized{}, fieldError(KindPhone, err)
		}
		out.Phone = v
	}

	return out, nil
}

func fieldError(kind Kind, err error) error {
	return errors.ErrInvalidRecord.
		WithDetails(map[string]interface{}{"field": string(kind)}).
		WithCause(err)
}

// Generate draws n documents from the shared source
func (s *service) Generate(ctx context.Context, kind Kind, n int, formatted bool) ([]string, error) {
	if n < 1 {
		return nil, errors.ErrInvalidCount.WithDetails(map[string]interface{}{"count": n})
	}

	var gen func(digits.Source, bool) string
	switch kind {
	case KindCPF:
		gen = cpf.Generate
	case KindCNPJ:
		gen = cnpj.Generate
	case KindPhone:
		gen = phone.Generate
	default:
		return nil, errors.ErrUnknownKind.WithDetails(map[string]interface{}{"kind": string(kind)})
	}

	out := make([]string, n)

	s.srcMu.Lock()
	for i := range out {
		out[i] = gen(s.src, formatted)
	}
	s.srcMu.Unlock()

	s.metrics.RecordGenerated(ctx, string(kind), n)
	s.logger.Debug("generated documents", zap.String("kind", string(kind)), zap.Int("count", n))

	return out, nil
}
