// Package api is the entry point of the processing core. The Manager
// drives one request from parameter string to encoded bytes: parse →
// decode → pipeline → encode → commit, collapsing any failure into one
// uniform Status and releasing per-request resources on every exit path.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pixelmill/pixelmill/internal/config"
	"github.com/pixelmill/pixelmill/internal/geometry"
	"github.com/pixelmill/pixelmill/internal/logger"
	"github.com/pixelmill/pixelmill/internal/metrics"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/pipeline"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Manager orchestrates requests. It is safe for concurrent use: all
// per-request state is local, and the pipeline and operators are pure.
type Manager struct {
	cfg  *config.Config
	log  *slog.Logger
	pipe *pipeline.Pipeline
}

func New(cfg *config.Config) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Manager{
		cfg:  cfg,
		log:  logger.Default(),
		pipe: pipeline.New(),
	}
}

// Process runs one request to completion and returns its Status. The
// request runs synchronously on the calling goroutine; callers wanting
// a timeout apply it around this call. A fresh request id is attached
// to the context and every log line of the request.
func (m *Manager) Process(ctx context.Context, query string, src Source, dst Target) Status {
	started := time.Now()
	ctx = logger.WithLogger(ctx, m.log)
	ctx = logger.WithRequestID(ctx, uuid.NewString())
	log := logger.FromContext(ctx)

	st := m.process(query, src, dst, log)

	metrics.ObserveRequest(st.Code.String(), time.Since(started).Seconds())
	if st.OK() {
		log.Debug("request processed", "query", query, "bytes", st.Bytes,
			"duration", time.Since(started))
	} else {
		log.Error("request failed", "query", query, "code", st.Code.String(),
			"message", st.Message)
	}
	return st
}

// ProcessFile reads the source from inPath and writes the result to
// outPath.
func (m *Manager) ProcessFile(ctx context.Context, query, inPath, outPath string) Status {
	return m.Process(ctx, query, FileSource(inPath), FileTarget(outPath))
}

// ProcessBuffer transforms an in-memory source and returns the encoded
// bytes alongside the Status.
func (m *Manager) ProcessBuffer(ctx context.Context, query string, src []byte) ([]byte, Status) {
	var dst BufferTarget
	st := m.Process(ctx, query, BufferSource(src), &dst)
	return dst.Data, st
}

func (m *Manager) process(query string, src Source, dst Target, log *slog.Logger) Status {
	p, err := params.Parse(query)
	if err != nil {
		return m.toStatus(query, err)
	}

	data, err := m.readSource(src)
	if err != nil {
		return m.toStatus(query, err)
	}
	metrics.SourceBytes.Observe(float64(len(data)))

	img, err := decode(data, m.cfg, p)
	if err != nil {
		return m.toStatus(query, err)
	}

	if p.MetadataOnly {
		report, err := img.Report().JSON()
		if err != nil {
			return m.toStatus(query, err)
		}
		if err := dst.Commit(report); err != nil {
			return m.toStatus(query, &EncodeError{
				Format: p.Output, Err: fmt.Errorf("write target: %w", err)})
		}
		return ok(int64(len(report)), p.Output)
	}

	result, err := m.pipe.Run(img, p)
	if err != nil {
		return m.toStatus(query, err)
	}

	out, format, err := encode(result, m.cfg, p)
	if err != nil {
		return m.toStatus(query, err)
	}
	if err := dst.Commit(out); err != nil {
		return m.toStatus(query, &EncodeError{
			Format: format, Err: fmt.Errorf("write target: %w", err)})
	}

	metrics.OutputBytes.Observe(float64(len(out)))
	return ok(int64(len(out)), format)
}

// readSource opens, caps and fully reads the source. The deferred close
// is the per-request resource release: it runs exactly once whether the
// read succeeds or fails.
func (m *Manager) readSource(src Source) (_ []byte, err error) {
	rc, err := src.Open()
	if err != nil {
		return nil, &DecodeError{Reason: "open source", Err: err}
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = &DecodeError{Reason: "close source", Err: cerr}
		}
	}()

	var r io.Reader = rc
	if m.cfg.MaxSourceBytes > 0 {
		r = io.LimitReader(rc, m.cfg.MaxSourceBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Reason: "read source", Err: err}
	}
	if m.cfg.MaxSourceBytes > 0 && int64(len(data)) > m.cfg.MaxSourceBytes {
		return nil, &DecodeError{Reason: fmt.Sprintf(
			"source exceeds the %d byte limit", m.cfg.MaxSourceBytes)}
	}
	return data, nil
}

// toStatus is the single funnel converting any stage failure into the
// uniform Status shape. The original query rides along in the message
// so failures are reproducible from logs alone.
func (m *Manager) toStatus(query string, err error) Status {
	var (
		paramErr  *params.Error
		decodeErr *DecodeError
		pipeErr   *pipeline.Error
		encodeErr *EncodeError
	)

	code := CodeInternalError
	switch {
	case errors.Is(err, geometry.ErrOverflow):
		code = CodeInternalError
	case errors.As(err, &paramErr):
		code = CodeParameterError
	case errors.As(err, &decodeErr):
		code = CodeDecodeError
	case errors.As(err, &pipeErr):
		code = CodeProcessingError
	case errors.As(err, &encodeErr):
		code = CodeEncodeError
	}

	return Status{
		Code:    code,
		Message: fmt.Sprintf("%v (query: %q)", err, query),
	}
}

// Report probes a source without transforming it, returning the
// structured metadata of the input image.
func (m *Manager) Report(ctx context.Context, src Source) (raster.Report, Status) {
	var dst BufferTarget
	st := m.Process(ctx, "output=json", src, &dst)
	if !st.OK() {
		return raster.Report{}, st
	}
	report, err := raster.ParseReport(dst.Data)
	if err != nil {
		return raster.Report{}, m.toStatus("output=json", err)
	}
	return report, st
}
