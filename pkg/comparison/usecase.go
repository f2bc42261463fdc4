package comparison

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/logger"
	"github.com/artem13815/resumecompare/pkg/resume"
)

// UseCase describes the resume comparison application logic.
type UseCase interface {
	// Compare validates and stages the upload, runs both extractors and
	// removes the staged file before returning.
	Compare(ctx context.Context, up Upload) (Comparison, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	HistoryEnabled() bool
}

// Config bounds a single comparison.
type Config struct {
	UploadDir    string
	MaxBytes     int64
	ParseTimeout time.Duration
}

type Option func(*service)

// WithCache enables response caching by content checksum.
func WithCache(c Cache) Option { return func(s *service) { s.cache = c } }

// WithRepository enables comparison history for authenticated uploads.
func WithRepository(r Repository) Option { return func(s *service) { s.repo = r } }

func WithLogger(l *zap.Logger) Option { return func(s *service) { s.log = logger.OrNop(l) } }

type service struct {
	cfg    Config
	reader document.Reader
	regex  resume.Extractor
	nlp    resume.Extractor
	cache  Cache
	repo   Repository
	log    *zap.Logger
	now    func() time.Time
}

// NewService returns the default UseCase implementation.
func NewService(cfg Config, reader document.Reader, regex, nlp resume.Extractor, opts ...Option) UseCase {
	s := &service{
		cfg:    cfg,
		reader: reader,
		regex:  regex,
		nlp:    nlp,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) HistoryEnabled() bool { return s.repo != nil }

func (s *service) Compare(ctx context.Context, up Upload) (Comparison, error) {
	format, err := document.ValidateFilename(up.Filename)
	if err != nil {
		return Comparison{}, err
	}
	if up.Size >= 0 {
		if err := document.ValidateSize(up.Size, s.cfg.MaxBytes); err != nil {
			return Comparison{}, err
		}
	}

	staged, err := document.Stage(s.cfg.UploadDir, up.Body, format, s.cfg.MaxBytes)
	if err != nil {
		return Comparison{}, err
	}
	defer func() {
		if err := staged.Remove(); err != nil {
			s.log.Warn("remove staged upload", zap.String("path", staged.Path), zap.Error(err))
		}
	}()

	out := Comparison{
		Filename: up.Filename,
		Format:   format,
		Size:     staged.Size,
		Checksum: staged.Checksum,
	}
	log := s.log.With(zap.String("filename", up.Filename), zap.String("checksum", staged.Checksum))

	if resp, ok := s.cached(ctx, log, staged.Checksum); ok {
		out.Response = resp
		out.Cached = true
	} else {
		resp, err := s.run(ctx, log, staged.Path, format)
		if err != nil {
			return Comparison{}, err
		}
		out.Response = resp
		if s.cache != nil && resp.OK() {
			if err := s.cache.Set(ctx, staged.Checksum, resp); err != nil {
				log.Warn("cache store failed", zap.Error(err))
			}
		}
	}

	if s.repo != nil && up.OwnerID != uuid.Nil {
		rec := Record{
			ID:        uuid.New(),
			OwnerID:   up.OwnerID,
			Filename:  up.Filename,
			Format:    format,
			SizeBytes: staged.Size,
			Checksum:  staged.Checksum,
			Response:  out.Response,
			CreatedAt: s.now().UTC(),
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			log.Error("save comparison", zap.Error(err))
		} else {
			out.ID = rec.ID
		}
	}
	return out, nil
}

func (s *service) cached(ctx context.Context, log *zap.Logger, checksum string) (Response, bool) {
	if s.cache == nil {
		return Response{}, false
	}
	resp, ok, err := s.cache.Get(ctx, checksum)
	if err != nil {
		log.Warn("cache lookup failed", zap.Error(err))
		return Response{}, false
	}
	if ok {
		log.Debug("cache hit")
	}
	return resp, ok
}

// ErrParseTimeout is returned when reading and extracting exceed Config.ParseTimeout.
var ErrParseTimeout = fmt.Errorf("parsing exceeded the time limit: %w", context.DeadlineExceeded)

// run reads the staged file once and feeds the text to both extractors concurrently.
// A reader failure fills both slots. Cancellation of ctx and the parse deadline are
// returned as errors of the call.
func (s *service) run(ctx context.Context, log *zap.Logger, path string, format document.Format) (Response, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.ParseTimeout)
	defer cancel()

	started := time.Now()
	text, err := s.reader.Read(runCtx, path, format)
	if err != nil {
		if err := interrupted(ctx, runCtx); err != nil {
			return Response{}, err
		}
		log.Warn("read document", zap.Error(err))
		fail := Failed(err)
		return Response{Regex: fail, NLP: fail}, nil
	}
	log.Debug("document read",
		zap.Int("chars", len(text.Content)),
		zap.Int("pages", text.Pages),
		zap.String("mime", text.MIME),
		zap.String("preview", logger.TruncateForLog(text.Content, 80)),
	)

	var resp Response
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		resp.Regex = s.extract(gctx, log, s.regex, text)
		return nil
	})
	g.Go(func() error {
		resp.NLP = s.extract(gctx, log, s.nlp, text)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	// оба результата, успевшие до дедлайна, не выбрасываем
	if !resp.OK() && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		log.Warn("parse timeout", zap.Duration("took", time.Since(started)))
		return Response{}, ErrParseTimeout
	}
	log.Info("comparison done",
		zap.Bool("regex_ok", resp.Regex.OK()),
		zap.Bool("nlp_ok", resp.NLP.OK()),
		zap.Duration("took", time.Since(started)),
	)
	return resp, nil
}

func interrupted(ctx, runCtx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return ErrParseTimeout
	}
	return nil
}

func (s *service) extract(ctx context.Context, log *zap.Logger, ex resume.Extractor, text document.Text) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("extractor panicked", zap.String("extractor", ex.Name()), zap.Any("panic", r))
			out = Failed(fmt.Errorf("%s: internal error", ex.Name()))
		}
	}()
	res, err := ex.Extract(ctx, text)
	if err != nil {
		log.Warn("extractor failed", zap.String("extractor", ex.Name()), zap.Error(err))
		return Failed(err)
	}
	if res == nil {
		return Failed(errors.New("no result"))
	}
	return Succeeded(res)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error) {
	if s.repo == nil {
		return Record{}, ErrHistoryDisabled
	}
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if s.repo == nil {
		return ErrHistoryDisabled
	}
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
