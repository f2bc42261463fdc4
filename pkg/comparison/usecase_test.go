package comparison

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/document/documenttest"
	"github.com/artem13815/resumecompare/pkg/resume"
	"github.com/artem13815/resumecompare/pkg/resume/nlpparser"
	"github.com/artem13815/resumecompare/pkg/resume/regexparser"
)

type fakeReader struct {
	text  document.Text
	err   error
	calls atomic.Int32
	paths []string
	mu    sync.Mutex
}

func (r *fakeReader) Read(_ context.Context, path string, _ document.Format) (document.Text, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	if _, err := os.Stat(path); err != nil {
		return document.Text{}, err
	}
	return r.text, r.err
}

// blockingReader waits for the context like a reader stuck on a huge document.
type blockingReader struct{}

func (blockingReader) Read(ctx context.Context, _ string, _ document.Format) (document.Text, error) {
	<-ctx.Done()
	return document.Text{}, ctx.Err()
}

type fakeExtractor struct {
	name  string
	res   *resume.ParseResult
	err   error
	panic bool
	block bool
	calls atomic.Int32
}

func (e *fakeExtractor) Name() string { return e.name }

func (e *fakeExtractor) Extract(ctx context.Context, _ document.Text) (*resume.ParseResult, error) {
	e.calls.Add(1)
	if e.panic {
		panic("boom")
	}
	if e.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return e.res, e.err
}

type memCache struct {
	mu    sync.Mutex
	items map[string]Response
	err   error
}

func (c *memCache) Get(_ context.Context, key string) (Response, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return Response{}, false, c.err
	}
	r, ok := c.items[key]
	return r, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, r Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = map[string]Response{}
	}
	c.items[key] = r
	return nil
}

type memRepo struct {
	mu   sync.Mutex
	recs []Record
}

func (m *memRepo) Create(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.ID == id && r.OwnerID == ownerID {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

func (m *memRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Record
	for _, r := range m.recs {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := m.GetForOwner(ctx, ownerID, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.recs {
		if r.ID == id {
			m.recs = append(m.recs[:i], m.recs[i+1:]...)
			break
		}
	}
	return nil
}

type fixture struct {
	dir    string
	reader *fakeReader
	regex  *fakeExtractor
	nlp    *fakeExtractor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		dir:    t.TempDir(),
		reader: &fakeReader{text: document.Text{Content: "John Doe"}},
		regex:  &fakeExtractor{name: regexparser.Name, res: &resume.ParseResult{Name: resume.StringPtr("John Doe")}},
		nlp:    &fakeExtractor{name: nlpparser.Name, res: &resume.ParseResult{Name: resume.StringPtr("John Doe")}},
	}
}

func (f *fixture) service(opts ...Option) UseCase {
	cfg := Config{UploadDir: f.dir, MaxBytes: 64, ParseTimeout: time.Second}
	return NewService(cfg, f.reader, f.regex, f.nlp, opts...)
}

func (f *fixture) assertNoFilesLeft(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func upload(name, body string) Upload {
	return Upload{Filename: name, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestCompare(t *testing.T) {
	f := newFixture(t)

	got, err := f.service().Compare(context.Background(), upload("cv.pdf", "%PDF-1.4 data"))
	require.NoError(t, err)

	assert.True(t, got.Response.OK())
	assert.Equal(t, "John Doe", resume.Value(got.Response.Regex.Result.Name))
	assert.Equal(t, "John Doe", resume.Value(got.Response.NLP.Result.Name))
	assert.Equal(t, document.FormatPDF, got.Format)
	assert.EqualValues(t, 13, got.Size)
	assert.Len(t, got.Checksum, 64)
	assert.Equal(t, uuid.Nil, got.ID)
	f.assertNoFilesLeft(t)
}

func TestCompareRejectsBeforeParsing(t *testing.T) {
	for _, tc := range []struct {
		name string
		up   Upload
		want error
	}{
		{name: "extension", up: upload("cv.txt", "hello"), want: document.ErrUnsupportedFormat},
		{name: "no extension", up: upload("resume", "hello"), want: document.ErrUnsupportedFormat},
		{name: "declared size", up: Upload{Filename: "cv.docx", Size: 65, Body: strings.NewReader("x")}, want: document.ErrTooLarge},
		{name: "actual size", up: Upload{Filename: "cv.docx", Size: -1, Body: strings.NewReader(strings.Repeat("x", 65))}, want: document.ErrTooLarge},
		{name: "empty", up: upload("cv.doc", ""), want: document.ErrEmptyFile},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service().Compare(context.Background(), tc.up)
			require.ErrorIs(t, err, tc.want)

			assert.Zero(t, f.reader.calls.Load())
			assert.Zero(t, f.regex.calls.Load())
			assert.Zero(t, f.nlp.calls.Load())
			f.assertNoFilesLeft(t)
		})
	}
}

func TestCompareExtractorFailureIsIsolated(t *testing.T) {
	f := newFixture(t)
	f.nlp.err = errors.New("model exploded")
	f.regex.panic = true

	got, err := f.service().Compare(context.Background(), upload("cv.docx", "PK"))
	require.NoError(t, err)

	assert.Equal(t, "model exploded", got.Response.NLP.Error)
	assert.Equal(t, "regex_parser: internal error", got.Response.Regex.Error)
	f.assertNoFilesLeft(t)

	f.nlp.err = nil
	got, err = f.service().Compare(context.Background(), upload("cv.docx", "PK"))
	require.NoError(t, err)
	assert.True(t, got.Response.NLP.OK())
	assert.False(t, got.Response.Regex.OK())
}

func TestCompareReaderFailureFillsBothSlots(t *testing.T) {
	f := newFixture(t)
	f.reader.err = errors.New("broken pdf")

	got, err := f.service().Compare(context.Background(), upload("cv.pdf", "junk"))
	require.NoError(t, err)

	assert.Equal(t, "broken pdf", got.Response.Regex.Error)
	assert.Equal(t, "broken pdf", got.Response.NLP.Error)
	assert.Zero(t, f.regex.calls.Load())
	f.assertNoFilesLeft(t)
}

func TestCompareCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service().Compare(ctx, upload("cv.pdf", "data"))
	require.ErrorIs(t, err, context.Canceled)
	f.assertNoFilesLeft(t)
}

func TestCompareParseTimeout(t *testing.T) {
	f := newFixture(t)
	cache := &memCache{}
	svc := NewService(Config{UploadDir: f.dir, MaxBytes: 64, ParseTimeout: 20 * time.Millisecond},
		blockingReader{}, f.regex, f.nlp, WithCache(cache))

	_, err := svc.Compare(context.Background(), upload("cv.pdf", "data"))
	require.ErrorIs(t, err, ErrParseTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, f.regex.calls.Load())
	assert.Empty(t, cache.items)
	f.assertNoFilesLeft(t)
}

func TestCompareExtractorTimeout(t *testing.T) {
	f := newFixture(t)
	f.nlp.block = true
	svc := NewService(Config{UploadDir: f.dir, MaxBytes: 64, ParseTimeout: 20 * time.Millisecond},
		f.reader, f.regex, f.nlp)

	_, err := svc.Compare(context.Background(), upload("cv.pdf", "data"))
	require.ErrorIs(t, err, ErrParseTimeout)
	assert.EqualValues(t, 1, f.regex.calls.Load())
	f.assertNoFilesLeft(t)
}

func TestCompareUsesCache(t *testing.T) {
	f := newFixture(t)
	cache := &memCache{}
	svc := f.service(WithCache(cache))

	first, err := svc.Compare(context.Background(), upload("a.pdf", "same bytes"))
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Compare(context.Background(), upload("b.pdf", "same bytes"))
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Response, second.Response)
	assert.EqualValues(t, 1, f.reader.calls.Load())
	f.assertNoFilesLeft(t)
}

func TestCompareCacheErrorsOnlyLog(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zapcore.WarnLevel)
	svc := f.service(WithCache(&memCache{err: errors.New("redis down")}), WithLogger(zap.New(core)))

	got, err := svc.Compare(context.Background(), upload("a.pdf", "bytes"))
	require.NoError(t, err)
	assert.True(t, got.Response.OK())
	assert.Equal(t, 1, logs.FilterMessage("cache lookup failed").Len())
}

func TestCompareSkipsCacheForFailures(t *testing.T) {
	f := newFixture(t)
	f.nlp.err = errors.New("nope")
	cache := &memCache{}

	_, err := f.service(WithCache(cache)).Compare(context.Background(), upload("a.pdf", "bytes"))
	require.NoError(t, err)
	assert.Empty(t, cache.items)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	repo := &memRepo{}
	svc := f.service(WithRepository(repo))
	owner := uuid.New()
	ctx := context.Background()

	anon, err := svc.Compare(ctx, upload("cv.pdf", "anonymous"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, anon.ID)

	up := upload("cv.pdf", "owned")
	up.OwnerID = owner
	saved, err := svc.Compare(ctx, up)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)

	rec, err := svc.Get(ctx, owner, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", rec.Filename)
	assert.Equal(t, saved.Response, rec.Response)

	_, err = svc.Get(ctx, uuid.New(), saved.ID)
	require.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, owner, saved.ID))
	require.ErrorIs(t, svc.Delete(ctx, owner, saved.ID), ErrNotFound)
}

func TestHistoryDisabled(t *testing.T) {
	svc := newFixture(t).service()
	assert.False(t, svc.HistoryEnabled())

	_, err := svc.List(context.Background(), uuid.New(), 10, 0)
	require.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestCompareRealExtractors(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(
		Config{UploadDir: dir, MaxBytes: 1 << 20, ParseTimeout: 30 * time.Second},
		document.NewReader(),
		regexparser.New(),
		nlpparser.New(nil, nil),
	)

	for name, data := range map[string][]byte{
		"cv.pdf":  documenttest.PDF("John Doe, john.doe@email.com", "Software Engineer"),
		"cv.docx": documenttest.DOCX("John Doe, john.doe@email.com", "Software Engineer"),
		"cv.doc":  documenttest.DOCX("John Doe, john.doe@email.com", "Software Engineer"),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Compare(context.Background(), Upload{Filename: name, Size: int64(len(data)), Body: bytes.NewReader(data)})
			require.NoError(t, err)
			require.True(t, got.Response.OK(), "response: %+v", got.Response)

			for _, o := range []Outcome{got.Response.Regex, got.Response.NLP} {
				assert.Equal(t, "John Doe", resume.Value(o.Result.Name))
				assert.Equal(t, "john.doe@email.com", resume.Value(o.Result.Email))
			}
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompareBlankDocument(t *testing.T) {
	svc := NewService(
		Config{UploadDir: t.TempDir(), MaxBytes: 1 << 20, ParseTimeout: 30 * time.Second},
		document.NewReader(),
		regexparser.New(),
		nlpparser.New(nil, nil),
	)
	data := documenttest.DOCX("   ")

	got, err := svc.Compare(context.Background(), Upload{Filename: "blank.docx", Size: int64(len(data)), Body: bytes.NewReader(data)})
	require.NoError(t, err)

	b, err := json.Marshal(got.Response)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"regex_parser": {"error": "no text content found in the file"},
		"spacy_parser": {"error": "no text content found in the file"}
	}`, string(b))
}

func TestResponseJSON(t *testing.T) {
	resp := Response{
		Regex: Succeeded(&resume.ParseResult{Name: resume.StringPtr("Jane"), Skills: []string{"Go"}, NoOfPages: 1}),
		NLP:   Failed(resume.ErrNoText),
	}

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"regex_parser": {"name": "Jane", "email": null, "mobile_number": null, "skills": ["Go"],
			"education": null, "experience": null, "no_of_pages": 1},
		"spacy_parser": {"error": "no text content found in the file"}
	}`, string(b))

	var back Response
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, resp, back)
}
