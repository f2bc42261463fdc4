package comparison

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumecompare/pkg/document"
)

var (
	ErrNotFound        = errors.New("comparison not found")
	ErrHistoryDisabled = errors.New("comparison history is not configured")
)

// Upload — входящий файл резюме. Size is the declared size, negative when unknown.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
	OwnerID  uuid.UUID // uuid.Nil for anonymous uploads
}

// Comparison is the outcome of one upload.
type Comparison struct {
	ID       uuid.UUID // uuid.Nil when not saved to history
	Filename string
	Format   document.Format
	Size     int64
	Checksum string
	Cached   bool
	Response Response
}

// Record — сохранённое сравнение в истории пользователя.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"ownerId"`
	Filename  string          `json:"filename"`
	Format    document.Format `json:"format"`
	SizeBytes int64           `json:"sizeBytes"`
	Checksum  string          `json:"checksum"`
	Response  Response        `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Repository stores comparison history. All reads and deletes are scoped to an owner.
type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Record, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// Cache keeps responses by content checksum.
type Cache interface {
	Get(ctx context.Context, checksum string) (Response, bool, error)
	Set(ctx context.Context, checksum string, resp Response) error
}
