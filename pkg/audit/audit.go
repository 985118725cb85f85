package audit

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

// Record is one persisted routing decision.
type Record struct {
	ID          string      `json:"id" bson:"_id"`
	Time        time.Time   `json:"time" bson:"time"`
	RequestID   string      `json:"requestId,omitempty" bson:"request_id,omitempty"`
	Index       int         `json:"index" bson:"index"`
	Fingerprint string      `json:"fingerprint" bson:"fingerprint"`
	Layout      layout.Name `json:"layout" bson:"layout"`
	Rule        string      `json:"rule" bson:"rule"`
}

// NewRecord builds a record for slide s routed to name by rule.
func NewRecord(s content.Slide, index int, name layout.Name, rule string) Record {
	return Record{
		ID:          uuid.NewString(),
		Time:        time.Now().UTC(),
		Index:       index,
		Fingerprint: Fingerprint(s),
		Layout:      name,
		Rule:        rule,
	}
}

// Fingerprint identifies slide content independently of field order.
// Slides with equal content, extra fields included, share a fingerprint.
func Fingerprint(s content.Slide) string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return Hash(data)
}

// Sink receives batches of records.
type Sink interface {
	// Write persists records. Each record carries its slide index, so
	// storage order is not significant. An empty batch is a no-op.
	Write(ctx context.Context, records []Record) error

	// Name identifies the sink kind ("null", "file", "redis", "mongodb").
	Name() string

	// Close releases the sink's resources.
	Close() error
}

// Open returns the sink addressed by rawURL. An empty URL yields a
// [NullSink].
//
// Supported schemes:
//
//	file:///var/log/slidelayout/audit.jsonl
//	redis://host:6379/0?stream=slidelayout:audit
//	mongodb://host:27017/slidelayout?collection=decisions
func Open(ctx context.Context, rawURL string) (Sink, error) {
	if rawURL == "" {
		return NewNullSink(), nil
	}
	if err := errors.ValidateSinkURL(rawURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSink, err, "parse sink URL")
	}

	var sink Sink
	switch u.Scheme {
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		sink, err = NewFileSink(path)
	case "redis", "rediss":
		sink, err = DialRedis(ctx, rawURL)
	case "mongodb", "mongodb+srv":
		sink, err = DialMongo(ctx, rawURL)
	default:
		err = errors.New(errors.ErrCodeInvalidSink, "unsupported sink scheme: %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	return sink, nil
}
