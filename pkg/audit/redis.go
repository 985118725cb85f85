package audit

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/slidelayout/pkg/errors"
)

// DefaultStream is the Redis stream records are appended to when the URL
// names none.
const DefaultStream = "slidelayout:audit"

// RedisSink appends records to a Redis stream with XADD.
type RedisSink struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

// NewRedisSink wraps an existing client. maxLen caps the stream length
// approximately; zero leaves it unbounded.
func NewRedisSink(client redis.UniversalClient, stream string, maxLen int64) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisSink{client: client, stream: stream, maxLen: maxLen}
}

// DialRedis connects to the server in rawURL and verifies it with PING.
// The query parameters "stream" and "maxlen" configure the sink; every other
// parameter is passed through to go-redis.
func DialRedis(ctx context.Context, rawURL string) (*RedisSink, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSink, err, "parse redis URL")
	}
	q := u.Query()
	stream := q.Get("stream")
	var maxLen int64
	if v := q.Get("maxlen"); v != "" {
		maxLen, err = strconv.ParseInt(v, 10, 64)
		if err != nil || maxLen < 0 {
			return nil, errors.New(errors.ErrCodeInvalidSink, "invalid maxlen %q", v)
		}
	}
	q.Del("stream")
	q.Del("maxlen")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSink, err, "parse redis URL")
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis")
	}
	return NewRedisSink(client, stream, maxLen), nil
}

// Stream returns the stream key records are appended to.
func (s *RedisSink) Stream() string { return s.stream }

// Write appends every record in one MULTI/EXEC transaction, so a failed
// attempt leaves no partial batch behind for the retry to duplicate.
func (s *RedisSink) Write(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return retryWithBackoff(ctx, func() error {
		pipe := s.client.TxPipeline()
		for _, rec := range records {
			pipe.XAdd(ctx, s.args(rec))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return Retryable(err)
		}
		return nil
	})
}

func (s *RedisSink) args(rec Record) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"id":          rec.ID,
			"time":        rec.Time.Format(time.RFC3339Nano),
			"request_id":  rec.RequestID,
			"index":       rec.Index,
			"fingerprint": rec.Fingerprint,
			"layout":      rec.Layout.String(),
			"rule":        rec.Rule,
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	return args
}

// Name returns "redis".
func (s *RedisSink) Name() string { return "redis" }

// Close closes the client.
func (s *RedisSink) Close() error {
	return s.client.Close()
}

// Ensure RedisSink implements Sink.
var _ Sink = (*RedisSink)(nil)
