// Package audit persists layout routing decisions.
//
// Each routed slide produces a [Record] carrying the chosen layout, the rule
// that chose it and a fingerprint of the slide content. Records go to a
// [Sink]:
//
//   - [NullSink] discards everything (the default)
//   - [FileSink] appends JSON lines to a local file
//   - [RedisSink] appends entries to a Redis stream
//   - [MongoSink] inserts documents into a MongoDB collection
//
// [Open] picks a sink from a URL:
//
//	sink, err := audit.Open(ctx, "redis://localhost:6379/0?stream=decks")
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//
// Sinks never influence routing. A failed write is reported to the caller
// and the layouts already chosen stay valid.
package audit
