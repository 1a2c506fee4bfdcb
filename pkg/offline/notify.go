package offline

// Sink receives mutation settlement outcomes for surfacing to the user.
// Fire-and-forget: the core never consumes a return value.
type Sink interface {
	Success(msg string)
	Failure(msg string, err error)
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) Success(string) {}

func (NopSink) Failure(string, error) {}
