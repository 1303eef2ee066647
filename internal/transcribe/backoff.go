package transcribe

import "time"

const (
	DefaultPollInterval    = 5 * time.Second
	DefaultPollMaxInterval = 30 * time.Second
	DefaultPollFactor      = 1.5
	DefaultPollAttempts    = 60
	DefaultGracePeriod     = 2 * time.Second
)

// Backoff grows a delay exponentially up to a ceiling
type Backoff struct {
	Base   time.Duration
	Factor float64
	Max    time.Duration
}

// Next returns the delay following d.
func (b Backoff) Next(d time.Duration) time.Duration {
	next := time.Duration(float64(d) * b.Factor)
	if b.Max > 0 && next > b.Max {
		return b.Max
	}
	return next
}

// Schedule returns the first n delays, starting at Base.
func (b Backoff) Schedule(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := b.Base
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d = b.Next(d)
	}
	return delays
}

// PollPolicy bounds how long the poller waits for a job
type PollPolicy struct {
	MaxAttempts int
	Backoff     Backoff
	// Grace is waited after COMPLETED before the output is read.
	Grace time.Duration
}

// DefaultPollPolicy polls every 5s growing by 1.5x up to 30s, 60 times.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		MaxAttempts: DefaultPollAttempts,
		Backoff: Backoff{
			Base:   DefaultPollInterval,
			Factor: DefaultPollFactor,
			Max:    DefaultPollMaxInterval,
		},
		Grace: DefaultGracePeriod,
	}
}

func (p PollPolicy) withDefaults() PollPolicy {
	def := DefaultPollPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.Backoff.Base <= 0 {
		p.Backoff.Base = def.Backoff.Base
	}
	if p.Backoff.Factor < 1 {
		p.Backoff.Factor = def.Backoff.Factor
	}
	if p.Backoff.Max <= 0 {
		p.Backoff.Max = def.Backoff.Max
	}
	if p.Grace < 0 {
		p.Grace = 0
	}
	return p
}
