package summary

import "time"

// Pacer enforces a minimum interval between consecutive LLM calls. This is
// an external rate-limit accommodation, not a correctness requirement; an
// interval of zero disables it.
type Pacer struct {
	interval time.Duration
	last     time.Time
	sleep    func(time.Duration)
	now      func() time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Wait blocks until the configured interval since the previous call has
// elapsed, then records the new call time.
func (p *Pacer) Wait() {
	if p.interval > 0 && !p.last.IsZero() {
		if rest := p.interval - p.now().Sub(p.last); rest > 0 {
			p.sleep(rest)
		}
	}
	p.last = p.now()
}
