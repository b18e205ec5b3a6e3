package clock

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/go-i2p/crypto/rand"
	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"golang.org/x/time/rate"
)

// NTPClient queries one NTP server.
type NTPClient interface {
	QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error)
}

// DefaultNTPClient queries real servers through github.com/beevik/ntp.
type DefaultNTPClient struct{}

func (c *DefaultNTPClient) QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error) {
	return ntp.QueryWithOptions(host, options)
}

// Listener is told about every successful synchronization.
type Listener interface {
	OnSync(now normtime.Time, offset time.Duration)
}

// FailureListener may be implemented by a Listener that also wants to hear
// about failed rounds.
type FailureListener interface {
	Listener
	OnSyncFailure(consecutiveFails int, err error)
}

const (
	minQueryInterval      = 5 * time.Minute
	defaultQueryInterval  = 11 * time.Minute
	defaultTimeout        = 5 * time.Second
	defaultConcurring     = 3
	defaultMinSyncSpacing = 30 * time.Second
	maxConsecutiveFails   = 10
	maxVariance           = 10 * time.Second
	failureRetry          = 30 * time.Second
	failureBackoff        = 30 * time.Minute
)

// DefaultServers is the public NTP pool.
var DefaultServers = []string{"0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org", "3.pool.ntp.org"}

// Options configures a Synchronizer.
type Options struct {
	// Servers are the NTP hosts to pick from.
	Servers []string
	// Timeout bounds a single query.
	Timeout time.Duration
	// Concurring is how many servers must agree, clamped to 1-4.
	Concurring int
	// Interval is the pause between background rounds, at least 5 minutes.
	Interval time.Duration
	// MinSyncSpacing is the least time between two rounds. Calls to Sync
	// that come sooner wait.
	MinSyncSpacing time.Duration
}

// DefaultOptions returns the pool servers with the standard limits.
func DefaultOptions() Options {
	return Options{
		Servers:        slices.Clone(DefaultServers),
		Timeout:        defaultTimeout,
		Concurring:     defaultConcurring,
		Interval:       defaultQueryInterval,
		MinSyncSpacing: defaultMinSyncSpacing,
	}
}

// normalize clamps the options to their valid ranges.
func (o Options) normalize() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Concurring < 1 {
		o.Concurring = 1
	} else if o.Concurring > 4 {
		o.Concurring = 4
	}
	if o.Interval < minQueryInterval {
		o.Interval = minQueryInterval
	}
	if o.MinSyncSpacing <= 0 {
		o.MinSyncSpacing = defaultMinSyncSpacing
	}
	o.Servers = slices.Clone(o.Servers)
	return o
}

// Synchronizer keeps a Clock's offset in line with NTP time.
type Synchronizer struct {
	clock   *Clock
	client  NTPClient
	opts    Options
	limiter *rate.Limiter

	mu               sync.Mutex
	listeners        []Listener
	consecutiveFails int
	lastSync         time.Time
	isRunning        bool
	stopChan         chan struct{}
	waitGroup        sync.WaitGroup
}

// NewSynchronizer returns a Synchronizer that corrects c using client.
func NewSynchronizer(c *Clock, client NTPClient, opts Options) *Synchronizer {
	opts = opts.normalize()
	return &Synchronizer{
		clock:   c,
		client:  client,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.MinSyncSpacing), 1),
	}
}

// Options returns the effective options.
func (s *Synchronizer) Options() Options {
	o := s.opts
	o.Servers = slices.Clone(o.Servers)
	return o
}

// AddListener registers l for synchronization events.
func (s *Synchronizer) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// RemoveListener unregisters l.
func (s *Synchronizer) RemoveListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.listeners {
		if x == l {
			s.listeners = slices.Delete(s.listeners, i, i+1)
			return
		}
	}
}

// LastSync returns when the offset was last updated, or the zero time.
func (s *Synchronizer) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// Sync runs one round: it queries the configured number of servers, checks
// that they agree and stores the median offset in the clock. It blocks
// until the rate limiter admits the round or ctx is done.
func (s *Synchronizer) Sync(ctx context.Context) (time.Duration, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, oops.Wrapf(err, "waiting for NTP rate limit")
	}
	offset, err := s.query(ctx)
	if err != nil {
		s.recordFailure(err)
		return 0, err
	}
	s.stamp(offset)
	return offset, nil
}

func (s *Synchronizer) query(ctx context.Context) (time.Duration, error) {
	if len(s.opts.Servers) == 0 {
		return 0, oops.Wrapf(ErrNoServers, "sync")
	}
	found := make([]time.Duration, 0, s.opts.Concurring)
	for len(found) < s.opts.Concurring {
		delta, err := s.sampleWithRetry(ctx)
		if err != nil {
			return 0, err
		}
		if len(found) > 0 && absDuration(delta-found[0]) > maxVariance {
			log.WithFields(logger.Fields{
				"at":       "clock.Synchronizer.query",
				"first":    found[0].String(),
				"offset":   delta.String(),
				"variance": maxVariance.String(),
			}).Debug("NTP samples disagree")
			return 0, oops.Wrapf(ErrInconsistent, "offsets %s and %s", found[0], delta)
		}
		found = append(found, delta)
	}
	return median(found), nil
}

// sampleWithRetry asks random servers until one gives a valid answer or
// every server has had a turn.
func (s *Synchronizer) sampleWithRetry(ctx context.Context) (time.Duration, error) {
	var lastErr error
	for attempt := 0; attempt < len(s.opts.Servers); attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, oops.Wrapf(err, "NTP query cancelled")
		}
		delta, err := s.sample(ctx, s.selectRandomServer())
		if err == nil {
			return delta, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

func (s *Synchronizer) sample(ctx context.Context, server string) (time.Duration, error) {
	timeout := s.opts.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	r, err := s.client.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		log.WithError(err).WithField("server", server).Debug("NTP query failed")
		return 0, oops.Wrapf(err, "querying %s", server)
	}
	if err := validateResponse(server, r); err != nil {
		return 0, err
	}
	return r.ClockOffset, nil
}

func (s *Synchronizer) selectRandomServer() string {
	return s.opts.Servers[rand.Intn(len(s.opts.Servers))]
}

// median returns the middle value, or the mean of the two middle values.
func median(deltas []time.Duration) time.Duration {
	if len(deltas) == 0 {
		return 0
	}
	sorted := slices.Clone(deltas)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stamp stores the offset and notifies the listeners.
func (s *Synchronizer) stamp(offset time.Duration) {
	s.clock.SetOffset(offset)

	s.mu.Lock()
	s.consecutiveFails = 0
	s.lastSync = nowFunc()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	now, err := s.clock.Now()
	if err != nil {
		log.WithError(err).Warn("corrected clock is outside the Normtime range")
		return
	}
	log.WithFields(logger.Fields{
		"at":     "clock.Synchronizer.stamp",
		"offset": offset.String(),
		"now":    now.String(),
	}).Debug("clock synchronized")
	for _, l := range listeners {
		l.OnSync(now, offset)
	}
}

func (s *Synchronizer) recordFailure(err error) {
	s.mu.Lock()
	s.consecutiveFails++
	fails := s.consecutiveFails
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	log.WithError(err).WithField("consecutive_fails", fails).Debug("NTP sync failed")
	for _, l := range listeners {
		if fl, ok := l.(FailureListener); ok {
			fl.OnSyncFailure(fails, err)
		}
	}
}

// Start runs Sync in the background until Stop is called. A stopped
// Synchronizer may be started again.
func (s *Synchronizer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.waitGroup.Add(1)
	go s.run(s.stopChan)
}

// Stop ends the background loop and waits for it to exit.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.stopChan)
	s.mu.Unlock()
	s.waitGroup.Wait()
}

func (s *Synchronizer) run(stop <-chan struct{}) {
	defer s.waitGroup.Done()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		_, err := s.Sync(ctx)
		if ctx.Err() != nil {
			return
		}
		if !waitWithCancellation(stop, s.nextDelay(err != nil)) {
			return
		}
	}
}

// nextDelay picks the pause before the next round: short after a failure,
// long after many, and the interval plus jitter after a success.
func (s *Synchronizer) nextDelay(failed bool) time.Duration {
	if failed {
		s.mu.Lock()
		fails := s.consecutiveFails
		s.mu.Unlock()
		if fails >= maxConsecutiveFails {
			return failureBackoff
		}
		return failureRetry
	}
	jitter := time.Duration(rand.Int63n(int64(s.opts.Interval / 2)))
	return s.opts.Interval + jitter
}

func waitWithCancellation(stop <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop:
		return false
	}
}
