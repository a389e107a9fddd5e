package hash

import "context"

// Pool runs hashing and verification on a fixed set of worker goroutines so
// the tens-of-milliseconds Argon2id work never stalls unrelated requests.
// Callers block until their job completes; other requests are unaffected.
type Pool struct {
	hasher *Argon2Hasher
	jobs   chan func()
}

// NewPool starts workers goroutines draining the job queue.
func NewPool(hasher *Argon2Hasher, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		hasher: hasher,
		jobs:   make(chan func()),
	}
	for i := 0; i < workers; i++ {
		go func() {
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Hash derives a salted hash on a worker.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	done := make(chan result, 1)

	select {
	case p.jobs <- func() {
		h, err := p.hasher.Hash(password)
		done <- result{hash: h, err: err}
	}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	res := <-done
	return res.hash, res.err
}

// Verify compares a candidate password against a stored hash on a worker.
// Returns ErrMismatch on a failed comparison.
func (p *Pool) Verify(ctx context.Context, password, encodedHash string) error {
	done := make(chan error, 1)

	select {
	case p.jobs <- func() {
		done <- p.hasher.Verify(password, encodedHash)
	}:
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-done
}
