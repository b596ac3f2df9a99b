package auth

// hashingResult holds the outcome of a hashing job.
type hashingResult struct {
	hash string
	err  error
}

// hashingJob represents a password to be hashed.
type hashingJob struct {
	password   string
	resultChan chan<- hashingResult
}

// Hasher runs bcrypt hashing on a fixed pool of workers so registration
// bursts cannot saturate every core.
type Hasher struct {
	jobChan    chan hashingJob
	bcryptCost int
}

// NewHasher creates and starts a Hasher with numWorkers background workers.
func NewHasher(numWorkers int, cost int) *Hasher {
	h := &Hasher{
		jobChan:    make(chan hashingJob),
		bcryptCost: cost,
	}

	for i := 0; i < numWorkers; i++ {
		go h.worker()
	}

	return h
}

func (h *Hasher) worker() {
	for job := range h.jobChan {
		hash, err := HashPassword(job.password, h.bcryptCost)
		job.resultChan <- hashingResult{hash: hash, err: err}
	}
}

// GenerateHash sends a password to the worker pool and waits for the result.
func (h *Hasher) GenerateHash(password string) (string, error) {
	resultChan := make(chan hashingResult)
	h.jobChan <- hashingJob{password: password, resultChan: resultChan}

	result := <-resultChan
	return result.hash, result.err
}
