package loadbalancer

import "sync"

// LoadBalancer hands out backend base URLs round-robin. The gateway uses one per
// proxied service so several replicas of the sales service can share the load.
type LoadBalancer struct {
	backends []string
	mu       sync.Mutex
	current  int
}

func New(backends []string) *LoadBalancer {
	return &LoadBalancer{backends: backends}
}

// Next returns the base URL the next request should go to.
func (lb *LoadBalancer) Next() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	backend := lb.backends[lb.current]
	lb.current = (lb.current + 1) % len(lb.backends)
	return backend
}

func (lb *LoadBalancer) Backends() []string {
	return lb.backends
}
