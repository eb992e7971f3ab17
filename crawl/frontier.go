package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/bloom"
)

// Compile-time interface verification.
var _ pageblocks.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory queue of page paths with Bloom filter
// deduplication. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	next  int
}

// NewFrontier creates a new Frontier sized for n expected paths
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the path has already been seen.
// Paths differing only by fragment are duplicates.
func (f *Frontier) Push(link pageblocks.CrawlLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	link.Path = stripFragment(link.Path)
	if f.seen.TestAndAdd(link.Path) {
		return false
	}

	heap.Push(f.queue, queued{link: link, order: f.next})
	f.next++
	return true
}

// Pop returns the next link by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (pageblocks.CrawlLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return pageblocks.CrawlLink{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.link, true
}

// Len returns the number of queued links.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the path has been processed or queued.
// Fragments are stripped before checking.
func (f *Frontier) Seen(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(path))
}

func stripFragment(path string) string {
	if idx := strings.Index(path, "#"); idx != -1 {
		return path[:idx]
	}
	return path
}

// queued is a heap entry. order keeps pops stable within a priority.
type queued struct {
	link  pageblocks.CrawlLink
	order int
}

// linkHeap implements heap.Interface for the crawl queue.
// Higher priority links are popped first.
type linkHeap []queued

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Priority != h[j].link.Priority {
		return h[i].link.Priority > h[j].link.Priority
	}
	return h[i].order < h[j].order
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
