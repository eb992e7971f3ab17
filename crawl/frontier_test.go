package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_paths(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	link := pageblocks.CrawlLink{Path: "/docs/install"}

	assert.True(t, f.Push(link), "first push should succeed")
	assert.False(t, f.Push(link), "duplicate path should be rejected")
	assert.False(t, f.Push(pageblocks.CrawlLink{Path: "/docs/install#usage"}), "fragment should be ignored")
}

func TestFrontier_Pop_returns_top_links_first(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push(pageblocks.CrawlLink{Path: "/blog/1"})
	f.Push(pageblocks.CrawlLink{Path: "/pricing", Priority: pageblocks.PriorityTop})
	f.Push(pageblocks.CrawlLink{Path: "/blog/2"})
	f.Push(pageblocks.CrawlLink{Path: "/about", Priority: pageblocks.PriorityTop})
	f.Push(pageblocks.CrawlLink{Path: "/blog/3"})

	var got []string
	for {
		link, ok := f.Pop()
		if !ok {
			break
		}
		got = append(got, link.Path)
	}

	assert.Equal(t, []string{"/pricing", "/about", "/blog/1", "/blog/2", "/blog/3"}, got)
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push(pageblocks.CrawlLink{Path: "/a"})
	f.Push(pageblocks.CrawlLink{Path: "/b"})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Seen_tracks_all_pushed_paths(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	assert.False(t, f.Seen("/page"))

	f.Push(pageblocks.CrawlLink{Path: "/page#top"})
	assert.True(t, f.Seen("/page"))

	f.Pop()
	assert.True(t, f.Seen("/page"), "popped path should still be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	for i := range numGoroutines {
		go func(id int) {
			defer wg.Done()
			for j := range numOpsPerGoroutine {
				f.Push(pageblocks.CrawlLink{Path: fmt.Sprintf("/%d/%d", id, j)})
			}
		}(i)
	}

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numOpsPerGoroutine {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	for i := range numGoroutines {
		for j := range numOpsPerGoroutine {
			path := fmt.Sprintf("/%d/%d", i, j)
			assert.True(t, f.Seen(path), "pushed path %s should be seen", path)
		}
	}
}
