package tracker

import (
	"sync"
	"testing"
)

func TestTrackerCounts(t *testing.T) {
	tr := New()

	tr.TrackCacheHit("wikidata")
	tr.TrackCacheMiss("wikidata")
	tr.TrackAPISuccess("wikidata")
	tr.TrackAPIFailure("wikipedia")
	tr.TrackEmptyResult("wikidata")

	snap := tr.Snapshot()

	wd := snap["wikidata"]
	if wd.CacheHits != 1 || wd.CacheMisses != 1 || wd.APISuccess != 1 || wd.EmptyResult != 1 {
		t.Errorf("wikidata stats = %+v, want 1/1/1/1", wd)
	}
	if snap["wikipedia"].APIFailures != 1 {
		t.Errorf("wikipedia failures = %d, want 1", snap["wikipedia"].APIFailures)
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tr := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.TrackAPISuccess("wikidata")
		}()
	}
	wg.Wait()

	if got := tr.Snapshot()["wikidata"].APISuccess; got != 50 {
		t.Errorf("APISuccess = %d, want 50", got)
	}
}
