package pagination

import (
	"context"
	"errors"
	"testing"
)

func TestDrain_StopsWhenExhausted(t *testing.T) {
	f := &fakeFetcher{responses: []*Response{
		{Records: records(7, 6, 5)},
		{Records: records(4, 3, 2)},
		{Records: records(1)},
	}}
	c := NewCollection(testOptions(f), Query{Page: 1, PerPage: 3, Filters: Params{}}, []testItem{{ID: 8}}, MoreAvailable)

	pages, err := Drain(context.Background(), c, 0)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if c.Len() != 8 {
		t.Errorf("Len() = %d, want 8", c.Len())
	}
	if c.HasMore() {
		t.Error("HasMore() = true after drain")
	}
}

func TestDrain_MaxPages(t *testing.T) {
	f := &fakeFetcher{responses: []*Response{
		{Records: records(7, 6, 5)},
		{Records: records(4, 3, 2)},
	}}
	c := NewCollection(testOptions(f), Query{Page: 1, PerPage: 3, Filters: Params{}}, []testItem{{ID: 8}}, MoreUnknown)

	pages, err := Drain(context.Background(), c, 1)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if pages != 1 || f.callCount() != 1 {
		t.Errorf("pages = %d, calls = %d, want 1 and 1", pages, f.callCount())
	}
}

func TestDrain_SkipsExhaustedCollection(t *testing.T) {
	f := &fakeFetcher{}
	c := NewCollection(testOptions(f), Query{Page: 1, Filters: Params{}}, nil, MoreExhausted)

	pages, err := Drain(context.Background(), c, 0)
	if err != nil || pages != 0 || f.callCount() != 0 {
		t.Errorf("Drain() = %d, %v with %d calls, want no fetch", pages, err, f.callCount())
	}
}

func TestDrain_PropagatesError(t *testing.T) {
	fetchErr := errors.New("unavailable")
	f := &fakeFetcher{err: fetchErr}
	c := NewCollection(testOptions(f), Query{Page: 1, Filters: Params{}}, nil, MoreUnknown)

	if _, err := Drain(context.Background(), c, 0); !errors.Is(err, fetchErr) {
		t.Errorf("Drain() error = %v, want %v", err, fetchErr)
	}
}
