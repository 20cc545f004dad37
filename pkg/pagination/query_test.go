package pagination

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		sort string
		want Mode
	}{
		{"", ModeCursor},
		{"id", ModeCursor},
		{"time", ModeCursor},
		{"hearts", ModePageNumber},
		{"votes", ModePageNumber},
		{"ID", ModePageNumber},
	}

	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			if got := ModeFor(tt.sort); got != tt.want {
				t.Errorf("ModeFor(%q) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(Params{"album": "abc", "per_page": "3", "sort": "hearts"})
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
	if q.PerPage != 3 {
		t.Errorf("PerPage = %d, want 3", q.PerPage)
	}
	if q.Sort != "hearts" {
		t.Errorf("Sort = %q, want hearts", q.Sort)
	}
	if q.Filter("album") != "abc" {
		t.Errorf("Filter(album) = %q, want abc", q.Filter("album"))
	}
	if q.Mode() != ModePageNumber {
		t.Errorf("Mode() = %v, want page", q.Mode())
	}
}

func TestParseQuery_CallerPageWins(t *testing.T) {
	q, err := ParseQuery(Params{"page": "10"})
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	if q.Page != 10 {
		t.Errorf("Page = %d, want 10", q.Page)
	}
}

func TestParseQuery_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"page not a number", Params{"page": "two"}},
		{"per page not a number", Params{"per_page": "x"}},
		{"negative per page", Params{"per_page": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.params)
			var perr *ParamError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseQuery() error = %v, want *ParamError", err)
			}
		})
	}
}

func TestQuery_EffectivePerPage(t *testing.T) {
	if got := (Query{}).EffectivePerPage(); got != DefaultPerPage {
		t.Errorf("EffectivePerPage() = %d, want %d", got, DefaultPerPage)
	}
	if got := (Query{PerPage: 12}).EffectivePerPage(); got != 12 {
		t.Errorf("EffectivePerPage() = %d, want 12", got)
	}
}

func TestQuery_Params(t *testing.T) {
	q := Query{Page: 2, Sort: "time", PerPage: 4, Filters: Params{"album": "abc"}}
	want := Params{"album": "abc", "page": "2", "sort": "time", "per_page": strconv.Itoa(4)}
	if got := q.Params(); !reflect.DeepEqual(got, want) {
		t.Errorf("Params() = %v, want %v", got, want)
	}
}

func TestQuery_CloneIsDeep(t *testing.T) {
	q := Query{Filters: Params{"album": "abc"}}
	c := q.Clone()
	c.Filters["album"] = "xyz"
	if q.Filters["album"] != "abc" {
		t.Error("Clone() shares filters with the original")
	}
}
