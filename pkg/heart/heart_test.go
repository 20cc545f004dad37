package heart

import (
	"context"
	"net/http"
	"testing"

	"github.com/Sternrassler/chute-client/internal/testutil"
	"github.com/Sternrassler/chute-client/pkg/client"
)

func setup(t *testing.T) (*testutil.MockAPI, *Service) {
	t.Helper()

	mock := testutil.NewMockAPI()
	t.Cleanup(mock.Close)
	mock.SeedAlbum("abc", 2)

	c, err := client.New(client.DefaultConfig(mock.URL()))
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	return mock, NewService(c)
}

func TestCreateAndRemove(t *testing.T) {
	mock, svc := setup(t)
	ctx := context.Background()

	h, err := svc.Create(ctx, "abc", "a1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if h.Identifier == "" {
		t.Fatal("Create() returned heart without identifier")
	}

	req, _ := mock.LastRequest()
	if req.Method != http.MethodPost || req.Path != "/albums/abc/assets/a1/hearts" {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	if mock.HeartCount() != 1 {
		t.Errorf("HeartCount() = %d, want 1", mock.HeartCount())
	}

	if err := svc.Remove(ctx, h.Identifier); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	req, _ = mock.LastRequest()
	if req.Method != http.MethodDelete || req.Path != "/hearts/"+h.Identifier {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	if mock.HeartCount() != 0 {
		t.Errorf("HeartCount() = %d, want 0", mock.HeartCount())
	}
}

func TestCreate_Errors(t *testing.T) {
	mock, svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		album string
		asset string
		setup func()
	}{
		{name: "missing album", asset: "a1"},
		{name: "missing asset", album: "abc"},
		{name: "unknown asset", album: "abc", asset: "nope"},
		{
			name:  "response without identifier",
			album: "abc",
			asset: "a2",
			setup: func() {
				mock.SetResponse("/albums/abc/assets/a2/hearts", testutil.NewDataResponse(`{"id": 1}`))
			},
		},
		{
			name:  "server error",
			album: "abc",
			asset: "a1",
			setup: func() {
				mock.SetResponse("/albums/abc/assets/a1/hearts", testutil.NewServerErrorResponse())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
				defer mock.ClearOverrides()
			}
			if _, err := svc.Create(ctx, tt.album, tt.asset); err == nil {
				t.Error("Create() error = nil")
			}
		})
	}
}

func TestRemove_Errors(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	if err := svc.Remove(ctx, ""); err == nil {
		t.Error("Remove(\"\") error = nil")
	}
	if err := svc.Remove(ctx, "unknown"); !client.IsNotFound(err) {
		t.Errorf("Remove(unknown) error = %v, want 404", err)
	}
}
