package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/service"
	"github.com/gin-gonic/gin"
)

type fakeSlotService struct {
	slot *model.Slot
	list []*model.Slot
	err  error
}

func (f *fakeSlotService) Create(context.Context, string, string, int64, int64) (*model.Slot, error) {
	return f.slot, f.err
}
func (f *fakeSlotService) ListMine(context.Context, string) ([]*model.Slot, error) {
	return f.list, f.err
}
func (f *fakeSlotService) Update(context.Context, string, string, service.SlotUpdate) (*model.Slot, error) {
	return f.slot, f.err
}
func (f *fakeSlotService) Delete(context.Context, string, string) error {
	return f.err
}

type fakeSwapService struct {
	req    *model.SwapRequest
	status model.SwapStatus
	list   []*model.SwapRequest
	err    error

	respondCalls int
}

func (f *fakeSwapService) Propose(context.Context, string, string, string) (*model.SwapRequest, error) {
	return f.req, f.err
}
func (f *fakeSwapService) Respond(context.Context, string, string, bool) (model.SwapStatus, error) {
	f.respondCalls++
	return f.status, f.err
}
func (f *fakeSwapService) ListForUser(context.Context, string) ([]*model.SwapRequest, error) {
	return f.list, f.err
}

type fakeMarketplaceService struct {
	list []*model.Slot
	err  error
}

func (f *fakeMarketplaceService) List(context.Context, string) ([]*model.Slot, error) {
	return f.list, f.err
}

// newTestRouter собирает роутер с фиктивной аутентификацией
func newTestRouter(register func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(CtxUserIDKey, "user-1")
	})
	register(r.Group(""))
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProposeErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot missing", apperr.NotFound("their slot not found"), http.StatusNotFound},
		{"not owner", apperr.Forbidden("not the owner of mySlot"), http.StatusForbidden},
		{"not swappable", apperr.InvalidState("my slot is not SWAPPABLE"), http.StatusBadRequest},
		{"self swap", apperr.Validation("cannot swap with yourself"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSwapHandler(&fakeSwapService{err: tc.err})
			r := newTestRouter(func(g *gin.RouterGroup) {
				g.POST("/swap-request", h.Propose)
			})

			rec := perform(r, http.MethodPost, "/swap-request", `{"mySlotId":"a","theirSlotId":"b"}`)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body["error"] == "" {
				t.Fatalf("expected error message in body: %s", rec.Body.String())
			}
		})
	}
}

func TestProposeSuccess(t *testing.T) {
	h := NewSwapHandler(&fakeSwapService{req: &model.SwapRequest{
		ID:          "req-1",
		RequesterID: "user-1",
		ResponderID: "user-2",
		Status:      model.SwapStatusPending,
	}})
	r := newTestRouter(func(g *gin.RouterGroup) {
		g.POST("/swap-request", h.Propose)
	})

	rec := perform(r, http.MethodPost, "/swap-request", `{"mySlotId":"a","theirSlotId":"b"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}

	var got model.SwapRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "req-1" || got.Status != model.SwapStatusPending {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRespondRequiresAcceptFlag(t *testing.T) {
	fake := &fakeSwapService{status: model.SwapStatusAccepted}
	h := NewSwapHandler(fake)
	r := newTestRouter(func(g *gin.RouterGroup) {
		g.POST("/swap-response/:requestId", h.Respond)
	})

	rec := perform(r, http.MethodPost, "/swap-response/req-1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", rec.Code)
	}
	if fake.respondCalls != 0 {
		t.Fatalf("service must not be called without accept flag")
	}

	rec = perform(r, http.MethodPost, "/swap-response/req-1", `{"accept":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}

	var body struct {
		Success bool             `json:"success"`
		Status  model.SwapStatus `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Success || body.Status != model.SwapStatusAccepted {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateSlotRejectsNonNumericTime(t *testing.T) {
	h := NewSlotHandler(&fakeSlotService{})
	r := newTestRouter(func(g *gin.RouterGroup) {
		g.POST("/events", h.Create)
	})

	rec := perform(r, http.MethodPost, "/events", `{"title":"x","startTime":"tomorrow","endTime":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", rec.Code)
	}
}

func TestDeleteSlotResponseShape(t *testing.T) {
	h := NewSlotHandler(&fakeSlotService{})
	r := newTestRouter(func(g *gin.RouterGroup) {
		g.DELETE("/events/:id", h.Delete)
	})

	rec := perform(r, http.MethodDelete, "/events/slot-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListMineReturnsEmptyArray(t *testing.T) {
	h := NewSlotHandler(&fakeSlotService{list: []*model.Slot{}})
	r := newTestRouter(func(g *gin.RouterGroup) {
		g.GET("/events", h.ListMine)
	})

	rec := perform(r, http.MethodGet, "/events", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestMarketplaceIncludesOwnerName(t *testing.T) {
	h := NewMarketplaceHandler(&fakeMarketplaceService{list: []*model.Slot{
		{ID: "s-1", OwnerID: "user-2", Title: "Смена", StartTime: 1, EndTime: 2, Status: model.SlotStatusSwappable, OwnerName: "bob"},
	}})
	r := newTestRouter(func(g *gin.RouterGroup) {
		g.GET("/swappable-slots", h.List)
	})

	rec := perform(r, http.MethodGet, "/swappable-slots", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ownerName":"bob"`) {
		t.Fatalf("ownerName missing: %s", rec.Body.String())
	}
}
