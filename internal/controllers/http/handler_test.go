package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"order-board/internal/domain"
	"order-board/internal/mocks"
	"order-board/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(t *testing.T, repo *mocks.MockOrderRepository) (*gin.Engine, *services.Board) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	notifier := new(mocks.MockNotifier)
	notifier.On("Toast", mock.Anything, mock.Anything, mock.Anything).Maybe()
	notifier.On("Alert", mock.Anything, mock.Anything).Maybe()

	board := services.NewBoard(repo, notifier, domain.Identity{Role: domain.RoleGlobalAdmin})
	assert.NoError(t, board.Bootstrap(context.Background()))

	r := gin.New()
	NewHandler(board, nil).RegisterRoutes(r)
	return r, board
}

func seededRepo(status domain.OrderStatus) *mocks.MockOrderRepository {
	repo := new(mocks.MockOrderRepository)
	repo.On("ListActive", mock.Anything, (*string)(nil)).Return([]domain.Order{{
		ID:          "ord-1",
		OrderNumber: 1,
		Status:      status,
		OrderType:   domain.TypeTakeaway,
		TotalAmount: decimal.NewFromInt(30),
	}}, nil)
	return repo
}

func TestHandler_ChangeStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		orderID    string
		seedStatus domain.OrderStatus
		body       string
		patchErr   error
		wantCode   int
	}{
		{
			name:       "valid transition",
			orderID:    "ord-1",
			seedStatus: domain.StatusPending,
			body:       `{"status":"confirmed"}`,
			wantCode:   http.StatusNoContent,
		},
		{
			name:       "unknown order",
			orderID:    "missing",
			seedStatus: domain.StatusPending,
			body:       `{"status":"confirmed"}`,
			wantCode:   http.StatusNotFound,
		},
		{
			name:       "invalid transition",
			orderID:    "ord-1",
			seedStatus: domain.StatusPending,
			body:       `{"status":"ready"}`,
			wantCode:   http.StatusConflict,
		},
		{
			name:       "remote failure after rollback",
			orderID:    "ord-1",
			seedStatus: domain.StatusPending,
			body:       `{"status":"confirmed"}`,
			patchErr:   errors.New("backend down"),
			wantCode:   http.StatusBadGateway,
		},
		{
			name:       "malformed body",
			orderID:    "ord-1",
			seedStatus: domain.StatusPending,
			body:       `{`,
			wantCode:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo(tt.seedStatus)
			repo.On("PatchStatus", mock.Anything, tt.orderID, mock.Anything).Return(tt.patchErr).Maybe()

			r, board := newTestRouter(t, repo)

			req := httptest.NewRequest(http.MethodPost, "/board/orders/"+tt.orderID+"/status", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusBadGateway {
				visible := board.VisibleOrders()
				assert.Len(t, visible, 1)
				assert.Equal(t, tt.seedStatus, visible[0].Status, "failed command must leave local state rolled back")
			}
		})
	}
}

func TestHandler_GetBoard(t *testing.T) {
	r, _ := newTestRouter(t, seededRepo(domain.StatusPending))

	req := httptest.NewRequest(http.MethodGet, "/board/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ord-1"`)
	assert.Contains(t, w.Body.String(), `"pendingCount":1`)
}

func TestDecodePrefs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want BoardPrefs
	}{
		{
			name: "stored value round-trips",
			raw:  `{"soundEnabled":false,"compactView":true}`,
			want: BoardPrefs{SoundEnabled: false, CompactView: true},
		},
		{
			name: "corrupt value falls back to defaults",
			raw:  `{"soundEnabled":false,`,
			want: BoardPrefs{SoundEnabled: true},
		},
		{
			name: "non-object value falls back to defaults",
			raw:  `not json at all`,
			want: BoardPrefs{SoundEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodePrefs(tt.raw))
		})
	}
}
