package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jarcoal/httpmock"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	testBase     = "https://bot.test"
	testToken    = "123:abc"
	testEndpoint = testBase + "/bot" + testToken + "/sendMessage"
	testChat     = "-100200"
)

func okBody(id int) string {
	b, _ := json.Marshal(map[string]any{"ok": true, "result": map[string]any{"message_id": id}})
	return string(b)
}

func newTestSender(t *testing.T, m Metrics, transport http.RoundTripper) *Sender {
	t.Helper()
	s, err := NewSender(testToken, 0, m, zap.NewNop(),
		WithHTTPClient(&http.Client{Transport: transport}),
		WithBaseURL(testBase+"/"),
		WithLimiter(ratelimit.NewUnlimited()),
		WithRetry(2, time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewSender() error = %v", err)
	}
	return s
}

func TestNewSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	if _, err := NewSender("", 20, NewMockMetrics(ctrl), zap.NewNop()); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := NewSender(testToken, 20, nil, zap.NewNop()); err == nil {
		t.Error("expected error for nil metrics")
	}
	s, err := NewSender(testToken, 0, NewMockMetrics(ctrl), nil)
	if err != nil {
		t.Fatalf("NewSender() error = %v", err)
	}
	if s.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", s.baseURL, DefaultBaseURL)
	}
}

func TestSender_Send(t *testing.T) {
	tests := []struct {
		name      string
		msgs      []string
		responder httpmock.Responder
		calls     int
		wantIDs   []int64
		wantErrs  []bool
	}{
		{
			name:      "all delivered",
			msgs:      []string{"one", "two"},
			responder: httpmock.NewStringResponder(http.StatusOK, okBody(5)).Then(httpmock.NewStringResponder(http.StatusOK, okBody(6))),
			calls:     2,
			wantIDs:   []int64{5, 6},
			wantErrs:  []bool{false, false},
		},
		{
			name: "bad request does not stop the rest",
			msgs: []string{"<b>broken", "two"},
			responder: httpmock.NewStringResponder(http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`).
				Then(httpmock.NewStringResponder(http.StatusOK, okBody(7))),
			calls:    2,
			wantIDs:  []int64{0, 7},
			wantErrs: []bool{true, false},
		},
		{
			name: "rate limited then delivered",
			msgs: []string{"one"},
			responder: httpmock.NewStringResponder(http.StatusTooManyRequests, `{"ok":false,"error_code":429,"parameters":{"retry_after":1}}`).
				Then(httpmock.NewStringResponder(http.StatusOK, okBody(8))),
			calls:    2,
			wantIDs:  []int64{8},
			wantErrs: []bool{false},
		},
		{
			name:      "server errors exhaust retries",
			msgs:      []string{"one"},
			responder: httpmock.NewStringResponder(http.StatusBadGateway, ""),
			calls:     3,
			wantIDs:   []int64{0},
			wantErrs:  []bool{true},
		},
		{
			name:      "api reports failure",
			msgs:      []string{"one"},
			responder: httpmock.NewStringResponder(http.StatusOK, `{"ok":false,"error_code":400,"description":"chat not found"}`),
			calls:     1,
			wantIDs:   []int64{0},
			wantErrs:  []bool{true},
		},
		{
			name:      "nothing to send",
			msgs:      nil,
			responder: httpmock.NewStringResponder(http.StatusOK, okBody(1)),
			calls:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			transport := httpmock.NewMockTransport()
			transport.RegisterResponder(http.MethodPost, testEndpoint, tt.responder)

			m := NewMockMetrics(ctrl)
			for _, failed := range tt.wantErrs {
				if failed {
					m.EXPECT().Observe(gomock.Not(nil), gomock.AssignableToTypeOf(time.Time{}))
				} else {
					m.EXPECT().Observe(nil, gomock.AssignableToTypeOf(time.Time{}))
				}
			}

			got := newTestSender(t, m, transport).Send(context.Background(), testChat, tt.msgs)
			if len(got) != len(tt.msgs) {
				t.Fatalf("Send() returned %d results, want %d", len(got), len(tt.msgs))
			}
			for i, r := range got {
				if r.Index != i {
					t.Errorf("result %d Index = %d", i, r.Index)
				}
				if r.MessageID != tt.wantIDs[i] {
					t.Errorf("result %d MessageID = %d, want %d", i, r.MessageID, tt.wantIDs[i])
				}
				if (r.Err != nil) != tt.wantErrs[i] {
					t.Errorf("result %d Err = %v, wantErr %v", i, r.Err, tt.wantErrs[i])
				}
				if r.Err != nil && !errors.Is(r.Err, ErrDeliveryFailed) {
					t.Errorf("result %d Err = %v, want ErrDeliveryFailed", i, r.Err)
				}
			}
			if n := transport.GetTotalCallCount(); n != tt.calls {
				t.Errorf("made %d requests, want %d", n, tt.calls)
			}
		})
	}
}

func TestSender_Send_RequestBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	var got sendMessageRequest
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, testEndpoint, func(req *http.Request) (*http.Response, error) {
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		return httpmock.NewStringResponse(http.StatusOK, okBody(1)), nil
	})

	m := NewMockMetrics(ctrl)
	m.EXPECT().Observe(nil, gomock.Any())

	newTestSender(t, m, transport).Send(context.Background(), testChat, []string{"<b>📦 block</b>"})

	want := sendMessageRequest{
		ChatID:                testChat,
		Text:                  "<b>📦 block</b>",
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestSender_Send_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusOK, okBody(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := newTestSender(t, NewMockMetrics(ctrl), transport).Send(ctx, testChat, []string{"one", "two"})
	if Failed(got) != 2 {
		t.Fatalf("Failed() = %d, want 2", Failed(got))
	}
	for _, r := range got {
		if !errors.Is(r.Err, context.Canceled) || !errors.Is(r.Err, ErrDeliveryFailed) {
			t.Errorf("result %d Err = %v", r.Index, r.Err)
		}
	}
	if n := transport.GetTotalCallCount(); n != 0 {
		t.Errorf("made %d requests, want 0", n)
	}
}
