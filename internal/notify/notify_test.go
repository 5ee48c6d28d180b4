package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	n := Notification{Title: "Connection Error", Description: "wrong network", Severity: SeverityDestructive}

	Multi{a, nil, b, LogSink{}}.Notify(context.Background(), n)

	assert.Equal(t, []Notification{n}, a.seen)
	assert.Equal(t, []Notification{n}, b.seen)
}

func setupDedup(t *testing.T, next Sink) (*Dedup, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	d, err := NewDedup(context.Background(), "redis://"+mr.Addr(), time.Minute, next)
	if err != nil {
		mr.Close()
		t.Fatalf("NewDedup: %v", err)
	}
	return d, mr
}

func TestDedup_SuppressesWithinWindow(t *testing.T) {
	rec := &recorder{}
	d, mr := setupDedup(t, rec)
	defer mr.Close()
	defer d.Close()

	ctx := context.Background()
	n := Notification{Title: "Error fetching prices", Description: "execution reverted", Severity: SeverityDestructive}

	d.Notify(ctx, n)
	d.Notify(ctx, n)
	assert.Equal(t, 1, rec.count())

	d.Notify(ctx, Notification{Title: "Error fetching prices", Description: "timeout", Severity: SeverityDestructive})
	assert.Equal(t, 2, rec.count())

	mr.FastForward(2 * time.Minute)
	d.Notify(ctx, n)
	assert.Equal(t, 3, rec.count())
}

func TestDedup_DeliversWhenRedisDown(t *testing.T) {
	rec := &recorder{}
	d, mr := setupDedup(t, rec)
	defer d.Close()

	mr.Close()

	d.Notify(context.Background(), Notification{Title: "x"})
	assert.Equal(t, 1, rec.count())
}

func TestNewDedup_BadURL(t *testing.T) {
	_, err := NewDedup(context.Background(), "not-a-url", time.Minute, &recorder{})
	assert.Error(t, err)
}

func TestTelegramSink(t *testing.T) {
	got := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken/sendMessage", r.URL.Path)
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		got <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewTelegramSink("token", 42)
	s.baseURL = srv.URL + "/bot"

	s.Notify(context.Background(), Notification{Title: "Connection Error", Description: "a < b", Severity: SeverityDestructive})

	select {
	case body := <-got:
		assert.Equal(t, float64(42), body["chat_id"])
		assert.Equal(t, "<b>Connection Error</b>\na &lt; b", body["text"])
	case <-time.After(2 * time.Second):
		t.Fatal("telegram request not received")
	}
}

func TestTelegramSink_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"description":"chat not found"}`))
	}))
	defer srv.Close()

	s := NewTelegramSink("token", 1)
	s.baseURL = srv.URL + "/bot"

	err := s.send(context.Background(), Notification{Title: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
