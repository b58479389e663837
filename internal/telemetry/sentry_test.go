package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

func TestInit_EmptyDSNIsNoop(t *testing.T) {
	shutdown, err := Init(Config{})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()
}

func TestStartSpan_PreservesContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.WithValue(context.Background(), ctxKey("k"), "v"), time.Minute)
	defer cancel()

	spanCtx, span := StartSpan(ctx, "estimation.estimate", SpanAttributes{Keyword: "shoes"})
	defer span.End()

	assert.Equal(t, "v", spanCtx.Value(ctxKey("k")))
	_, hasDeadline := spanCtx.Deadline()
	assert.True(t, hasDeadline)

	childCtx, child := StartSpan(spanCtx, "completion.fetch", SpanAttributes{Query: "red shoes"})
	defer child.End()

	cancel()
	select {
	case <-childCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("child span context did not observe parent cancellation")
	}
}

func TestSpan_NilInnerIsSafe(t *testing.T) {
	s := &Span{}

	assert.NotPanics(t, func() {
		s.SetData("k", 1)
		s.SetStatus(sentry.SpanStatusOK)
		s.SetError(errors.New("boom"))
		s.End()
	})
}

func TestSpan_SetError(t *testing.T) {
	_, span := StartSpan(context.Background(), "estimation.estimate", SpanAttributes{})
	defer span.End()

	span.SetError(nil)
	assert.NotEqual(t, sentry.SpanStatusInternalError, span.inner.Status)

	span.SetError(errors.New("vendor returned 503"))
	assert.Equal(t, sentry.SpanStatusInternalError, span.inner.Status)
	assert.Equal(t, "vendor returned 503", span.inner.Data["error"])
}

// recordingHub returns a context carrying a hub whose client drops every event
// after recording it.
func recordingHub(t *testing.T) (context.Context, *[]*sentry.Event, *[]*sentry.Breadcrumb) {
	t.Helper()

	var events []*sentry.Event
	var crumbs []*sentry.Breadcrumb
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
		BeforeBreadcrumb: func(b *sentry.Breadcrumb, _ *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			crumbs = append(crumbs, b)
			return b
		},
	})
	require.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), &events, &crumbs
}

func TestCaptureError_UsesHubFromContext(t *testing.T) {
	ctx, events, _ := recordingHub(t)

	CaptureError(ctx, errors.New("expansion queries for \"shoes\": vendor returned 502"))

	require.Len(t, *events, 1)
	require.NotEmpty(t, (*events)[0].Exception)
	assert.Contains(t, (*events)[0].Exception[0].Value, "vendor returned 502")
}

func TestAddBreadcrumb_UsesHubFromContext(t *testing.T) {
	ctx, _, crumbs := recordingHub(t)

	AddBreadcrumb(ctx, "vendor", `query "red shoes" failed`)

	require.Len(t, *crumbs, 1)
	assert.Equal(t, "vendor", (*crumbs)[0].Category)
	assert.Equal(t, `query "red shoes" failed`, (*crumbs)[0].Message)
	assert.Equal(t, sentry.LevelInfo, (*crumbs)[0].Level)
}
