//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloo-solutions/suggestscore/internal/api/handlers"
	"github.com/cloo-solutions/suggestscore/internal/cli/client"
	"github.com/cloo-solutions/suggestscore/internal/completion"
	"github.com/cloo-solutions/suggestscore/internal/jobs"
	"github.com/cloo-solutions/suggestscore/internal/metrics"
	"github.com/cloo-solutions/suggestscore/internal/server"
	"github.com/cloo-solutions/suggestscore/internal/service"
	"github.com/rs/zerolog"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	Vendor       *FakeVendor
	ServerURL    string
	ServerCloser func()
	Client       *client.APIClient
	BinaryDir    string
}

// EnvOptions tunes the server under test.
type EnvOptions struct {
	MaxConcurrency int
	VendorTimeout  time.Duration
	RequestTimeout time.Duration
}

// FakeVendor serves autocomplete payloads from a query -> phrases table and
// records how many requests it saw and how many overlapped.
type FakeVendor struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string][]string
	statuses  map[string]int
	delay     time.Duration

	calls    int64
	inFlight int64
	peak     int64
}

func NewFakeVendor(t *testing.T, responses map[string][]string) *FakeVendor {
	v := &FakeVendor{
		responses: responses,
		statuses:  make(map[string]int),
	}
	v.Server = httptest.NewServer(http.HandlerFunc(v.serve))
	t.Cleanup(v.Close)
	return v
}

// FailWith makes every request for query answer with status.
func (v *FakeVendor) FailWith(query string, status int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses[query] = status
}

func (v *FakeVendor) SetDelay(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.delay = d
}

func (v *FakeVendor) Calls() int64 { return atomic.LoadInt64(&v.calls) }
func (v *FakeVendor) Peak() int64  { return atomic.LoadInt64(&v.peak) }

func (v *FakeVendor) serve(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&v.calls, 1)
	n := atomic.AddInt64(&v.inFlight, 1)
	defer atomic.AddInt64(&v.inFlight, -1)
	for {
		old := atomic.LoadInt64(&v.peak)
		if n <= old || atomic.CompareAndSwapInt64(&v.peak, old, n) {
			break
		}
	}

	q := r.URL.Query().Get("q")

	v.mu.Lock()
	phrases := v.responses[q]
	status := v.statuses[q]
	delay := v.delay
	v.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	if phrases == nil {
		phrases = []string{}
	}
	prefix, _ := json.Marshal(q)
	body, _ := json.Marshal(phrases)
	fmt.Fprintf(w, `[%s,%s,[{"nodes":[{"alias":"aps","name":"All Departments"}]}],[],"E2E"]`, prefix, body)
}

// SetupE2EEnv starts a fake vendor and the API server wired against it.
func SetupE2EEnv(t *testing.T, responses map[string][]string, opts EnvOptions) *E2ETestEnv {
	t.Helper()

	if opts.MaxConcurrency == 0 {
		opts.MaxConcurrency = 4
	}
	if opts.VendorTimeout == 0 {
		opts.VendorTimeout = 2 * time.Second
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	vendor := NewFakeVendor(t, responses)

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, closer := startServer(t, vendor.URL, opts, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          context.Background(),
		Vendor:       vendor,
		ServerURL:    serverURL,
		ServerCloser: closer,
		Client:       client.NewAPIClientWithConfig(serverURL),
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// BuildBinaries builds the suggestscore CLI
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "suggestscore-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "suggestscore"), "./cmd/suggestscore")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build suggestscore: %v\n%s", err, out)
	}
}

// RunSuggestscore runs the CLI against the test server and fake vendor
func (e *E2ETestEnv) RunSuggestscore(args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "suggestscore"), args...)
	cmd.Dir = e.BinaryDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("SUGGESTSCORE_API_URL=%s", e.ServerURL),
		fmt.Sprintf("SUGGESTSCORE_VENDOR_BASE_URL=%s", e.Vendor.URL),
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// GetText performs a GET against the test server and returns the raw body.
func (e *E2ETestEnv) GetText(path string) (int, string, error) {
	resp, err := http.Get(e.ServerURL + path)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), err
}

// GetRaw performs a GET against the test server and returns status and body.
func (e *E2ETestEnv) GetRaw(path string) (int, map[string]interface{}, error) {
	resp, err := http.Get(e.ServerURL + path)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// startServer starts the HTTP server with the estimation engine pointed at vendorURL
func startServer(t *testing.T, vendorURL string, opts EnvOptions, port int) (string, func()) {
	recorder := metrics.NewRecorder()
	completionClient := completion.NewClientWithConfig(completion.Config{
		BaseURL:  vendorURL,
		Timeout:  opts.VendorTimeout,
		Observer: recorder,
	})
	estimationSvc := service.NewEstimationServiceWithMetrics(completionClient, jobs.NewPool(opts.MaxConcurrency), recorder)

	router := server.NewRouter(server.RouterConfig{
		Logger:          zerolog.Nop(),
		EstimateHandler: handlers.NewEstimateHandler(estimationSvc, opts.RequestTimeout),
		MetricsHandler:  recorder.Handler(),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
