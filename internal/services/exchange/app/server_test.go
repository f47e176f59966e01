package server

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	srv, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv
}

func TestServerCreatesStateAndServesPages(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "estado_intercambio.json")
	srv := startServer(t, Config{
		HTTPAddr:     "127.0.0.1:0",
		DataPath:     dataPath,
		Participants: []string{"Ana", "Beto"},
	})

	if _, err := os.Stat(dataPath); err != nil {
		t.Fatalf("state file not created on startup: %v", err)
	}

	base := "http://" + srv.Addr()
	resp, err := http.PostForm(base+"/", url.Values{"nombre": {"Ana"}})
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(string(body), `<p class="result">Beto</p>`) {
		t.Fatalf("expected Beto as receiver, got %s", body)
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if !strings.Contains(string(raw), `"Ana": "Beto"`) {
		t.Fatalf("state = %s, want Ana assigned to Beto", raw)
	}

	resp, err = http.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}

func TestServerReportsGRPCHealth(t *testing.T) {
	srv := startServer(t, Config{
		HTTPAddr: "127.0.0.1:0",
		GRPCAddr: "127.0.0.1:0",
		Store:    StoreSQLite,
		DataPath: filepath.Join(t.TempDir(), "intercambio.db"),
	})

	conn, err := grpc.NewClient(srv.GRPCAddr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: HealthService})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", resp.GetStatus())
	}
}

func TestServerWithoutGRPC(t *testing.T) {
	srv, err := New(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		DataPath: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.Close()
	if got := srv.GRPCAddr(); got != "" {
		t.Fatalf("grpc addr = %q, want empty", got)
	}
}

func TestNewFailsOnCorruptState(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(dataPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write state: %v", err)
	}
	if _, err := New(context.Background(), Config{HTTPAddr: "127.0.0.1:0", DataPath: dataPath}); err == nil {
		t.Fatal("expected error for corrupt state")
	}
}

func TestNewRejectsDuplicateParticipants(t *testing.T) {
	_, err := New(context.Background(), Config{
		HTTPAddr:     "127.0.0.1:0",
		DataPath:     filepath.Join(t.TempDir(), "state.json"),
		Participants: []string{"Ana", "Ana"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate participants")
	}
}
