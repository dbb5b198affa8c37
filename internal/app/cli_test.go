package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openmotive/carmd-go/internal/logger"
	"github.com/openmotive/carmd-go/pkg/carmd"
)

func newTestCLI(t *testing.T, baseURL string) (*CLI, *bytes.Buffer) {
	t.Helper()
	client, err := carmd.NewClient(carmd.ClientConfig{
		BaseURL: baseURL,
		Key:     "Basic dGVzdA==",
		Secret:  "test-partner-token",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	out := &bytes.Buffer{}
	return &CLI{client: client, log: logger.NopLogger{}, out: out}, out
}

func TestCLIDecodePrintsBody(t *testing.T) {
	body := `{"data":{"make":"KIA","model":"SORENTO","year":2013}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("vin"); got != "5XYKTDA26DG338929" {
			t.Fatalf("unexpected vin param: %q", got)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	cli, out := newTestCLI(t, srv.URL)
	if err := cli.Run(context.Background(), []string{"decode", "5XYKTDA26DG338929"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != body+"\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestCLIDecodeBatchFile(t *testing.T) {
	var vins []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vins = append(vins, r.URL.Query().Get("vin"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "vins.yaml")
	content := "vins:\n  - 5XYKTDA26DG338929\n  - 1HGCM82633A004352\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write vin file: %v", err)
	}

	cli, out := newTestCLI(t, srv.URL)
	if err := cli.Run(context.Background(), []string{"decode", "-f", file}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(vins) != 2 || vins[0] != "5XYKTDA26DG338929" || vins[1] != "1HGCM82633A004352" {
		t.Fatalf("unexpected vins decoded: %v", vins)
	}
	if got := strings.Count(out.String(), "{}"); got != 2 {
		t.Fatalf("expected 2 bodies printed, got %d", got)
	}
}

func TestCLINon2xxPrintsBodyAndFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":{"code":404}}`))
	}))
	defer srv.Close()

	cli, out := newTestCLI(t, srv.URL)
	err := cli.Run(context.Background(), []string{"makes"})
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if !strings.Contains(out.String(), `"code":404`) {
		t.Fatalf("body not printed: %q", out.String())
	}
}

func TestCLIUsageErrors(t *testing.T) {
	cli, _ := newTestCLI(t, "http://unused.invalid/")

	cases := [][]string{
		{},
		{"garage"},
		{"decode"},
		{"models", "twenty-ten", "Toyota"},
		{"maint", "5XYKTDA26DG338929", "soon"},
		{"years"},
	}
	for _, args := range cases {
		if err := cli.Run(context.Background(), args); err == nil {
			t.Fatalf("expected usage error for %v", args)
		}
	}
}
