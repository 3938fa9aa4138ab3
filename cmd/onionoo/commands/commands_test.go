package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const detailsBody = `{"relays":[
 {"nickname":"both","fingerprint":"F1","or_addresses":["10.0.0.1:9001"],"running":true,"flags":["Guard","Exit","Running"],
  "country":"de","country_name":"Germany","as":"AS1","platform":"Tor 0.4.8.12 on Linux","version":"0.4.8.12",
  "exit_policy":["accept *:*"],"exit_policy_summary":{"accept":["1-65535"]},"recommended_version":true,"measured":true},
 {"nickname":"middle","fingerprint":"F2","or_addresses":[],"running":true,"flags":["Running"],
  "platform":"Tor 0.4.8.12 on Linux","version":"0.4.8.12","exit_policy":["reject *:*"],
  "exit_policy_summary":{"reject":["1-65535"]},"recommended_version":true,"measured":false},
 {"nickname":"guard","fingerprint":"F3","or_addresses":["192.0.2.1:443"],"running":true,"flags":["Guard"],
  "region_name":"","platform":"Tor 0.4.8.12 on Linux","version":"0.4.8.12","exit_policy":["reject *:*"],
  "exit_policy_summary":{"reject":["1-65535"]},"recommended_version":false,"measured":true}
]}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, url string, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(url)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFetchCommands_JSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, detailsBody)

	tests := []struct {
		cmd  string
		want []string
	}{
		{"all", []string{"both", "middle", "guard"}},
		{"entry", []string{"both", "guard"}},
		{"exit", []string{"both"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			out, _, err := run(t, srv.URL, tt.cmd, "--output", "json")
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			var doc directoryView
			if err := json.Unmarshal([]byte(out), &doc); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out)
			}
			if len(doc.Relays) != len(tt.want) {
				t.Fatalf("got %d relays, want %d", len(doc.Relays), len(tt.want))
			}
			for i, r := range doc.Relays {
				if r.Nickname != tt.want[i] {
					t.Errorf("relay %d: got %s, want %s", i, r.Nickname, tt.want[i])
				}
			}
		})
	}
}

func TestFetchCommands_JSONKeepsOptionalAbsence(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, detailsBody)
	out, _, err := run(t, srv.URL, "all", "-o", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var raw struct {
		Relays []map[string]interface{} `json:"relays"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if _, ok := raw.Relays[1]["country"]; ok {
		t.Error("absent country must be omitted")
	}
	if v, ok := raw.Relays[2]["region_name"]; !ok || v != "" {
		t.Errorf("empty region_name must be kept, got %v (present=%v)", v, ok)
	}
	if v, ok := raw.Relays[1]["or_addresses"].([]interface{}); !ok || len(v) != 0 {
		t.Errorf("empty or_addresses must render as [], got %v", raw.Relays[1]["or_addresses"])
	}
}

func TestFetchCommands_YAML(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, detailsBody)
	out, _, err := run(t, srv.URL, "entry", "-o", "yaml")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var doc directoryView
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if len(doc.Relays) != 2 || doc.Relays[0].Fingerprint != "F1" || doc.Relays[1].Fingerprint != "F3" {
		t.Errorf("unexpected relays %+v", doc.Relays)
	}
	if doc.Relays[0].Country == nil || *doc.Relays[0].Country != "de" {
		t.Errorf("country lost in yaml output: %+v", doc.Relays[0].Country)
	}
}

func TestFetchCommands_Table(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, detailsBody)
	out, _, err := run(t, srv.URL, "all")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, 3 rows and summary, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NICKNAME") {
		t.Errorf("missing header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "10.0.0.1:9001") || !strings.Contains(lines[1], "Guard,Exit,Running") {
		t.Errorf("unexpected row: %s", lines[1])
	}
	if fields := strings.Fields(lines[2]); fields[2] != "-" || fields[3] != "-" {
		t.Errorf("relay without address or country should show '-': %s", lines[2])
	}
	if lines[4] != "3 relays" {
		t.Errorf("summary = %q, want %q", lines[4], "3 relays")
	}
}

func TestFetchCommands_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		args   []string
		want   string
	}{
		{"server error", http.StatusBadGateway, "", []string{"all"}, "status 502"},
		{"bad body", http.StatusOK, `{"relays":[{}]}`, []string{"exit"}, "relays[0].measured"},
		{"bad output", http.StatusOK, detailsBody, []string{"all", "-o", "xml"}, "unsupported output format"},
		{"bad log format", http.StatusOK, detailsBody, []string{"all", "--log-format", "xml"}, "LOG_FORMAT"},
		{"extra args", http.StatusOK, detailsBody, []string{"all", "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			out, _, err := run(t, srv.URL, tt.args...)
			if err == nil {
				t.Fatalf("expected error, got output:\n%s", out)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
			if out != "" {
				t.Errorf("nothing should be printed on failure, got:\n%s", out)
			}
		})
	}
}

func TestRootFlags_OverrideEnv(t *testing.T) {
	t.Setenv("ONIONOO_LOG_FORMAT", "json")
	t.Setenv("ONIONOO_LOG_LEVEL", "error")
	srv := newTestServer(t, http.StatusOK, detailsBody)

	_, stderr, err := run(t, srv.URL, "all", "-o", "json", "--log-level", "info")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	first := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(first), &entry); err != nil {
		t.Fatalf("expected JSON log lines from env format, got %q", stderr)
	}
	if entry["msg"] != "request GET" {
		t.Errorf("expected info-level request log, got %v", entry)
	}
}
