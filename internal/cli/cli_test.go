package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/store"
)

const captainID = "5f0c6a4e-1d2b-4c3a-9e8f-000000000001"

type testEnv struct {
	dir    string
	config string
	db     string
}

// newTestEnv points every default path into a temp directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{"EKWIWALENT_DB", "EKWIWALENT_AUTH_DB", "EKWIWALENT_LOG", "EKWIWALENT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return &testEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.toml"),
		db:     filepath.Join(dir, "data", "ekwiwalent.db"),
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.config, "--db", e.db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func (e *testEnv) store(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(e.db)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Command tree
// ============================================================

func TestCommandTree(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{
		"summary": false, "report": false, "years": false, "export": false,
		"members": false, "ops": false, "config": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
			if sub.Short == "" {
				t.Errorf("%s should have a Short description", sub.Name())
			}
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}
	tests := []struct {
		prefix  string
		want    string
		wantErr string
	}{
		{"abc123", "abc123", ""},
		{"abc", "abc123", ""},
		{"x", "xyz789", ""},
		{"ab", "", "ambiguous"},
		{"q", "", "not found"},
		{"", "", "id is required"},
		{"   ", "", "id is required"},
	}
	for _, tt := range tests {
		got, err := resolveID("member", ids, tt.prefix)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("resolveID(%q) error = %v, want %q", tt.prefix, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("resolveID(%q) = %q, %v; want %q", tt.prefix, got, err, tt.want)
		}
	}
}

// ============================================================
// Members
// ============================================================

func TestMembersListSeeded(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "members", "list")
	for _, name := range []string{"John Smith", "Sarah Johnson", "Mike Davis"} {
		if !strings.Contains(out, name) {
			t.Errorf("members list missing %q:\n%s", name, out)
		}
	}
}

func TestMembersAddAndDelete(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "members", "add", "Anna", "Nowak", "--rank", "Naczelnik")
	if !strings.Contains(out, "Dodano strażaka") || !strings.Contains(out, "Anna Nowak (Naczelnik)") {
		t.Fatalf("unexpected add output: %s", out)
	}

	members, err := e.store(t).ListMembers()
	if err != nil {
		t.Fatal(err)
	}
	added := members[len(members)-1]
	if added.Name != "Anna Nowak" {
		t.Fatalf("expected Anna Nowak last, got %s", added.Name)
	}

	out = e.mustRun(t, "members", "delete", added.ID[:12])
	if !strings.Contains(out, "Usunięto strażaka Anna Nowak") {
		t.Fatalf("unexpected delete output: %s", out)
	}
}

func TestMembersAddRequiresRank(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.run(t, "members", "add", "Anna"); err == nil {
		t.Fatal("expected error without --rank")
	}
	_, err := e.run(t, "members", "add", " ", "--rank", "Strażak")
	if !errors.Is(err, brigade.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestMembersDeleteCascades(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")

	out := e.mustRun(t, "members", "delete", captainID)
	if !strings.Contains(out, "(usunięte zdarzenia: 1)") {
		t.Fatalf("unexpected delete output: %s", out)
	}
	ops, err := e.store(t).ListOperations(store.OperationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected no operations left, got %d", len(ops))
	}
}

// ============================================================
// Operations
// ============================================================

func TestOpsAdd(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2.5", "--date", "2024-02-10")
	if !strings.Contains(out, "Zapisano zdarzenie") || !strings.Contains(out, "2.5 godz.") || !strings.Contains(out, "62.50 zł") {
		t.Fatalf("expected total 62.50 zł: %s", out)
	}

	ops, err := e.store(t).ListOperations(store.OperationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].MemberName != "John Smith" {
		t.Fatalf("unexpected stored operations: %+v", ops)
	}
}

func TestOpsAddErrors(t *testing.T) {
	e := newTestEnv(t)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"zero hours", []string{"--member", captainID, "--type", "fire", "--hours", "0"}, brigade.ErrInvalidHours},
		{"bad date", []string{"--member", captainID, "--type", "fire", "--hours", "1", "--date", "2024-13-01"}, brigade.ErrInvalidDate},
		{"unknown type", []string{"--member", captainID, "--type", "party", "--hours", "1"}, brigade.ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, append([]string{"ops", "add"}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOpsAddAmbiguousMember(t *testing.T) {
	e := newTestEnv(t)
	// Seeded ids share their first block.
	_, err := e.run(t, "ops", "add", "--member", "5f0c6a4e", "--type", "fire", "--hours", "1")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguous member error, got %v", err)
	}
}

func TestOpsListAndDelete(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "training", "--hours", "1", "--date", "2024-05-01")

	out := e.mustRun(t, "ops", "list")
	if strings.Index(out, "2024-05-01") > strings.Index(out, "2024-02-10") {
		t.Fatalf("operations should be listed newest first:\n%s", out)
	}
	if !strings.Contains(out, "58.00 zł") {
		t.Fatalf("list should show the total:\n%s", out)
	}

	out = e.mustRun(t, "ops", "list", "--from", "2024-04-01")
	if strings.Contains(out, "2024-02-10") {
		t.Fatalf("--from should filter earlier operations:\n%s", out)
	}

	ops, err := e.store(t).ListOperations(store.OperationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	e.mustRun(t, "ops", "delete", ops[0].ID)

	ops, err = e.store(t).ListOperations(store.OperationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].TypeKey != "training" {
		t.Fatalf("expected only the training operation left, got %+v", ops)
	}
}

func TestOpsDeleteEmptyID(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")

	for _, id := range []string{"", "  "} {
		out, err := e.run(t, "ops", "delete", id)
		if err == nil || !strings.Contains(err.Error(), "operation id is required") {
			t.Fatalf("ops delete %q: expected id is required error, got %v\n%s", id, err, out)
		}
	}
	if _, err := e.run(t, "members", "delete", ""); err == nil || !strings.Contains(err.Error(), "member id is required") {
		t.Fatalf("members delete \"\": expected id is required error, got %v", err)
	}

	ops, err := e.store(t).ListOperations(store.OperationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("empty id must not delete anything, %d operations left", len(ops))
	}
	members, err := e.store(t).ListMembers()
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 3 {
		t.Fatalf("empty id must not delete members, %d left", len(members))
	}
}

func TestMessagesArePolish(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "1", "--date", "2024-02-10")
	ops, err := e.store(t).ListOperations(store.OperationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	out := e.mustRun(t, "ops", "delete", ops[0].ID)
	if !strings.Contains(out, "Usunięto zdarzenie") {
		t.Fatalf("unexpected delete output: %s", out)
	}
	out = e.mustRun(t, "config", "init")
	if !strings.Contains(out, "Zapisano") {
		t.Fatalf("unexpected init output: %s", out)
	}
	for _, english := range []string{"Deleted", "Logged", "Added", "Wrote", "No members"} {
		if strings.Contains(out, english) {
			t.Errorf("output contains English text %q: %s", english, out)
		}
	}
}

// ============================================================
// Reports
// ============================================================

func TestSummary(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "training", "--hours", "1", "--date", "2024-05-01")

	out := e.mustRun(t, "summary")
	for _, want := range []string{"58.00 zł", "Aktywni strażacy: 1 / 3", "Akcja ratownicza", "Szkolenie/ćwiczenie"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestReport(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "training", "--hours", "1", "--date", "2024-05-01")

	out := e.mustRun(t, "report", "--quarter", "Q1", "--year", "2024")
	for _, want := range []string{"Q1 (Styczeń - Marzec) 2024", "2024-01-01 - 2024-03-31", "50.00 zł", "John Smith"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Sarah Johnson") {
		t.Error("idle members should not appear in the quarterly report")
	}

	out = e.mustRun(t, "report", "-q", "3", "-y", "2024")
	if !strings.Contains(out, "Brak zdarzeń") {
		t.Errorf("empty quarter should say so:\n%s", out)
	}
}

func TestReportRequiresQuarter(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.run(t, "report"); err == nil {
		t.Fatal("expected error without --quarter")
	}
	if _, err := e.run(t, "report", "--quarter", "Q5"); err == nil {
		t.Fatal("expected error for Q5")
	}
}

func TestYears(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2022-02-10")

	out := e.mustRun(t, "years")
	lines := strings.Fields(out)
	want := []string{fmt.Sprint(time.Now().Year()), "2022"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, lines)
		}
	}
}

func TestExport(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")

	for _, format := range []string{"csv", "json", "xlsx"} {
		path := filepath.Join(e.dir, "raport."+format)
		out := e.mustRun(t, "export", "-q", "Q1", "-y", "2024", "--format", format, "--out", path)
		if !strings.Contains(out, path) {
			t.Errorf("%s: output should name the file: %s", format, out)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s: export is empty", format)
		}
	}

	if _, err := e.run(t, "export", "-q", "Q1", "--format", "pdf"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// ============================================================
// Configuration
// ============================================================

func TestConfigInitAndShow(t *testing.T) {
	e := newTestEnv(t)

	e.mustRun(t, "config", "init")
	if _, err := os.Stat(e.config); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if _, err := e.run(t, "config", "init"); err == nil {
		t.Fatal("second init should refuse to overwrite")
	}
	e.mustRun(t, "config", "init", "--force")

	out := e.mustRun(t, "config", "show")
	for _, want := range []string{"[database]", "[log]", "[[rates]]", "Akcja ratownicza"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfiguredRates(t *testing.T) {
	e := newTestEnv(t)
	cfg := `[[rates]]
key = "fire"
label = "Akcja ratownicza"
rate = "30"
`
	if err := os.WriteFile(e.config, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := e.mustRun(t, "ops", "add", "--member", captainID, "--type", "fire", "--hours", "2", "--date", "2024-02-10")
	if !strings.Contains(out, "60.00 zł") {
		t.Fatalf("configured rate should apply: %s", out)
	}
	if _, err := e.run(t, "ops", "add", "--member", captainID, "--type", "training", "--hours", "1"); !errors.Is(err, brigade.ErrUnknownType) {
		t.Fatalf("types missing from the configured catalog should be rejected, got %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.config, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := e.run(t, "years")
	if err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("expected log.level error, got %v", err)
	}
}
