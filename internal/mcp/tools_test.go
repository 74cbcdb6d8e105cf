package mcp

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/record"
)

// recordingGit answers every git call with the result configured for its
// subcommand and remembers the calls.
type recordingGit struct {
	calls   []string
	results map[string]git.Result
}

func (r *recordingGit) exec(_ context.Context, _ string, args ...string) (git.Result, error) {
	r.calls = append(r.calls, args[0])
	res := r.results[args[0]]
	res.Args = args
	return res, nil
}

func newTestService(t *testing.T, fake *recordingGit) *Service {
	t.Helper()
	svc := &Service{Store: record.NewStore(t.TempDir(), record.DefaultLayout(), nil)}
	if fake != nil {
		svc.Exec = fake.exec
	}
	return svc
}

func TestHandleShow_MissingRecord(t *testing.T) {
	svc := newTestService(t, nil)

	_, out, err := handleShow(svc)(context.Background(), &mcp.CallToolRequest{}, ShowInput{Date: "2024-03-05"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Exists {
		t.Error("Exists = true for missing record")
	}
	if out.Tech.Present || out.Fitness.Present || out.English.Present {
		t.Errorf("fields should be absent: %+v", out)
	}
	if !strings.HasSuffix(out.Path, "2024_03_05.md") {
		t.Errorf("Path = %q", out.Path)
	}
}

func TestHandleShow_DefaultsToToday(t *testing.T) {
	svc := newTestService(t, nil)
	now = func() time.Time { return time.Date(2024, 3, 5, 21, 0, 0, 0, time.Local) }
	t.Cleanup(func() { now = time.Now })

	_, out, err := handleShow(svc)(context.Background(), &mcp.CallToolRequest{}, ShowInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Date != "2024-03-05" {
		t.Errorf("Date = %q, want 2024-03-05", out.Date)
	}
}

func TestHandleShow_InvalidDate(t *testing.T) {
	svc := newTestService(t, nil)

	_, _, err := handleShow(svc)(context.Background(), &mcp.CallToolRequest{}, ShowInput{Date: "03/05/2024"})
	if err == nil || !strings.Contains(err.Error(), "expected YYYY-MM-DD") {
		t.Fatalf("error = %v, want date format error", err)
	}
}

func TestHandleLog_WritesAndMergesDefaults(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, _, err := handleLog(svc)(ctx, &mcp.CallToolRequest{}, LogInput{
		Date: "2024-03-05", Tech: "refactor cache", Fitness: "5k run", English: "20 new words",
	})
	if err != nil {
		t.Fatalf("first log: %v", err)
	}

	_, out, err := handleLog(svc)(ctx, &mcp.CallToolRequest{}, LogInput{Date: "2024-03-05", Fitness: "10k run"})
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if out.Entry.Tech != "refactor cache" || out.Entry.Fitness != "10k run" || out.Entry.English != "20 new words" {
		t.Errorf("Entry = %+v", out.Entry)
	}
	if out.Published || len(out.Steps) != 0 {
		t.Errorf("should not publish without publish=true: %+v", out)
	}

	_, shown, err := handleShow(svc)(ctx, &mcp.CallToolRequest{}, ShowInput{Date: "2024-03-05"})
	if err != nil {
		t.Fatal(err)
	}
	if !shown.Exists || shown.Fitness.Text != "10k run" {
		t.Errorf("show after log = %+v", shown)
	}
}

func TestHandleLog_Publish(t *testing.T) {
	fake := &recordingGit{}
	svc := newTestService(t, fake)

	_, out, err := handleLog(svc)(context.Background(), &mcp.CallToolRequest{}, LogInput{
		Date: "2024-03-05", Tech: "x", Publish: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Published {
		t.Error("Published = false")
	}
	if strings.Join(fake.calls, ",") != "add,commit,push" {
		t.Errorf("git calls = %v", fake.calls)
	}
}

func TestHandleLog_PublishStopsAtCommitFailure(t *testing.T) {
	fake := &recordingGit{results: map[string]git.Result{
		"commit": {ExitCode: 1, Stdout: "nothing to commit, working tree clean"},
	}}
	svc := newTestService(t, fake)

	_, out, err := handleLog(svc)(context.Background(), &mcp.CallToolRequest{}, LogInput{
		Date: "2024-03-05", Tech: "x", Publish: true,
	})
	if err == nil || !strings.Contains(err.Error(), "nothing to commit") {
		t.Fatalf("error = %v, want commit diagnostic", err)
	}
	if strings.Join(fake.calls, ",") != "add,commit" {
		t.Errorf("git calls = %v, push must not run", fake.calls)
	}
	if len(out.Steps) != 2 || out.Steps[1].ExitCode != 1 {
		t.Errorf("Steps = %+v", out.Steps)
	}
}

func TestHandleLog_InvalidDateWritesNothing(t *testing.T) {
	fake := &recordingGit{}
	svc := newTestService(t, fake)

	_, _, err := handleLog(svc)(context.Background(), &mcp.CallToolRequest{}, LogInput{
		Date: "03/05/2024", Tech: "x", Publish: true,
	})
	if err == nil {
		t.Fatal("expected error for invalid date")
	}
	entries, readErr := os.ReadDir(svc.Store.Root())
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("files written: %v", entries)
	}
	if len(fake.calls) != 0 {
		t.Errorf("git invoked: %v", fake.calls)
	}
}

func TestNewServer(t *testing.T) {
	server := NewServer("test", newTestService(t, nil))
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
}
