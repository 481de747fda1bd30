package testing

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TkwkT/CircleImageView/pkg/layout"
	"github.com/TkwkT/CircleImageView/pkg/widgets"
)

func mountCircle(t *testing.T, padding int) *WidgetTester {
	t.Helper()
	tester := NewWidgetTesterWithT(t)
	w := widgets.NewCircleImage(tester.Host(nil), widgets.Attributes{
		Padding: widgets.Padding{Left: padding, Top: padding, Right: padding, Bottom: padding},
	})
	w.SetBitmap(SolidImage(20, 10, color.White))
	tester.SetConstraints(layout.Exactly(60), layout.Exactly(60))
	tester.Mount(w)
	return tester
}

func TestCaptureSnapshot_Ops(t *testing.T) {
	tester := mountCircle(t, 5)
	snap := tester.CaptureSnapshot()

	if snap.Size != [2]int{60, 60} {
		t.Errorf("size = %v, want [60 60]", snap.Size)
	}
	var names []string
	for _, op := range snap.DisplayOps {
		names = append(names, op.Op)
	}
	want := "saveLayer drawCircle drawImage restore"
	if got := strings.Join(names, " "); got != want {
		t.Fatalf("ops = %q, want %q", got, want)
	}

	circle := snap.DisplayOps[1]
	if circle.Params["cx"] != 30.0 || circle.Params["radius"] != 25.0 {
		t.Errorf("circle = %v", circle)
	}
	img := snap.DisplayOps[2]
	if img.Params["blend"] != "src_in" || img.Params["x"] != 5.0 || img.Params["width"] != 100 || img.Params["height"] != 50 {
		t.Errorf("image = %v", img)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	a := mountCircle(t, 0).CaptureSnapshot()
	b := mountCircle(t, 0).CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff, got:\n%s", diff)
	}

	c := mountCircle(t, 4).CaptureSnapshot()
	diff := a.Diff(c)
	if !strings.Contains(diff, "--- expected") || !strings.Contains(diff, "+++ actual") {
		t.Errorf("diff missing headers:\n%s", diff)
	}
}

func TestSnapshot_UpdateAndMatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "circle.snapshot.json")
	snap := mountCircle(t, 2).CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	rec := &recordingT{name: t.Name()}
	snap.MatchesFile(rec, path)
	if rec.failed {
		t.Errorf("unexpected mismatch: %s", rec.msg)
	}

	other := mountCircle(t, 6).CaptureSnapshot()
	rec = &recordingT{name: t.Name()}
	other.MatchesFile(rec, path)
	if !rec.failed || !strings.Contains(rec.msg, UpdateSnapshotsEnv) {
		t.Errorf("expected mismatch with update hint, got %q", rec.msg)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	snap := &Snapshot{}
	rec := &recordingT{name: t.Name()}
	snap.MatchesFile(rec, filepath.Join(t.TempDir(), "missing.json"))
	if !rec.failed || !strings.Contains(rec.msg, "snapshot file missing") {
		t.Errorf("msg = %q", rec.msg)
	}
}

type recordingT struct {
	name   string
	failed bool
	msg    string
}

func (r *recordingT) Helper() {}
func (r *recordingT) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}
func (r *recordingT) Errorf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}
func (r *recordingT) Name() string { return r.name }
