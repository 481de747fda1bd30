// Package testing provides a harness for testing render objects without a
// host UI.
//
// # Quick Start
//
// Create a tester, mount a render object and inspect the painted frame:
//
//	func TestAvatar(t *testing.T) {
//	    tester := circletest.NewWidgetTesterWithT(t)
//	    bundle := circletest.NewBundle(t, map[string]image.Image{
//	        "avatar": circletest.SolidImage(64, 64, color.White),
//	    })
//	    w := widgets.NewCircleImage(tester.Host(bundle), widgets.Attributes{Src: "avatar"})
//	    tester.Mount(w)
//
//	    if n := circletest.CountOutsideCircle(tester.Image(), 50, 50, 50); n != 0 {
//	        t.Errorf("%d pixels outside the circle", n)
//	    }
//	}
//
// # Dispatch
//
// The tester registers itself as the platform dispatcher. Callbacks posted
// from worker goroutines are queued and run at the start of the next Pump.
//
// # Snapshot Testing
//
// Capture and compare display ops:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/avatar.snapshot.json")
//
// Update snapshots with:
//
//	CIRCLEIMAGE_UPDATE_SNAPSHOTS=1 go test ./...
package testing
