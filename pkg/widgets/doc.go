// Package widgets provides the CircleImage render object: a square view
// that shows a bitmap cropped to an anti-aliased circle.
//
// # Construction
//
// A CircleImage is built from host services and style attributes:
//
//	attrs, err := widgets.ParseAttributes([]byte("src: avatar"))
//	img := widgets.NewCircleImage(widgets.Host{Resources: bundle}, attrs)
//	owner.Attach(img)
//
// # Loading
//
// SetBitmap, SetBitmapFromURL and SetBitmapFromResource replace the
// bitmap. Load failures never reach the caller; they are reported through
// pkg/errors and, when Host.OnError is set, passed to it on the UI thread.
//
// # Threading
//
// CircleImage is not safe for concurrent use. Downloads run on fetch
// workers and hand their result to the UI thread through Host.Dispatch.
package widgets
