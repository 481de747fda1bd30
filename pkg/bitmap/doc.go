// Package bitmap decodes images at a reduced resolution chosen for a target
// display size.
//
// Decoding is two-pass: a bounds-only probe reads the image header, a
// power-of-two sample size is derived from the probed dimensions, and the
// image is decoded and reduced by that factor. Streams that cannot be
// reopened are wrapped in a MarkReader so the probe can be rewound.
//
// The standard library decoders cannot skip pixels while decoding, so the
// full-resolution image is decoded once and immediately reduced; only the
// reduced image is retained.
//
// Registered formats: PNG, JPEG, GIF, BMP, TIFF and WebP.
package bitmap
