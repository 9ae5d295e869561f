// Package id3 reads the parts of ID3v2 tags the player displays: text
// information frames, embedded cover art and unsynchronised lyrics (USLT).
//
// Decoding is lenient. Malformed frames degrade to "no value" instead of
// returning errors, since lyrics and artwork are cosmetic. Only a missing or
// truncated tag header is reported as an error by Parse and Read.
//
// See http://id3.org/id3v2.4.0-frames for the frame layouts.
package id3
