package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/urfave/cli/v2"
)

func writeTrack(t *testing.T, dir, name, lyrics string) string {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetTitle("Song")
	tag.SetArtist("Band")
	tag.SetAlbum("Record")
	if lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "verse",
			Lyrics:            lyrics,
		})
	}

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("failed to encode tag: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(buf.Bytes(), 0xFF, 0xFB, 0x90, 0x00), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	// Keep cli.Exit from terminating the test binary.
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"amplayer-lyrics"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestLyrics(t *testing.T) {
	dir := t.TempDir()
	withLyrics := writeTrack(t, dir, "a.mp3", "la la la")
	without := writeTrack(t, dir, "b.mp3", "")

	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantErrOut string
		wantErr    bool
	}{
		{name: "Prints Lyrics", args: []string{withLyrics}, wantOut: "la la la\n"},
		{name: "Missing Lyrics Fails", args: []string{without}, wantErrOut: "no lyrics", wantErr: true},
		{name: "Reports Every Input", args: []string{without, withLyrics}, wantOut: "la la la\n", wantErrOut: "b.mp3: no lyrics", wantErr: true},
		{name: "Missing File", args: []string{filepath.Join(dir, "nope.mp3")}, wantErrOut: "failed to open file", wantErr: true},
		{name: "No Arguments", args: nil, wantErr: true},
		{name: "Invalid Limit", args: []string{"--max-bytes", "0", withLyrics}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := run(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if out != tt.wantOut {
				t.Errorf("expected stdout %q, got %q", tt.wantOut, out)
			}
			if !strings.Contains(errOut, tt.wantErrOut) {
				t.Errorf("expected stderr to contain %q, got %q", tt.wantErrOut, errOut)
			}
		})
	}
}

func TestLyrics_JSON(t *testing.T) {
	path := writeTrack(t, t.TempDir(), "a.mp3", "hello")

	out, _, err := run("--json", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got frameJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	want := frameJSON{Source: path, Encoding: "UTF-8", Language: "eng", Descriptor: "verse", Lyrics: "hello"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestInfo(t *testing.T) {
	path := writeTrack(t, t.TempDir(), "a.mp3", "")

	out, _, err := run("info", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"version: 2.4", "title:   Song", "artist:  Band", "album:   Record", "lyrics:  false", "cover:   false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
