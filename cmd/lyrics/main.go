// Command amplayer-lyrics prints the lyrics embedded in the ID3 tags of
// local files or URLs.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/genricoloni/amplayer/internal/config"
	"github.com/genricoloni/amplayer/internal/fetcher"
	"github.com/genricoloni/amplayer/internal/id3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const defaultMaxBytes = 16 * 1024 * 1024

// frameJSON is the --json view of a lyrics frame.
type frameJSON struct {
	Source     string `json:"source"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
	Descriptor string `json:"descriptor"`
	Lyrics     string `json:"lyrics"`
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatalf("Error running CLI: %v", err)
	}
}

// inputFlags are shared by every command that reads tracks.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  "max-bytes",
			Usage: "read at most this many bytes of each track",
			Value: defaultMaxBytes,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log fetches to stderr",
		},
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "amplayer-lyrics",
		Usage:     "Print the lyrics embedded in MP3 files",
		ArgsUsage: "<file|url>...",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the whole lyrics frame as JSON",
			},
		}, inputFlags()...),
		Action: func(c *cli.Context) error {
			return forEachTag(c, func(location string, tag *id3.Tag) error {
				uslt, ok := tag.Lyrics()
				if !ok {
					fmt.Fprintf(c.App.ErrWriter, "%s: no lyrics\n", location)
					return errNoLyrics
				}
				if c.Bool("json") {
					return json.NewEncoder(c.App.Writer).Encode(frameJSON{
						Source:     location,
						Encoding:   id3.EncodingName(uslt.Encoding),
						Language:   uslt.LanguageCode(),
						Descriptor: uslt.Descriptor,
						Lyrics:     uslt.Lyrics,
					})
				}
				fmt.Fprintln(c.App.Writer, uslt.Lyrics)
				return nil
			})
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Print the title, artist and album from each tag",
				ArgsUsage: "<file|url>...",
				Flags:     inputFlags(),
				Action: func(c *cli.Context) error {
					return forEachTag(c, func(location string, tag *id3.Tag) error {
						_, hasLyrics := tag.Lyrics()
						_, hasCover := tag.Picture()
						fmt.Fprintf(c.App.Writer, "%s\n  version: 2.%d\n  title:   %s\n  artist:  %s\n  album:   %s\n  lyrics:  %t\n  cover:   %t\n",
							location, tag.Version, tag.Title(), tag.Artist(), tag.Album(), hasLyrics, hasCover)
						return nil
					})
				},
			},
		},
	}
}

var errNoLyrics = errors.New("no lyrics")

// forEachTag reads the tag of every argument and calls fn with it. Failures
// are reported per argument; the command fails if any argument did.
func forEachTag(c *cli.Context, fn func(location string, tag *id3.Tag) error) error {
	if c.NArg() == 0 {
		return cli.Exit("Please provide at least one file or URL", 2)
	}

	maxBytes := c.Int64("max-bytes")
	if maxBytes <= 0 {
		return cli.Exit("--max-bytes must be positive", 2)
	}

	logger := zap.NewNop()
	if c.Bool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return cli.Exit("Failed to create logger: "+err.Error(), 1)
		}
		defer func() { _ = l.Sync() }()
		logger = l
	}

	f := fetcher.NewFetcher(logger, &config.AppConfig{MaxFetchBytes: maxBytes})

	failed := 0
	for _, location := range c.Args().Slice() {
		data, err := f.Fetch(c.Context, location)
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", location, err)
			failed++
			continue
		}
		tag, err := id3.Parse(data)
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", location, err)
			failed++
			continue
		}
		if err := fn(location, tag); err != nil {
			if !errors.Is(err, errNoLyrics) {
				fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", location, err)
			}
			failed++
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d inputs failed", failed, c.NArg()), 1)
	}
	return nil
}
