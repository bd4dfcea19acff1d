// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command decomp decompresses a gzip, raw DEFLATE, or Brotli stream read
// from standard input (or a named file) to standard output.
//
// Example usage:
//	$ decomp -format gzip < archive.tar.gz > archive.tar
//	$ decomp -format brotli page.html.br > page.html
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/streamzip/decomp/brotli"
	"github.com/streamzip/decomp/flate"
	"github.com/streamzip/decomp/gzip"
)

var formatFlag = flag.String("format", "gzip", "compressed format to read: gzip, flate, or brotli")

func main() {
	log.SetFlags(0)
	log.SetPrefix("decomp: ")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-format gzip|flate|brotli] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	in := os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	zr, err := newDecoder(*formatFlag, in)
	if err != nil {
		log.Fatal(err)
	}
	defer zr.Close()

	if _, err := io.Copy(os.Stdout, zr); err != nil {
		log.Fatal(err)
	}
}

func newDecoder(format string, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case "gzip":
		return gzip.NewReader(r)
	case "flate":
		return flate.NewReader(r), nil
	case "brotli":
		return brotli.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unrecognized format %q (want gzip, flate, or brotli)", format)
	}
}
