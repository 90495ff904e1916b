// Copyright (c) 2023 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the ISC license

package lib

import (
	"fmt"
	"os"
	"sync"
)

const (
	incomingMarker = "<- "
	outgoingMarker = "-> "
)

// Transcript appends every raw line of a session to a file, marked with its
// direction. A nil *Transcript discards everything.
type Transcript struct {
	sync.Mutex
	outfile *os.File
}

func NewTranscript(filename string) (result *Transcript, err error) {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return
	}
	return &Transcript{
		outfile: outfile,
	}, nil
}

func (t *Transcript) Close() error {
	if t == nil {
		return nil
	}
	return t.outfile.Close()
}

// WriteLine records line; isClient marks lines we sent.
func (t *Transcript) WriteLine(line string, isClient bool) (err error) {
	if t == nil {
		return nil
	}
	marker := incomingMarker
	if isClient {
		marker = outgoingMarker
	}
	t.Lock()
	defer t.Unlock()
	// lines are stored with \r\n whether or not the server sent the \r
	_, err = fmt.Fprintf(t.outfile, "%s%s\r\n", marker, line)
	return
}
