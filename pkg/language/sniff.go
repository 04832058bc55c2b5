package language

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MimeSniffer guesses MIME types from a file name and its content. It
// returns candidates from most to least specific, or nil when it has no
// opinion.
type MimeSniffer interface {
	Sniff(name string, content []byte) []string
}

// SignatureSniffer detects MIME types by content signature: #! lines for
// scripts, markup prologues, and text versus binary. A detected type is
// followed by its ancestors, so text/x-python is followed by text/plain.
type SignatureSniffer struct{}

// Sniff implements MimeSniffer.
func (SignatureSniffer) Sniff(_ string, content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	var mimes []string
	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		// the root of the tree is application/octet-stream
		if m.Parent() == nil {
			break
		}
		mt, _, _ := strings.Cut(m.String(), ";")
		mimes = append(mimes, strings.TrimSpace(mt))
	}
	return mimes
}

// ChainSniffer asks each sniffer in turn and returns the first answer.
type ChainSniffer []MimeSniffer

// Sniff implements MimeSniffer.
func (c ChainSniffer) Sniff(name string, content []byte) []string {
	for _, s := range c {
		if mimes := s.Sniff(name, content); len(mimes) > 0 {
			return mimes
		}
	}
	return nil
}

// DefaultSniffer returns the signature sniffer.
func DefaultSniffer() MimeSniffer {
	return SignatureSniffer{}
}
