// apps/go-scorer/assets/embed.go
//
// Built-in word list, used when WORDS_FILE=embedded.

package assets

import (
	"embed"
	"io"
)

//go:embed words-5.txt
var FS embed.FS

// DefaultWordsName is the embedded file holding the default corpus.
const DefaultWordsName = "words-5.txt"

// OpenWords opens the embedded default word list.
func OpenWords() (io.ReadCloser, error) {
	return FS.Open(DefaultWordsName)
}
