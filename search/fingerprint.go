package search

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"github.com/jonwraymond/sitesearch/index"
)

// computeFingerprint generates a stable hash of the document slice.
// The fingerprint changes when document content changes, enabling
// efficient cache invalidation for the BM25 index.
func computeFingerprint(docs []index.SearchDoc) string {
	h := sha256.New()

	for _, doc := range docs {
		h.Write([]byte(strconv.Itoa(doc.ID)))
		h.Write([]byte{0}) // separator

		h.Write([]byte(doc.DocText))
		h.Write([]byte{0})

		e := doc.Entry
		h.Write([]byte(e.Title))
		h.Write([]byte{0})
		h.Write([]byte(e.Category))
		h.Write([]byte{0})
		h.Write([]byte(e.URL))
		h.Write([]byte{0})
		h.Write([]byte(e.Description))
		h.Write([]byte{0})
		if e.Featured {
			h.Write([]byte{1})
		}
		h.Write([]byte{0})

		// Keywords are sorted: their order does not affect ranking.
		sorted := slices.Clone(e.Keywords)
		slices.Sort(sorted)
		h.Write([]byte(strings.Join(sorted, "\x01")))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
