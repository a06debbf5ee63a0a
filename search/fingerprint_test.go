package search

import (
	"testing"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/index"
)

func makeDoc(e content.Entry) index.SearchDoc {
	return index.SearchDoc{ID: e.ID, DocText: index.BuildDocText(e), Entry: e}
}

func TestFingerprint_SameDocsProduceSameFingerprint(t *testing.T) {
	docs := []index.SearchDoc{
		makeDoc(content.Entry{ID: 1, Title: "Land Registry", Category: "Platform"}),
		makeDoc(content.Entry{ID: 2, Title: "Cadastral Mapping", Category: "Mapping"}),
	}

	fp1 := computeFingerprint(docs)
	fp2 := computeFingerprint(docs)

	if fp1 != fp2 {
		t.Errorf("same docs produced different fingerprints: %s vs %s", fp1, fp2)
	}
	if fp1 == "" {
		t.Error("fingerprint is empty")
	}
}

func TestFingerprint_OrderMatters(t *testing.T) {
	doc1 := makeDoc(content.Entry{ID: 1, Title: "one"})
	doc2 := makeDoc(content.Entry{ID: 2, Title: "two"})

	fp1 := computeFingerprint([]index.SearchDoc{doc1, doc2})
	fp2 := computeFingerprint([]index.SearchDoc{doc2, doc1})

	if fp1 == fp2 {
		t.Error("different order should produce different fingerprints")
	}
}

func TestFingerprint_IncludesAllFields(t *testing.T) {
	base := content.Entry{
		ID:          1,
		Title:       "Land Registry",
		Category:    "Platform",
		URL:         "/registry",
		Description: "Digital registration",
		Keywords:    []string{"land", "title"},
	}

	mutate := []func(e *content.Entry){
		func(e *content.Entry) { e.ID = 2 },
		func(e *content.Entry) { e.Title = "Changed" },
		func(e *content.Entry) { e.Category = "Changed" },
		func(e *content.Entry) { e.URL = "#changed" },
		func(e *content.Entry) { e.Description = "changed" },
		func(e *content.Entry) { e.Featured = true },
		func(e *content.Entry) { e.Keywords = []string{"different"} },
	}

	baseFP := computeFingerprint([]index.SearchDoc{makeDoc(base)})
	for i, m := range mutate {
		v := base.Clone()
		m(&v)
		if computeFingerprint([]index.SearchDoc{makeDoc(v)}) == baseFP {
			t.Errorf("variation %d should produce different fingerprint from base", i)
		}
	}
}

func TestFingerprint_KeywordOrderIndependent(t *testing.T) {
	e1 := content.Entry{ID: 1, Title: "t", Keywords: []string{"alpha", "bravo", "charlie"}}
	e2 := content.Entry{ID: 1, Title: "t", Keywords: []string{"charlie", "alpha", "bravo"}}
	// DocText is held fixed so only keyword order differs.
	d1 := index.SearchDoc{ID: 1, DocText: "t", Entry: e1}
	d2 := index.SearchDoc{ID: 1, DocText: "t", Entry: e2}

	if computeFingerprint([]index.SearchDoc{d1}) != computeFingerprint([]index.SearchDoc{d2}) {
		t.Error("same keywords in different order should produce same fingerprint")
	}
}

func TestFingerprint_EmptyDocs(t *testing.T) {
	var docs []index.SearchDoc
	fp := computeFingerprint(docs)

	fp2 := computeFingerprint(nil)
	if fp != fp2 {
		t.Error("empty slice and nil should produce same fingerprint")
	}
	if fp == "" {
		t.Error("fingerprint should not be empty for empty docs")
	}
}
