package knowledge

import (
	"context"
	"sort"
	"strings"
	"unicode"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
)

const defaultTopK = 3

// Index is the in-memory lexical retriever over the document collections. It
// ranks by query-term overlap against document text and metadata; a vector
// store can replace it behind the same contract.Retriever seam without
// touching the agents.
type Index struct {
	collections map[string][]contractx.Document
}

var _ contractx.Retriever = (*Index)(nil)

func NewIndex() *Index {
	return &Index{collections: make(map[string][]contractx.Document)}
}

// Add appends documents to a collection. Indexing happens at startup; the
// index is read-only afterwards.
func (ix *Index) Add(collection string, docs ...contractx.Document) {
	ix.collections[collection] = append(ix.collections[collection], docs...)
}

// Retrieve returns up to topK documents of the collection sharing the most
// terms with the query, best first, ties in insertion order. Documents
// matching no term are never returned; a miss or an unknown collection is an
// empty result, not an error.
func (ix *Index) Retrieve(_ context.Context, collection, query string, topK int) ([]contractx.Document, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	type scoredDoc struct {
		doc   contractx.Document
		score int
	}

	var hits []scoredDoc
	for _, doc := range ix.collections[collection] {
		haystack := searchableText(doc)
		score := 0
		for term := range terms {
			if strings.Contains(haystack, term) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scoredDoc{doc: doc, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > topK {
		hits = hits[:topK]
	}

	docs := make([]contractx.Document, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, h.doc)
	}
	return docs, nil
}

func searchableText(doc contractx.Document) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(doc.Text))
	for _, v := range doc.Metadata {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(v))
	}
	return b.String()
}

// tokenize splits the query into lowercase terms, dropping single runes so
// articles like "a"/"y" never count as matches.
func tokenize(query string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(field)) < 2 {
			continue
		}
		terms[field] = struct{}{}
	}
	return terms
}
