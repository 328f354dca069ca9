package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
)

var ErrFAQLoad = errors.New("faq data load failed")

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LoadFAQ reads the FAQ JSON file (array of question/answer pairs) into
// retrieval documents. Entries with an empty question are skipped.
func LoadFAQ(r io.Reader) ([]contractx.Document, error) {
	var entries []faqEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFAQLoad, err)
	}

	docs := make([]contractx.Document, 0, len(entries))
	for _, e := range entries {
		question := strings.TrimSpace(e.Question)
		if question == "" {
			continue
		}
		docs = append(docs, contractx.Document{
			Text: fmt.Sprintf("Pregunta: %s -> Respuesta: %s", question, strings.TrimSpace(e.Answer)),
		})
	}
	return docs, nil
}
