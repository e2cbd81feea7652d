package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/seitarof/gen-javadoc/internal/javadoc"
)

// documentStore keeps the full text of every open document, keyed by URI.
type documentStore struct {
	mu   sync.RWMutex
	docs map[string]javadoc.Document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: map[string]javadoc.Document{}}
}

func (s *documentStore) open(uri, languageID, text string) {
	path, err := uriToPath(uri)
	if err != nil {
		path = uri
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = javadoc.Document{Path: path, LanguageID: languageID, Text: text}
}

func (s *documentStore) update(uri, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return false
	}
	doc.Text = text
	s.docs[uri] = doc
	return true
}

func (s *documentStore) close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *documentStore) get(uri string) (javadoc.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}
