package chat

import (
	"context"
	"errors"

	"github.com/nonthaphat/sportsdesk/internal/llm"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// scriptedProvider replays canned responses in order and records every
// request it sees. A nil entry in the script produces an error.
type scriptedProvider struct {
	script   []*llm.CompletionResponse
	requests []llm.CompletionRequest
}

func (p *scriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.requests = append(p.requests, req)
	if len(p.script) == 0 {
		return nil, errors.New("script exhausted")
	}
	resp := p.script[0]
	p.script = p.script[1:]
	if resp == nil {
		return nil, errors.New("scripted failure")
	}
	return resp, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func reply(content string) *llm.CompletionResponse {
	return &llm.CompletionResponse{Content: content}
}

// fakeStore serves a fixed ranked result list for every query, or a fixed
// error. Write and persistence methods are never exercised by the chat core.
type fakeStore struct {
	results []vectordb.SearchResult
	err     error
}

func (s *fakeStore) Search(ctx context.Context, query string, limit int) ([]vectordb.SearchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.results) {
		limit = len(s.results)
	}
	return s.results[:limit], nil
}

func (s *fakeStore) AddPassages(ctx context.Context, passages []vectordb.Passage) error {
	return nil
}

func (s *fakeStore) DeleteBySourceFile(ctx context.Context, sourceFile string) error {
	return nil
}

func (s *fakeStore) Persist(ctx context.Context, dir string) error { return nil }

func (s *fakeStore) Load(ctx context.Context, dir string) error { return nil }

func (s *fakeStore) Count() int { return len(s.results) }
