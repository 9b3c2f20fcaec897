package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hnsearch/internal/domain"
)

func baseState() ViewState {
	return ViewState{
		Width:    100,
		Height:   40,
		Query:    "MIT",
		Page:     1,
		ShowURLs: true,
	}
}

func TestRenderLoadingWithoutData(t *testing.T) {
	s := baseState()
	s.Loading = true
	s.Spinner = "~"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "hnsearch")
	assert.Contains(t, out, "~ Loading")
	assert.Contains(t, out, "Loading ...")
	assert.Contains(t, out, "Query: MIT")
}

func TestRenderHitsAndControls(t *testing.T) {
	s := baseState()
	s.Hits = []domain.Record{
		{ObjectID: "1", Title: "A", URL: "http://x"},
		{ObjectID: "2", Title: "B"},
	}
	s.TotalHits = 10
	s.Offset = 8
	s.Page = 2
	s.PageCount = 2
	s.Pages = []int{1, 2}
	s.ShowControls = true

	out := NewRenderer().Render(s)
	assert.Contains(t, out, " 9. A")
	assert.Contains(t, out, "http://x")
	assert.Contains(t, out, "10. B")
	assert.Contains(t, out, "> ", "cursor marks the first row")
	assert.NotContains(t, out, ErrorNotice)
}

func TestRenderErrorKeepsStaleHits(t *testing.T) {
	s := baseState()
	s.IsError = true
	s.Hits = []domain.Record{{ObjectID: "1", Title: "Stale"}}
	s.TotalHits = 1

	out := NewRenderer().Render(s)
	assert.Contains(t, out, ErrorNotice)
	assert.Contains(t, out, "Stale")
}

func TestRenderEmptyStates(t *testing.T) {
	s := baseState()
	assert.Contains(t, NewRenderer().Render(s), "No results.")

	s.TotalHits = 10
	s.Page = 5
	assert.Contains(t, NewRenderer().Render(s), "Nothing on page 5.")
}

func TestRenderQueryInput(t *testing.T) {
	s := baseState()
	s.InputMode = "query"
	s.TextInput = "Search: rust"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Search: rust")
	assert.NotContains(t, out, "Query: MIT")
}

func TestPaginationRenderer(t *testing.T) {
	out := NewPaginationRenderer(NewStyles()).Render([]int{1, 2, 3}, 2)
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "3")
}

func TestRenderHitUntitled(t *testing.T) {
	line := NewHitRenderer(NewStyles()).RenderHit(domain.Record{ObjectID: "42"}, 1, false, false, 0)
	assert.Contains(t, line, "(untitled 42)")
}
