package api

import (
	"reel/internal/history"
	"reel/internal/pipeline"
	"reel/internal/shotlist"
)

// Endpoint describes one route in the index.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// IndexResponse is served at the root so a browser or script can discover
// the API.
type IndexResponse struct {
	Name      string     `json:"name"`
	Endpoints []Endpoint `json:"endpoints"`
}

// StatusResponse reports server readiness.
type StatusResponse struct {
	OK      bool     `json:"ok"`
	Root    string   `json:"root"`
	Steps   []string `json:"steps"`
	History bool     `json:"history"`
}

// GenerateRequest selects the steps of a run. Omitted steps mean every
// built-in step; omitted force means false.
type GenerateRequest struct {
	Steps []string `json:"steps"`
	Force bool     `json:"force"`
}

// GenerateResponse reports a completed run.
type GenerateResponse struct {
	OK      bool                  `json:"ok"`
	RunID   string                `json:"run_id"`
	Episode int                   `json:"episode"`
	Steps   []string              `json:"steps"`
	Force   bool                  `json:"force"`
	Results []pipeline.StepReport `json:"results"`
}

// SummaryResponse describes an episode's shot list.
type SummaryResponse struct {
	Episode    int                     `json:"episode"`
	Shots      int                     `json:"shots"`
	Video      int                     `json:"video"`
	Storyboard int                     `json:"storyboard"`
	TotalSec   int                     `json:"total_sec"`
	Scenes     int                     `json:"scenes"`
	Breakdown  []shotlist.SceneSummary `json:"breakdown"`
}

// RunListResponse lists recorded runs.
type RunListResponse struct {
	Runs []history.Run `json:"runs"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func newSummaryResponse(episode int, sum shotlist.Summary) SummaryResponse {
	return SummaryResponse{
		Episode:    episode,
		Shots:      sum.Shots,
		Video:      sum.Video,
		Storyboard: sum.Storyboard,
		TotalSec:   sum.TotalSec,
		Scenes:     len(sum.Scenes),
		Breakdown:  sum.Scenes,
	}
}
