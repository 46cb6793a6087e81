// Package packaging turns a finished shot list into render-ready task
// manifests and delivery documents.
//
// Storyboard and video rows are split into prompts/storyboard_tasks.jsonl and
// prompts/video_tasks.jsonl, one JSON object per line in shot-list order. The
// task schema (Task) is consumed by external render tooling and is treated as
// a stable contract. Nothing here renders media.
package packaging
