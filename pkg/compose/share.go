package compose

import "github.com/aretw0/valueprop/pkg/domain"

// ShareTitle is the title handed to native share targets.
const ShareTitle = "My Value Proposition"

// SharePayload is what a share target (or the clipboard fallback) receives.
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Share builds the payload for sharing the current proposition.
func Share(data domain.AnswerData) SharePayload {
	return SharePayload{Title: ShareTitle, Text: data.ValueProposition}
}
