package handler

// generateCVRequest is the body of POST /v1/cv/generate. The profile travels
// in the request so generation works on exactly what the UI previewed, even
// with unsaved edits.
type generateCVRequest struct {
	Profile        profilePayload `json:"profile"`
	JobDescription string         `json:"jobDescription" validate:"required"`
	TargetLang     string         `json:"targetLang" validate:"omitempty,oneof=es en auto"`
}

// generateCVResponse carries the JSON-encoded CV document and the
// post-decrement credit balance.
type generateCVResponse struct {
	Text      string `json:"text"`
	Remaining int    `json:"remaining"`
}

// quotaExhaustedResponse is the 402 envelope. Remaining is always zero: the
// code is only sent when no credits are left.
type quotaExhaustedResponse struct {
	Error     string `json:"error"`
	Remaining int    `json:"remaining"`
	Code      string `json:"code"`
}

const codeNoCredits = "NO_CREDITS"

type quotaResponse struct {
	Remaining int `json:"remaining"`
}
