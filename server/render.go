package server

import (
	"encoding/json"
	"net/http"
)

type RenderData map[string]interface{}

// Renderer turns a handler's response directive into a body. Page
// templating is the hosting binary's concern; the built-in renderer
// emits the page name & data as JSON, which is also what the tests read.
type Renderer interface {
	Render(rw http.ResponseWriter, status int, page string, data RenderData)
}

type jsonRenderer struct{}

func NewJSONRenderer() Renderer {
	return &jsonRenderer{}
}

func (renderer *jsonRenderer) Render(rw http.ResponseWriter, status int, page string, data RenderData) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	payload := struct {
		Page string     `json:"page"`
		Data RenderData `json:"data,omitempty"`
	}{Page: page, Data: data}

	if err := json.NewEncoder(rw).Encode(payload); err != nil {
		logg.Errorf("failed to render %v: %v", page, err)
	}
}
