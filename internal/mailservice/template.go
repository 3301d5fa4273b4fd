package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*
var templateFS embed.FS

func NewTemplate() *Template {
	return &Template{parsed: make(map[string]*template.Template)}
}

func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.parsed[name]; ok {
		return t, nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}

	tp.parsed[name] = t
	return t, nil
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named
// template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, nil, nil, err
	}

	var buffers [3]*bytes.Buffer
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		buffers[i] = new(bytes.Buffer)
		err = t.ExecuteTemplate(buffers[i], block, data)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not execute %s of %s: %w", block, name, err)
		}
	}

	return buffers[0], buffers[1], buffers[2], nil
}
