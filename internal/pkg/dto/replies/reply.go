// Package replies models the outbound chat payloads as a tagged union so the
// conversation flows stay free of presentation concerns. The transport only
// accepts plain text, so every variant renders down to a single string.
package replies

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindText    Kind = "text"
	KindButtons Kind = "interactive"
	KindList    Kind = "list"
)

type Button struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Row struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

type Reply struct {
	Kind     Kind      `json:"type"`
	Body     string    `json:"body"`
	Buttons  []Button  `json:"buttons,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

func Text(body string) Reply {
	return Reply{Kind: KindText, Body: body}
}

func Buttons(body string, buttons ...Button) Reply {
	return Reply{Kind: KindButtons, Body: body, Buttons: buttons}
}

func List(body string, sections ...Section) Reply {
	return Reply{Kind: KindList, Body: body, Sections: sections}
}

// RenderText flattens the reply into the numbered plain-text form sent over
// the wire.
func (r Reply) RenderText() string {
	switch r.Kind {
	case KindButtons:
		var b strings.Builder
		b.WriteString(r.Body)
		b.WriteString("\n\n👆 Opciones disponibles:\n")
		for i, button := range r.Buttons {
			fmt.Fprintf(&b, "%d. %s\n", i+1, button.Title)
		}
		b.WriteString("\n💬 Responde con el número de tu opción.")
		return b.String()
	case KindList:
		var b strings.Builder
		b.WriteString(r.Body)
		n := 0
		for _, section := range r.Sections {
			fmt.Fprintf(&b, "\n\n%s:\n", section.Title)
			for _, row := range section.Rows {
				n++
				if row.Description != "" {
					fmt.Fprintf(&b, "%d. %s - %s\n", n, row.Title, row.Description)
				} else {
					fmt.Fprintf(&b, "%d. %s\n", n, row.Title)
				}
			}
		}
		b.WriteString("\n💬 Responde con el número de tu opción.")
		return b.String()
	default:
		return r.Body
	}
}
