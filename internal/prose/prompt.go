// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prose

import (
	"bytes"
	"text/template"
)

var sectionPromptTmpl = template.Must(template.New("section").Parse(
	`Write a 5-sentence {{.Section}} for a research paper titled: "{{.Topic}}". Use formal academic language. Do not include citations.`))

// Prompt renders the generation prompt for one section.
func Prompt(topic, section string) (string, error) {
	var buf bytes.Buffer
	err := sectionPromptTmpl.Execute(&buf, struct{ Topic, Section string }{Topic: topic, Section: section})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
