package generator

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"github.com/ormasoftchile/figmatest/pkg/extract"
)

// PromptTemplate asks the model for the canonical navigation sequence. The
// splash and menu coordinates stay fixed so output lines up with the fixed
// generator; the element summary and instructions give the model context.
const PromptTemplate = `You are generating UI test steps for the design file "{{ .FileName }}".

The design has {{ .TotalElements }} interactive elements across {{ len .Screens }} screens{{ if .Screens }}: {{ join .Screens ", " }}{{ end }}.
{{- if .Elements }}

Key elements:
{{- range .Elements }}
- {{ .Name }} ({{ .Type }}) on {{ .Screen }} at {{ .Coordinates }}
{{- end }}
{{- end }}

Use depth-first navigation: splash to home, open the menu, visit each section
from the menu and return to the menu after each one.
{{- if .Instructions }}

Additional instructions:
{{ .Instructions }}
{{- end }}

Every line must have the form
DESCRIPTION, CLICK_COORDS, X, Y, SLEEP, 2, CHECK, MARKER
or
DESCRIPTION, CLICK, TARGET, SLEEP, 2, CHECK, MARKER

Output EXACTLY these 8 test cases in ALL CAPS, with no headings, numbering or commentary:

{{ range .Lines }}{{ . }}
{{ end }}`

var promptTmpl = template.Must(template.New("prompt").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(PromptTemplate))

// promptElementLimit caps how many elements are listed in the prompt.
const promptElementLimit = 10

type promptData struct {
	FileName      string
	TotalElements int
	Screens       []string
	Elements      []extract.Element
	Instructions  string
	Lines         []string
}

// RenderPrompt fills PromptTemplate for the given elements.
func RenderPrompt(fileName string, elements []extract.Element, instructions string) (string, error) {
	groups := extract.GroupByScreen(elements)
	screens := make([]string, 0, len(groups))
	for s := range groups {
		screens = append(screens, s)
	}
	sort.Strings(screens)

	if fileName == "" {
		fileName = "Unknown File"
	}
	data := promptData{
		FileName:      fileName,
		TotalElements: len(elements),
		Screens:       screens,
		Elements:      firstN(elements, promptElementLimit),
		Instructions:  strings.TrimSpace(instructions),
		Lines:         fixedLines,
	}

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

