package generate

import "text/template"

// Repository templates. Slide output stays within the density limits the
// slide-content-quality rule enforces.

var readmeTemplate = template.Must(template.New("readme").Parse(`# {{.Workshop.Title}}

Generated by workshopforge from the workshop spec in ` + "`spec/`" + `.

- **Audience:** {{.Workshop.Audience}}
- **Duration:** {{.Workshop.Duration.Summary}}
- **Version:** {{.Workshop.Version}}

## Modules

{{range .Modules}}- [{{.DisplayTitle}}](labs/{{.ID}}/README.md)
{{end}}
## Layout

- ` + "`labs/`" + ` hands-on exercises for students
- ` + "`instructor/`" + ` slides and teaching notes, instructor only
- ` + "`reference/`" + ` reference solutions, instructor only
`))

var courseTemplate = template.Must(template.New("course").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`# Course Outline: {{.Workshop.Title}}

| # | Module | Duration |
|---|--------|----------|
{{range $i, $m := .Modules}}| {{inc $i}} | {{$m.DisplayTitle}} | {{$m.DurationMinutes}} min |
{{end}}
Scheduled as {{.Workshop.Duration.Summary}}.
`))

var labTemplate = template.Must(template.New("lab").Parse(`# {{.DisplayTitle}}

**Objective:** {{.Objective}}

**Duration:** {{.DurationMinutes}} minutes
{{if .DependsOn}}
## Prerequisites

{{range .DependsOn}}- Complete module ` + "`{{.}}`" + ` first
{{end}}{{end}}
## Instructions

Work through the exercise below. Ask an instructor if you get stuck.

## Deliverables

{{range .Deliverables}}- ` + "`{{.}}`" + `
{{end}}`))

var slidesTemplate = template.Must(template.New("slides").Parse(`# {{.Workshop.Title}}

{{.Workshop.Audience}}

---
{{range .Modules}}
## {{.DisplayTitle}}

- {{.Objective}}
- {{.DurationMinutes}} minutes

---
{{end}}
## Wrap-up

- Recap and questions
`))

var notesTemplate = template.Must(template.New("notes").Parse(`# Instructor Notes: {{.Workshop.Title}}

{{range .Modules}}## {{.DisplayTitle}}

Objective: {{.Objective}}

Timing: {{.DurationMinutes}} minutes. Watch for students falling behind on
the deliverables; the reference solutions live under ` + "`reference/`" + `.

{{end}}`))

var workflowTemplate = template.Must(template.New("workflow").Parse(`name: basic-checks

on:
  push:
  pull_request:

jobs:
  check:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Verify required files
        run: |
{{range .Modules}}{{range .Deliverables}}          test -e "{{.}}"
{{end}}{{end}}`))
