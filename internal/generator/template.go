package generator

import "text/template"

const historyPath = "github.com/dshills/revertable/history"

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by histgen. DO NOT EDIT.

package {{.Package}}

import {{if ne .Alias "history"}}{{.Alias}} {{end}}"{{.Import}}"
{{range .Types}}
// HistoryJournal returns the snapshot journal of {{.Name}}.
func ({{.Recv}} *{{.Name}}) HistoryJournal() *{{$.Alias}}.Journal[{{.Name}}] {
	return &{{.Recv}}.{{.Field}}
}

// Begin records a snapshot of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) Begin() {
	{{$.Alias}}.BeginSelf({{.Recv}})
}

// Commit discards the oldest pending snapshot of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) Commit() error {
	return {{$.Alias}}.CommitSelf({{.Recv}})
}

// Revert restores the newest pending snapshot of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) Revert() error {
	return {{$.Alias}}.RevertSelf({{.Recv}})
}

// CommitAll discards every pending snapshot of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) CommitAll() error {
	return {{$.Alias}}.CommitAllSelf({{.Recv}})
}

// RevertAll restores the oldest pending snapshot of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) RevertAll() error {
	return {{$.Alias}}.RevertAllSelf({{.Recv}})
}

// Clear forgets every pending snapshot of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) Clear() {
	{{$.Alias}}.ClearSelf({{.Recv}})
}

// Changed returns true if {{.Recv}} has a pending snapshot.
func ({{.Recv}} *{{.Name}}) Changed() bool {
	return {{$.Alias}}.LenSelf({{.Recv}}) > 0
}

// Len returns the number of pending snapshots of {{.Recv}}.
func ({{.Recv}} *{{.Name}}) Len() int {
	return {{$.Alias}}.LenSelf({{.Recv}})
}
{{end}}`))

type fileData struct {
	Package string
	Alias   string
	Import  string
	Types   []typeData
}

type typeData struct {
	Name  string
	Recv  string
	Field string
}
