package cli

const statusTemplate = `
=== Session Status ===

{{- if .Markers }}
Last seen:        {{ .Markers.LastSeenNumber }}
First sequence:   {{ .Markers.FirstSeqNumber }}
Last time delta:  {{ .Markers.LastTimeDelta }}s
{{- else }}
No catch-up markers saved yet.
{{- end }}
{{- if .LastSync }}
Last sync:        {{ .LastSync }}
{{- else }}
Last sync:        never
{{- end }}
Pending commands: {{ .Pending }}
`

const pendingListTemplate = `
=== Pending Commands ===

{{- if eq (len .) 0 }}
No commands waiting to be sent.
{{ else }}
Found {{len .}} command(s):

{{- range . }}
- {{ .Name }} #{{ .Sequence }}
   ID:      {{ .ID }}
   Tag:     {{ .Tag }}
   Created: {{ .CreatedAt.Format "2006-01-02T15:04:05Z07:00" }}
{{- end }}

Use 'cloudalerts flush' to send them.
{{- end }}
`
