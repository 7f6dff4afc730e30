package monthly

import (
	"html/template"
	"strings"
	"time"

	"fleettrack-backend/internal/fleet/items"
)

const ReportSubject = "Monthly Fleet Expiry Report"

// html/template escapes the free-text fields (company, code, type) for us;
// they are operator input, but there is no reason to trust them in markup.
var reportTmpl = template.Must(template.New("report").Parse(`<h3>Fleet items with expiries in next 30 days</h3>
<table border='1' cellpadding='6'>
<tr><th>Company</th><th>Code</th><th>Type</th><th>Insurance</th><th>Puspakom</th><th>Permit</th></tr>
{{- range . }}
<tr><td>{{ .Company }}</td><td>{{ .Code }}</td><td>{{ .Type }}</td><td>{{ .Insurance }}</td><td>{{ .Puspakom }}</td><td>{{ .Permit }}</td></tr>
{{- end }}
</table>`))

type reportRow struct {
	Company   string
	Code      string
	Type      string
	Insurance string
	Puspakom  string
	Permit    string
}

// BuildReport renders the email body. The caller guarantees list is
// non-empty and already ordered; an empty window never reaches here.
func BuildReport(list []items.Item) (string, error) {
	rows := make([]reportRow, 0, len(list))
	for _, it := range list {
		rows = append(rows, reportRow{
			Company:   it.Company,
			Code:      it.Code,
			Type:      it.Type,
			Insurance: fmtDate(it.InsuranceExpiry),
			Puspakom:  fmtDate(it.PuspakomExpiry),
			Permit:    fmtDate(it.PermitExpiry),
		})
	}
	var sb strings.Builder
	if err := reportTmpl.Execute(&sb, rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(items.DateLayout)
}
