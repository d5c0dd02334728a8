package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// Render builds a standalone printable HTML receipt from an already
// enriched purchase record. It is the fallback for purchases whose
// server-rendered document is unavailable, and depends on nothing but the
// record itself.
func Render(record *models.PurchaseRecord) ([]byte, error) {
	subtotal := 0.0
	for _, item := range record.Items {
		subtotal += item.LineTotal
	}

	data := receiptData{
		Record:    record,
		Subtotal:  subtotal,
		Total:     record.DisplayTotal(),
		Generated: time.Now(),
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute receipt template: %w", err)
	}

	return buf.Bytes(), nil
}

type receiptData struct {
	Record    *models.PurchaseRecord
	Subtotal  float64
	Total     float64
	Generated time.Time
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"date":  func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	"itemLabel": func(item models.PurchaseItem) string {
		if item.Title != "" {
			return item.Title
		}

		return item.CatalogItemID
	},
}).Parse(`<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <title>Compra #{{ .Record.PurchaseID }}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    @page { size: A4; margin: 18mm; }
    body { font-family: ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, Arial; color: #0f172a; margin: 0; padding: 24px; background: #f6f7fb; }
    .page { max-width: 900px; margin: 0 auto; background: #fff; border: 1px solid #e5e7eb; border-radius: 16px; overflow: hidden; }
    header { display: flex; justify-content: space-between; align-items: center; padding: 24px 28px; background: #4f46e5; color: white; }
    header h1 { margin: 0; font-size: 20px; }
    header p { margin: 2px 0 0; font-size: 12px; opacity: .9; }
    .content { padding: 20px 28px 28px; }
    .card { border: 1px solid #e5e7eb; border-radius: 12px; margin-bottom: 16px; }
    .card h3 { margin: 0; font-size: 13px; color: #64748b; padding: 10px 12px; border-bottom: 1px solid #e5e7eb; background: #fafbff; }
    .card .body { padding: 12px; font-size: 14px; }
    .row { display: flex; gap: 8px; margin: 4px 0; }
    .row .k { min-width: 120px; color: #64748b; }
    table { width: 100%; border-collapse: collapse; margin-top: 16px; border: 1px solid #e5e7eb; }
    thead th { font-size: 12px; text-transform: uppercase; background: #eef2ff; padding: 10px; border-bottom: 1px solid #e5e7eb; }
    tbody td { padding: 10px; border-bottom: 1px solid #e5e7eb; font-size: 14px; }
    .num { text-align: right; white-space: nowrap; }
    .totals { margin-top: 10px; display: flex; justify-content: flex-end; }
    .tot-box { min-width: 260px; border: 1px solid #e5e7eb; border-radius: 12px; overflow: hidden; }
    .tot-box .rowp { display: flex; justify-content: space-between; padding: 10px 12px; border-bottom: 1px solid #e5e7eb; font-size: 14px; }
    .tot-box .rowp.total { font-size: 16px; font-weight: 800; background: #f8f9ff; border-bottom: none; }
    footer { padding: 14px 28px 24px; color: #64748b; font-size: 12px; }
    tr, td, th { page-break-inside: avoid; }
  </style>
</head>
<body>
  <div class="page">
    <header>
      <div>
        <h1>Sistema de Gestión Bibliográfica</h1>
        <p>Comprobante de compra</p>
      </div>
      <div>
        <div><strong>Compra #{{ .Record.PurchaseID }}</strong></div>
        <div>Fecha: {{ date .Record.Date }}</div>
      </div>
    </header>

    <div class="content">
      <div class="card">
        <h3>Cliente</h3>
        <div class="body">
          <div class="row"><div class="k">Nombre</div><div>{{ with .Record.FullName }}{{ . }}{{ else }}-{{ end }}</div></div>
          <div class="row"><div class="k">Email</div><div>{{ with .Record.Email }}{{ . }}{{ else }}-{{ end }}</div></div>
          <div class="row"><div class="k">Dirección</div><div>{{ with .Record.Address }}{{ . }}{{ else }}-{{ end }}</div></div>
          {{ if .Record.CURP }}<div class="row"><div class="k">CURP</div><div>{{ .Record.CURP }}</div></div>{{ end }}
          {{ if .Record.RFC }}<div class="row"><div class="k">RFC</div><div>{{ .Record.RFC }}</div></div>{{ end }}
        </div>
      </div>

      <table>
        <thead>
          <tr>
            <th>Libro</th>
            <th>Autor</th>
            <th class="num">Cantidad</th>
            <th class="num">Precio Unit.</th>
            <th class="num">Subtotal</th>
          </tr>
        </thead>
        <tbody>
          {{ range .Record.Items }}
          <tr>
            <td>{{ itemLabel . }}</td>
            <td>{{ with .AuthorName }}{{ . }}{{ else }}-{{ end }}</td>
            <td class="num">{{ .Quantity }}</td>
            <td class="num">{{ money .UnitPrice }}</td>
            <td class="num"><strong>{{ money .LineTotal }}</strong></td>
          </tr>
          {{ end }}
        </tbody>
      </table>

      <div class="totals">
        <div class="tot-box">
          <div class="rowp"><div>Subtotal</div><div class="num">{{ money .Subtotal }}</div></div>
          <div class="rowp"><div>Impuestos</div><div class="num">{{ money 0.0 }}</div></div>
          <div class="rowp total"><div>Total</div><div class="num">{{ money .Total }}</div></div>
        </div>
      </div>
    </div>

    <footer>Documento generado automáticamente • {{ date .Generated }}</footer>
  </div>
  <script>window.addEventListener('load', function () { window.print(); });</script>
</body>
</html>`))
