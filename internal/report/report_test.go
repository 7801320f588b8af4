package report

import (
	"bytes"
	"testing"
)

func TestPrinterLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"created", func(p *Printer) { p.Created("Created: %s", "src/config.ts") }, "✅ Created: src/config.ts\n"},
		{"warn", func(p *Printer) { p.Warn("File already exists, skipping: %s", "src/config.ts") }, "⚠️  File already exists, skipping: src/config.ts\n"},
		{"info", func(p *Printer) { p.Info(".env already contains GitHub variables") }, "ℹ️  .env already contains GitHub variables\n"},
		{"fail", func(p *Printer) { p.Fail("boom") }, "❌ boom\n"},
		{"step", func(p *Printer) { p.Step("📦 Installing dependencies...") }, "\n📦 Installing dependencies...\n"},
		{"plain", func(p *Printer) { p.Plain("   %s", "indented") }, "   indented\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf, true))
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}
